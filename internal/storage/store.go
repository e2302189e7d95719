package storage

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"
	"slices"

	"github.com/justrnr500/repolist/internal/repo"
)

// Store is the ordered, in-memory list of saved repositories.
// Entries keep insertion order and aliases are not required to be unique.
type Store struct {
	codec   *Codec
	logger  *slog.Logger
	entries []repo.Entry
}

// NewStore creates an empty store that loads and saves through codec.
// A nil logger discards diagnostics.
func NewStore(codec *Codec, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{codec: codec, logger: logger}
}

// Codec returns the codec used for load and save.
func (s *Store) Codec() *Codec {
	return s.codec
}

// Add appends an entry at the tail.
func (s *Store) Add(alias, link string) error {
	e := repo.Entry{Alias: alias, Link: link}
	if err := s.codec.Check(e); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, err)
	}
	s.entries = append(s.entries, e)
	return nil
}

// Find returns the first entry whose alias matches exactly.
func (s *Store) Find(alias string) (repo.Entry, bool) {
	i := s.index(alias)
	if i < 0 {
		return repo.Entry{}, false
	}
	return s.entries[i], true
}

// Select returns every entry for the "all" keyword, otherwise the first
// match for alias, if any.
func (s *Store) Select(alias string) []repo.Entry {
	if repo.IsAll(alias) {
		return s.Entries()
	}
	if e, ok := s.Find(alias); ok {
		return []repo.Entry{e}
	}
	return nil
}

// Match returns the entries whose alias matches a glob pattern, in store order.
func (s *Store) Match(pattern string) ([]repo.Entry, error) {
	if err := repo.ValidatePattern(pattern); err != nil {
		return nil, err
	}
	var matches []repo.Entry
	for _, e := range s.entries {
		ok, err := repo.MatchAlias(e.Alias, pattern)
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, e)
		}
	}
	return matches, nil
}

// Delete removes the oldest entry with the given alias.
// It reports whether an entry was removed.
func (s *Store) Delete(alias string) bool {
	i := s.index(alias)
	if i < 0 {
		return false
	}
	s.entries = slices.Delete(s.entries, i, i+1)
	return true
}

// Aliases yields every alias in store order. The sequence can be ranged
// over more than once.
func (s *Store) Aliases() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, e := range s.entries {
			if !yield(e.Alias) {
				return
			}
		}
	}
}

// Entries returns a copy of all entries in store order.
func (s *Store) Entries() []repo.Entry {
	return slices.Clone(s.entries)
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.entries)
}

func (s *Store) index(alias string) int {
	return slices.IndexFunc(s.entries, func(e repo.Entry) bool {
		return e.Alias == alias
	})
}

// LoadResult summarizes a Load.
type LoadResult struct {
	HeaderOK bool
	Loaded   int
	Skipped  []*MalformedLineError
}

// Load reads the store file at path and appends its entries.
// A first line that is not the header is read as data and HeaderOK is false.
// Malformed lines are logged, recorded in the result and skipped.
func (s *Store) Load(path string) (LoadResult, error) {
	var res LoadResult

	file, err := os.Open(path)
	if err != nil {
		return res, &FileError{Op: "open", Path: path, Err: err}
	}
	defer file.Close()

	r := s.codec.NewReader(file)

	res.HeaderOK, err = r.ReadHeader()
	if err != nil {
		return res, &FileError{Op: "read", Path: path, Err: err}
	}
	if !res.HeaderOK {
		s.logger.Warn("store header missing", "path", path, "want", s.codec.dialect.Header)
	}

	for {
		e, err := r.ReadEntry()
		if errors.Is(err, io.EOF) {
			break
		}
		var malformed *MalformedLineError
		if errors.As(err, &malformed) {
			s.logger.Warn("skipping malformed line", "path", path, "line", malformed.Line, "reason", malformed.Reason)
			res.Skipped = append(res.Skipped, malformed)
			continue
		}
		if err != nil {
			return res, &FileError{Op: "read", Path: path, Err: err}
		}
		s.entries = append(s.entries, e)
		res.Loaded++
	}

	s.logger.Debug("store loaded", "path", path, "entries", res.Loaded, "skipped", len(res.Skipped))
	return res, nil
}
