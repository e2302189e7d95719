package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"text/tabwriter"

	"github.com/justrnr500/repolist/internal/repo"
	"github.com/justrnr500/repolist/internal/storage"
)

const msgEmpty = "No repositories saved."

// Options configures a Session.
type Options struct {
	// Path is the store file written on quit.
	Path string
	// Out receives all user-facing output.
	Out io.Writer
	// Logger receives diagnostics. Nil discards them.
	Logger *slog.Logger
	// Prompt is printed before each line is read. Empty disables it.
	Prompt string
	// Dirty marks the store as needing a save, e.g. after loading a file
	// without a header.
	Dirty bool
}

// Store is the entry store a Session runs commands against.
// *storage.Store implements it.
type Store interface {
	Codec() *storage.Codec
	Add(alias, link string) error
	Select(alias string) []repo.Entry
	Match(pattern string) ([]repo.Entry, error)
	Delete(alias string) bool
	Aliases() iter.Seq[string]
	Len() int
	Save(path string) (int, error)
}

// Session runs commands against a store and tracks whether it has unsaved
// changes. It is not safe for concurrent use.
type Session struct {
	store  Store
	path   string
	out    io.Writer
	logger *slog.Logger
	prompt string
	limits repo.Limits
	dirty  bool
	failed bool
}

// NewSession creates a session over store.
func NewSession(store Store, opts Options) *Session {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Session{
		store:  store,
		path:   opts.Path,
		out:    out,
		logger: logger,
		prompt: opts.Prompt,
		limits: store.Codec().Limits(),
		dirty:  opts.Dirty,
	}
}

// Dirty reports whether the store has changes not yet saved.
func (s *Session) Dirty() bool {
	return s.dirty
}

// Failed reports whether the last executed command did not succeed.
func (s *Session) Failed() bool {
	return s.failed
}

// Run reads and executes commands from in until quit or end of input.
// End of input behaves like quit: the store is saved only if dirty.
func (s *Session) Run(in io.Reader) error {
	br := bufio.NewReader(in)
	for {
		if s.prompt != "" {
			fmt.Fprint(s.out, s.prompt)
		}

		raw, err := ReadLine(br, s.limits.Line)
		if errors.Is(err, io.EOF) {
			if s.prompt != "" {
				fmt.Fprintln(s.out)
			}
			s.Flush()
			return nil
		}
		if err != nil {
			s.Flush()
			return fmt.Errorf("read input: %w", err)
		}

		input, err := ParseInput(raw, s.limits)
		if err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
			continue
		}
		if input.Empty() {
			continue
		}

		if quit := s.Execute(input); quit {
			return nil
		}
	}
}

// Execute validates and runs one parsed command. It returns true when the
// session should end.
func (s *Session) Execute(in Input) bool {
	cmd, err := Validate(in.Command, in.ArgCount)
	if err != nil {
		s.logger.Debug("rejected command", "command", in.Command, "args", in.ArgCount, "err", err)
		fmt.Fprintf(s.out, "Error: %v\n", err)
		s.failed = true
		return false
	}

	s.logger.Debug("command", "command", cmd, "alias", in.Alias)

	ok := true
	switch cmd {
	case CmdAdd:
		ok = s.add(in.Alias, in.Link)
	case CmdShow:
		ok = s.show(in.Alias)
	case CmdList:
		s.list()
	case CmdDelete:
		ok = s.delete(in.Alias)
	case CmdSearch:
		ok = s.search(in.Alias)
	case CmdHelp:
		s.help()
	case CmdQuit:
		s.Flush()
		s.failed = false
		return true
	}
	s.failed = !ok
	return false
}

// Flush saves the store if it is dirty and returns the number of entries
// written. Failures are printed and returned but never end the session.
func (s *Session) Flush() (int, error) {
	if !s.dirty {
		return 0, nil
	}

	total := s.store.Len()
	n, err := s.store.Save(s.path)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		if errors.Is(err, storage.ErrFileUnavailable) {
			fmt.Fprintf(s.out, "Changes were not saved to %s.\n", s.path)
			return 0, err
		}
	}

	if n == total {
		fmt.Fprintf(s.out, "Saved %d %s to %s.\n", n, plural(n), s.path)
	} else {
		fmt.Fprintf(s.out, "Saved %d of %d %s to %s.\n", n, total, plural(total), s.path)
	}

	if err == nil && n == total {
		s.dirty = false
	}
	return n, err
}

func (s *Session) add(alias, link string) bool {
	if err := s.store.Add(alias, link); err != nil {
		fmt.Fprintf(s.out, "Error: could not add '%s': %v\n", alias, err)
		return false
	}
	s.dirty = true
	fmt.Fprintf(s.out, "Added %s.\n", alias)
	return true
}

func (s *Session) show(alias string) bool {
	if s.store.Len() == 0 {
		fmt.Fprintln(s.out, msgEmpty)
		return repo.IsAll(alias)
	}

	entries := s.store.Select(alias)
	if len(entries) == 0 {
		fmt.Fprintf(s.out, "Repository '%s' not found.\n", alias)
		return false
	}
	for _, e := range entries {
		fmt.Fprintln(s.out, e)
	}
	return true
}

func (s *Session) list() {
	if s.store.Len() == 0 {
		fmt.Fprintln(s.out, msgEmpty)
		return
	}
	for alias := range s.store.Aliases() {
		fmt.Fprintln(s.out, alias)
	}
}

func (s *Session) delete(alias string) bool {
	if !s.store.Delete(alias) {
		fmt.Fprintf(s.out, "Repository '%s' not found.\n", alias)
		return false
	}
	s.dirty = true
	fmt.Fprintf(s.out, "Deleted %s.\n", alias)
	return true
}

func (s *Session) search(pattern string) bool {
	if s.store.Len() == 0 {
		fmt.Fprintln(s.out, msgEmpty)
		return true
	}

	matches, err := s.store.Match(pattern)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return false
	}
	if len(matches) == 0 {
		fmt.Fprintf(s.out, "No repositories match '%s'.\n", pattern)
		return true
	}
	for _, e := range matches {
		fmt.Fprintln(s.out, e)
	}
	return true
}

func (s *Session) help() {
	fmt.Fprintln(s.out, "Commands:")
	w := tabwriter.NewWriter(s.out, 0, 0, 3, ' ', 0)
	for _, spec := range commands {
		fmt.Fprintf(w, "  %s\t%s\n", spec.usage, spec.summary)
	}
	w.Flush()
}

func plural(n int) string {
	if n == 1 {
		return "repository"
	}
	return "repositories"
}
