// Package storage handles the repolist store file: the line codec and the
// in-memory entry store that is loaded from and saved to it.
package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/justrnr500/repolist/internal/repo"
)

// Codec translates between entries and lines of the store file.
type Codec struct {
	dialect Dialect
	limits  repo.Limits
}

// NewCodec creates a codec for the given dialect. Decoded entries are
// checked against limits.
func NewCodec(d Dialect, limits repo.Limits) (*Codec, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &Codec{dialect: d.clone(), limits: limits}, nil
}

// Dialect returns a copy of the codec's dialect.
func (c *Codec) Dialect() Dialect {
	return c.dialect.clone()
}

// Limits returns the bounds applied to decoded and encoded entries.
func (c *Codec) Limits() repo.Limits {
	return c.limits
}

// Check reports whether e can be written and read back unchanged.
func (c *Codec) Check(e repo.Entry) error {
	if err := e.Validate(c.limits); err != nil {
		return err
	}
	if strings.Contains(c.dialect.leading(e), c.dialect.Delimiter) {
		return fmt.Errorf("%s contains delimiter %q", c.dialect.Fields[0], c.dialect.Delimiter)
	}
	return nil
}

// Encode formats e as a single line, including the trailing newline.
func (c *Codec) Encode(e repo.Entry) (string, error) {
	if err := c.Check(e); err != nil {
		return "", err
	}
	return c.dialect.join(e) + "\n", nil
}

// Decode parses a line body (without its newline) into an entry.
func (c *Codec) Decode(line string) (repo.Entry, error) {
	e, ok := c.dialect.split(line)
	if !ok {
		return repo.Entry{}, fmt.Errorf("missing delimiter %q", c.dialect.Delimiter)
	}
	if err := e.Validate(c.limits); err != nil {
		return repo.Entry{}, err
	}
	return e, nil
}

// WriteHeader writes the header line.
func (c *Codec) WriteHeader(w io.Writer) error {
	_, err := io.WriteString(w, c.dialect.Header+"\n")
	return err
}

// WriteEntry writes one entry line.
func (c *Codec) WriteEntry(w io.Writer, e repo.Entry) error {
	line, err := c.Encode(e)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEntry, err)
	}
	_, err = io.WriteString(w, line)
	return err
}

// NewReader returns a LineReader that decodes r with this codec.
func (c *Codec) NewReader(r io.Reader) *LineReader {
	return &LineReader{codec: c, br: bufio.NewReader(r)}
}

// LineReader reads the header and entries of a store file one line at a time.
type LineReader struct {
	codec *Codec
	br    *bufio.Reader
	line  int

	// pending holds a first line that did not match the header.
	pending    string
	hasPending bool
}

// ReadHeader reads the first line and reports whether it is exactly the
// dialect header. A non-matching line is kept and returned as data by the
// next ReadEntry. An empty file has no header.
func (r *LineReader) ReadHeader() (bool, error) {
	text, err := r.next()
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if text == r.codec.dialect.Header {
		return true, nil
	}
	r.pending = text
	r.hasPending = true
	return false, nil
}

// ReadEntry returns the next entry. It returns io.EOF at end of data and a
// *MalformedLineError for a line that cannot be decoded; reading may
// continue after a malformed line. Blank lines are skipped.
func (r *LineReader) ReadEntry() (repo.Entry, error) {
	for {
		var text string
		if r.hasPending {
			text = r.pending
			r.pending, r.hasPending = "", false
		} else {
			var err error
			text, err = r.next()
			if err != nil {
				return repo.Entry{}, err
			}
		}

		text = strings.TrimSuffix(text, "\r")
		if text == "" {
			continue
		}

		e, err := r.codec.Decode(text)
		if err != nil {
			return repo.Entry{}, &MalformedLineError{Line: r.line, Text: text, Reason: err.Error()}
		}
		return e, nil
	}
}

// next reads one physical line without its newline. A final line with no
// newline is returned as is; io.EOF is only returned when nothing is left.
func (r *LineReader) next() (string, error) {
	text, err := r.br.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && text != "") {
		return "", err
	}
	r.line++
	return strings.TrimSuffix(text, "\n"), nil
}
