package storage

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/justrnr500/repolist/internal/repo"
)

// Field names one column of the store file.
type Field string

const (
	FieldAlias Field = "alias"
	FieldLink  Field = "link"
)

// Dialect describes the store file layout: the exact header line,
// the delimiter between the two fields and the order of the fields.
type Dialect struct {
	Header    string  `yaml:"header"`
	Delimiter string  `yaml:"delimiter"`
	Fields    []Field `yaml:"fields"`
}

// DefaultDialect returns the "Alias,Link" comma-separated layout.
func DefaultDialect() Dialect {
	return Dialect{
		Header:    "Alias,Link",
		Delimiter: ",",
		Fields:    []Field{FieldAlias, FieldLink},
	}
}

// Validate checks that the dialect can round-trip entries.
func (d Dialect) Validate() error {
	if d.Header == "" {
		return errors.New("dialect header cannot be empty")
	}
	if d.Delimiter == "" {
		return errors.New("dialect delimiter cannot be empty")
	}
	if strings.ContainsAny(d.Header+d.Delimiter, "\r\n") {
		return errors.New("dialect header and delimiter cannot contain line breaks")
	}
	if strings.TrimSpace(d.Delimiter) == "" {
		return errors.New("dialect delimiter cannot be whitespace")
	}
	if len(d.Fields) != 2 || !slices.Contains(d.Fields, FieldAlias) || !slices.Contains(d.Fields, FieldLink) {
		return fmt.Errorf("dialect fields must be %q and %q in some order, got %v", FieldAlias, FieldLink, d.Fields)
	}
	return nil
}

func (d Dialect) clone() Dialect {
	d.Fields = slices.Clone(d.Fields)
	return d
}

// aliasFirst reports whether the alias is the leading field.
func (d Dialect) aliasFirst() bool {
	return d.Fields[0] == FieldAlias
}

// join formats an entry as a line body without the trailing newline.
func (d Dialect) join(e repo.Entry) string {
	if d.aliasFirst() {
		return e.Alias + d.Delimiter + e.Link
	}
	return e.Link + d.Delimiter + e.Alias
}

// split breaks a line body at the first delimiter. The second field is the
// remainder of the line and may itself contain the delimiter.
func (d Dialect) split(line string) (repo.Entry, bool) {
	first, rest, ok := strings.Cut(line, d.Delimiter)
	if !ok {
		return repo.Entry{}, false
	}
	if d.aliasFirst() {
		return repo.Entry{Alias: first, Link: rest}, true
	}
	return repo.Entry{Alias: rest, Link: first}, true
}

// leading returns the field that must not contain the delimiter.
func (d Dialect) leading(e repo.Entry) string {
	if d.aliasFirst() {
		return e.Alias
	}
	return e.Link
}
