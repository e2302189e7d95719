package storage

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/justrnr500/repolist/internal/repo"
)

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	c, err := NewCodec(DefaultDialect(), repo.DefaultLimits())
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}
	return c
}

func TestDialectValidate(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		wantErr bool
	}{
		{"default", DefaultDialect(), false},
		{"link first", Dialect{Header: "Link;Alias", Delimiter: ";", Fields: []Field{FieldLink, FieldAlias}}, false},
		{"empty header", Dialect{Delimiter: ",", Fields: []Field{FieldAlias, FieldLink}}, true},
		{"empty delimiter", Dialect{Header: "h", Fields: []Field{FieldAlias, FieldLink}}, true},
		{"whitespace delimiter", Dialect{Header: "h", Delimiter: " ", Fields: []Field{FieldAlias, FieldLink}}, true},
		{"newline in header", Dialect{Header: "a\nb", Delimiter: ",", Fields: []Field{FieldAlias, FieldLink}}, true},
		{"duplicate field", Dialect{Header: "h", Delimiter: ",", Fields: []Field{FieldAlias, FieldAlias}}, true},
		{"missing field", Dialect{Header: "h", Delimiter: ",", Fields: []Field{FieldAlias}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.dialect.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCodecDecode(t *testing.T) {
	c := newTestCodec(t)

	tests := []struct {
		name    string
		line    string
		want    repo.Entry
		wantErr bool
	}{
		{"simple", "GitHub,https://github.com", repo.Entry{Alias: "GitHub", Link: "https://github.com"}, false},
		{"link keeps spaces", "notes,file:///my notes/index.html", repo.Entry{Alias: "notes", Link: "file:///my notes/index.html"}, false},
		{"link keeps later delimiters", "q,https://x.io/?a=1,2", repo.Entry{Alias: "q", Link: "https://x.io/?a=1,2"}, false},
		{"no delimiter", "GitHub https://github.com", repo.Entry{}, true},
		{"empty alias", ",https://github.com", repo.Entry{}, true},
		{"empty link", "GitHub,", repo.Entry{}, true},
		{"alias too long", strings.Repeat("a", 130) + ",l", repo.Entry{}, true},
		{"link too long", "a," + strings.Repeat("l", 256), repo.Entry{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Decode(tt.line)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Decode(%q) error = %v, wantErr %v", tt.line, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Decode(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestCodecLinkFirstDialect(t *testing.T) {
	d := Dialect{Header: "Link|Alias", Delimiter: "|", Fields: []Field{FieldLink, FieldAlias}}
	c, err := NewCodec(d, repo.DefaultLimits())
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}

	var buf bytes.Buffer
	if err := c.WriteHeader(&buf); err != nil {
		t.Fatalf("write header: %v", err)
	}
	if err := c.WriteEntry(&buf, repo.Entry{Alias: "gh", Link: "https://github.com"}); err != nil {
		t.Fatalf("write entry: %v", err)
	}
	if got, want := buf.String(), "Link|Alias\nhttps://github.com|gh\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	r := c.NewReader(&buf)
	ok, err := r.ReadHeader()
	if err != nil || !ok {
		t.Fatalf("ReadHeader() = %v, %v; want true, nil", ok, err)
	}
	e, err := r.ReadEntry()
	if err != nil {
		t.Fatalf("ReadEntry() error = %v", err)
	}
	if e.Alias != "gh" || e.Link != "https://github.com" {
		t.Errorf("entry = %+v", e)
	}
}

func TestCodecWriteEntryRejectsDelimiterInAlias(t *testing.T) {
	c := newTestCodec(t)

	var buf bytes.Buffer
	err := c.WriteEntry(&buf, repo.Entry{Alias: "a,b", Link: "l"})
	if !errors.Is(err, ErrInvalidEntry) {
		t.Errorf("WriteEntry() error = %v, want ErrInvalidEntry", err)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %q for rejected entry", buf.String())
	}
}

func TestReadHeader(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
		first string // alias of the first entry, if any
	}{
		{"exact header", "Alias,Link\ngh,url\n", true, "gh"},
		{"missing header", "gh,url\nlab,url2\n", false, "gh"},
		{"trailing space", "Alias,Link \ngh,url\n", false, "Alias"},
		{"different case", "alias,link\n", false, "alias"},
		{"crlf header", "Alias,Link\r\n", false, "Alias"},
		{"empty file", "", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestCodec(t).NewReader(strings.NewReader(tt.input))
			got, err := r.ReadHeader()
			if err != nil {
				t.Fatalf("ReadHeader() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ReadHeader() = %v, want %v", got, tt.want)
			}

			e, err := r.ReadEntry()
			if tt.first == "" {
				if !errors.Is(err, io.EOF) {
					t.Errorf("ReadEntry() error = %v, want io.EOF", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadEntry() error = %v", err)
			}
			if e.Alias != tt.first {
				t.Errorf("first alias = %q, want %q", e.Alias, tt.first)
			}
		})
	}
}

func TestReadEntrySkipsAndReportsMalformed(t *testing.T) {
	input := "Alias,Link\ngh,url\n\nbroken line\nlab,url2"
	r := newTestCodec(t).NewReader(strings.NewReader(input))

	if ok, err := r.ReadHeader(); err != nil || !ok {
		t.Fatalf("ReadHeader() = %v, %v", ok, err)
	}

	var aliases []string
	var malformed []*MalformedLineError
	for {
		e, err := r.ReadEntry()
		if errors.Is(err, io.EOF) {
			break
		}
		var ml *MalformedLineError
		if errors.As(err, &ml) {
			malformed = append(malformed, ml)
			continue
		}
		if err != nil {
			t.Fatalf("ReadEntry() error = %v", err)
		}
		aliases = append(aliases, e.Alias)
	}

	if strings.Join(aliases, " ") != "gh lab" {
		t.Errorf("aliases = %v, want [gh lab]", aliases)
	}
	if len(malformed) != 1 {
		t.Fatalf("malformed = %d, want 1", len(malformed))
	}
	if malformed[0].Line != 4 {
		t.Errorf("malformed line = %d, want 4", malformed[0].Line)
	}
	if malformed[0].Text != "broken line" {
		t.Errorf("malformed text = %q", malformed[0].Text)
	}
}

func TestReadEntryTrimsCarriageReturn(t *testing.T) {
	r := newTestCodec(t).NewReader(strings.NewReader("Alias,Link\ngh,https://github.com\r\n"))
	r.ReadHeader()

	e, err := r.ReadEntry()
	if err != nil {
		t.Fatalf("ReadEntry() error = %v", err)
	}
	if e.Link != "https://github.com" {
		t.Errorf("Link = %q", e.Link)
	}
}
