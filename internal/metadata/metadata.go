// Package metadata extracts a book information record from a Markdown note.
//
// Fields are read from "Key: value" lines (an optional list bullet and a
// full-width colon are accepted) and from a leading YAML or TOML front
// matter block. Each line feeds at most one field: patterns are tried in a
// fixed order and the first match wins.
package metadata

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/alnah/go-mdtidy/internal/codec"
	"github.com/alnah/go-mdtidy/internal/dateutil"
	"github.com/alnah/go-mdtidy/internal/pipeline"
)

// Sentinel errors for metadata extraction.
var (
	ErrInvalidDate = dateutil.ErrInvalidDate
	ErrFrontMatter = errors.New("invalid front matter")
)

// Record is the book information found in one document.
// Dates are calendar dates at local midnight; zero means absent.
type Record struct {
	Title       string
	CoverImages []string
	ReadingDate time.Time
	Author      string
	Publisher   string
	ISBN10      string
	ISBN13      string
	ASIN        string
	ReleaseDate time.Time
	Link        string
	Tags        []string
}

// IsZero reports whether no field was found.
func (r *Record) IsZero() bool {
	return r.Title == "" && len(r.CoverImages) == 0 && r.ReadingDate.IsZero() &&
		r.Author == "" && r.Publisher == "" && r.ISBN10 == "" && r.ISBN13 == "" &&
		r.ASIN == "" && r.ReleaseDate.IsZero() && r.Link == "" && len(r.Tags) == 0
}

// Options tune date parsing.
type Options struct {
	DateFormats []string       // user-friendly layouts; empty = dateutil.DefaultDateFormats
	Location    *time.Location // nil = time.Local
}

// field binds a line pattern to the Record setter it feeds.
type field struct {
	name    string
	pattern *regexp.Regexp
	set     func(r *Record, value string, opts Options) error
}

// keyLine builds a "Key: value" pattern for the given key alternatives.
func keyLine(keys string) *regexp.Regexp {
	return regexp.MustCompile(`^\s*(?:[-*+]\s+)?(?i:` + keys + `)\s*[:：]\s*(.*?)\s*$`)
}

// coverPattern matches a line holding nothing but an image.
var coverPattern = regexp.MustCompile(`^\s*!\[[^\]]*\]\(\s*([^)\s]+)(?:\s+"[^"]*")?\s*\)\s*$`)

// fields is ordered: the first pattern matching a line claims it.
var fields = []field{
	{name: "title", pattern: keyLine(`title|タイトル`), set: func(r *Record, v string, _ Options) error {
		r.Title = v
		return nil
	}},
	{name: "author", pattern: keyLine(`authors?|著者`), set: func(r *Record, v string, _ Options) error {
		r.Author = v
		return nil
	}},
	{name: "publisher", pattern: keyLine(`publisher|出版社`), set: func(r *Record, v string, _ Options) error {
		r.Publisher = v
		return nil
	}},
	{name: "isbn-10", pattern: keyLine(`isbn[-\s]?10`), set: func(r *Record, v string, _ Options) error {
		r.ISBN10 = v
		return nil
	}},
	{name: "isbn-13", pattern: keyLine(`isbn[-\s]?13`), set: func(r *Record, v string, _ Options) error {
		r.ISBN13 = v
		return nil
	}},
	{name: "asin", pattern: keyLine(`asin`), set: func(r *Record, v string, _ Options) error {
		r.ASIN = v
		return nil
	}},
	{name: "release date", pattern: keyLine(`release[-_\s]?date|発売日`), set: func(r *Record, v string, o Options) error {
		d, err := parseDate(v, o)
		r.ReleaseDate = d
		return err
	}},
	{name: "reading date", pattern: keyLine(`read(?:ing)?[-_\s]?date|読了日`), set: func(r *Record, v string, o Options) error {
		d, err := parseDate(v, o)
		r.ReadingDate = d
		return err
	}},
	{name: "link", pattern: keyLine(`link|url|amazon[-_\s]?url`), set: func(r *Record, v string, _ Options) error {
		r.Link = v
		return nil
	}},
	{name: "tags", pattern: keyLine(`tags?|タグ`), set: func(r *Record, v string, _ Options) error {
		r.Tags = splitTags(v)
		return nil
	}},
	{name: "cover image", pattern: coverPattern, set: func(r *Record, v string, _ Options) error {
		r.CoverImages = append(r.CoverImages, v)
		return nil
	}},
}

func parseDate(value string, opts Options) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return dateutil.ParseDate(value, opts.DateFormats, opts.Location)
}

// splitTags splits on ASCII and Japanese commas and drops empty entries.
func splitTags(v string) []string {
	parts := strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == '、' })
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// Extract scans lines once, filling a fresh Record. A later line for the
// same field overwrites an earlier one, except cover images which
// accumulate. A malformed date stops the scan with an error naming the
// 1-based line number.
func Extract(lines []string, opts Options) (*Record, error) {
	r := &Record{}
	if err := r.scan(lines, 0, opts); err != nil {
		return nil, err
	}
	return r, nil
}

// scan reports errors with line numbers shifted by offset, the count of
// file lines that precede lines[0].
func (r *Record) scan(lines []string, offset int, opts Options) error {
	for i, line := range lines {
		for _, f := range fields {
			m := f.pattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			if err := f.set(r, m[1], opts); err != nil {
				return fmt.Errorf("line %d: %s: %w", offset+i+1, f.name, err)
			}
			break
		}
	}
	return nil
}

// Parse reads front matter (if any) and then scans the body lines. Values
// found in the body override those from front matter.
func Parse(text string, opts Options) (*Record, error) {
	var env frontMatter
	body, err := frontmatter.Parse(strings.NewReader(text), &env, frontMatterFormats...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFrontMatter, err)
	}

	r, err := env.record(opts)
	if err != nil {
		return nil, err
	}
	rest := string(bytes.TrimLeft(body, "\r\n"))
	if err := r.scan(pipeline.Split(rest), linesBefore(text, rest), opts); err != nil {
		return nil, err
	}
	return r, nil
}

// linesBefore counts the lines of text that precede its suffix rest.
func linesBefore(text, rest string) int {
	if !strings.HasSuffix(text, rest) {
		return 0
	}
	prefix := text[:len(text)-len(rest)]
	if prefix == "" {
		return 0
	}
	return len(pipeline.Split(prefix)) - 1
}

// frontMatterFormats decode YAML and TOML blocks leniently: unknown keys
// in a note's front matter are ignored.
var frontMatterFormats = []*frontmatter.Format{
	frontmatter.NewFormat("---", "---", decodeWith(codec.YAML)),
	frontmatter.NewFormat("+++", "+++", decodeWith(codec.TOML)),
}

func decodeWith(format codec.Format) frontmatter.UnmarshalFunc {
	return func(data []byte, v any) error {
		if len(bytes.TrimSpace(data)) == 0 {
			return nil
		}
		return codec.Unmarshal(data, v, format)
	}
}

// frontMatter mirrors Record with string dates as written by users.
type frontMatter struct {
	Title       string   `yaml:"title" toml:"title"`
	Covers      []string `yaml:"covers" toml:"covers"`
	ReadingDate string   `yaml:"readingDate" toml:"reading_date"`
	Author      string   `yaml:"author" toml:"author"`
	Publisher   string   `yaml:"publisher" toml:"publisher"`
	ISBN10      string   `yaml:"isbn10" toml:"isbn10"`
	ISBN13      string   `yaml:"isbn13" toml:"isbn13"`
	ASIN        string   `yaml:"asin" toml:"asin"`
	ReleaseDate string   `yaml:"releaseDate" toml:"release_date"`
	Link        string   `yaml:"link" toml:"link"`
	Tags        []string `yaml:"tags" toml:"tags"`
}

func (f frontMatter) record(opts Options) (*Record, error) {
	r := &Record{
		Title:       f.Title,
		CoverImages: append([]string(nil), f.Covers...),
		Author:      f.Author,
		Publisher:   f.Publisher,
		ISBN10:      f.ISBN10,
		ISBN13:      f.ISBN13,
		ASIN:        f.ASIN,
		Link:        f.Link,
		Tags:        append([]string(nil), f.Tags...),
	}
	var err error
	if r.ReleaseDate, err = parseDate(f.ReleaseDate, opts); err != nil {
		return nil, fmt.Errorf("front matter: release date: %w", err)
	}
	if r.ReadingDate, err = parseDate(f.ReadingDate, opts); err != nil {
		return nil, fmt.Errorf("front matter: reading date: %w", err)
	}
	return r, nil
}

// yamlRecord is the emitted shape of a Record.
type yamlRecord struct {
	Title       string   `yaml:"title,omitempty"`
	Author      string   `yaml:"author,omitempty"`
	Publisher   string   `yaml:"publisher,omitempty"`
	ISBN10      string   `yaml:"isbn10,omitempty"`
	ISBN13      string   `yaml:"isbn13,omitempty"`
	ASIN        string   `yaml:"asin,omitempty"`
	ReleaseDate string   `yaml:"releaseDate,omitempty"`
	ReadingDate string   `yaml:"readingDate,omitempty"`
	Link        string   `yaml:"link,omitempty"`
	Tags        []string `yaml:"tags,omitempty"`
	Covers      []string `yaml:"covers,omitempty"`
}

// dateLayout is the layout dates are emitted with.
const dateLayout = "2006-01-02"

// YAML renders the record as a YAML mapping, omitting absent fields.
func (r *Record) YAML() ([]byte, error) {
	out := yamlRecord{
		Title:     r.Title,
		Author:    r.Author,
		Publisher: r.Publisher,
		ISBN10:    r.ISBN10,
		ISBN13:    r.ISBN13,
		ASIN:      r.ASIN,
		Link:      r.Link,
		Tags:      r.Tags,
		Covers:    r.CoverImages,
	}
	if !r.ReleaseDate.IsZero() {
		out.ReleaseDate = r.ReleaseDate.Format(dateLayout)
	}
	if !r.ReadingDate.IsZero() {
		out.ReadingDate = r.ReadingDate.Format(dateLayout)
	}
	return codec.MarshalYAML(out)
}
