package text

import (
	"strings"

	"mods-merger/core/codec"

	"golang.org/x/text/unicode/norm"
)

// Document is a bundle of localized text tables.
type Document struct {
	codec.Envelope `yaml:"-"`

	Tables []Table `yaml:"tables"`
}

// Table is an ordered list of entries keyed by id.
type Table struct {
	Name    string  `yaml:"name"`
	Entries []Entry `yaml:"entries"`
}

// Entry is one localized string.
type Entry struct {
	ID   int32  `yaml:"id"`
	Text string `yaml:"text"`
}

// Normalize returns s with CRLF line endings folded to LF and Unicode in NFC form.
func Normalize(s string) string {
	return norm.NFC.String(strings.ReplaceAll(s, "\r\n", "\n"))
}

// EntriesEqual compares entry text after normalization.
func EntriesEqual(a, b Entry) bool {
	if a.Text == b.Text {
		return true
	}
	return Normalize(a.Text) == Normalize(b.Text)
}

// Lookup returns the entry with id.
func (t Table) Lookup(id int32) (Entry, bool) {
	for _, e := range t.Entries {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Decode parses a text bundle.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := codec.Decode(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Encode serializes a text bundle with its original compression.
func Encode(doc *Document) ([]byte, error) {
	return codec.Encode(doc)
}
