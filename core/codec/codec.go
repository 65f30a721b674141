package codec

import (
	"bytes"
	"fmt"

	"mods-merger/core/dcx"

	"gopkg.in/yaml.v3"
)

// Envelope remembers how a document was stored so it can be written back the same way.
// Documents embed it.
type Envelope struct {
	Compression dcx.Mode `yaml:"-" json:"-"`
}

func (e *Envelope) envelope() *Envelope {
	return e
}

// Mode returns the compression the document was decoded with.
func (e *Envelope) Mode() dcx.Mode {
	if e.Compression == "" {
		return dcx.ModeNone
	}
	return e.Compression
}

// Document is any struct embedding Envelope.
type Document interface {
	envelope() *Envelope
}

// Decode unwraps the container and decodes the YAML payload into doc.
func Decode(data []byte, doc Document) error {
	payload, mode, err := dcx.Unwrap(data)
	if err != nil {
		return fmt.Errorf("container: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(payload))
	dec.KnownFields(true)
	if err := dec.Decode(doc); err != nil {
		return fmt.Errorf("document: %w", err)
	}
	doc.envelope().Compression = mode
	return nil
}

// Encode serializes doc and wraps it in the container mode it was decoded with.
func Encode(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("document: %w", err)
	}

	out, err := dcx.Wrap(buf.Bytes(), doc.envelope().Mode())
	if err != nil {
		return nil, fmt.Errorf("container: %w", err)
	}
	return out, nil
}
