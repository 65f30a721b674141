// Package codec decodes and encodes asset documents.
//
// Documents are YAML payloads inside a dcx container. A document type embeds
// Envelope, which records the container mode seen on Decode so that Encode
// writes the merged result back with the same compression.
//
//	type Document struct {
//	    codec.Envelope `yaml:"-"`
//	    Materials []Material `yaml:"materials"`
//	}
//
//	var doc Document
//	err := codec.Decode(data, &doc)
//	out, err := codec.Encode(&doc)
package codec
