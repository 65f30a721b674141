package dcx

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// Mode is the compression applied to a payload.
type Mode string

const (
	// ModeNone is an uncompressed payload without a container header.
	ModeNone Mode = "none"
	// ModeDeflate is a zlib stream.
	ModeDeflate Mode = "DFLT"
	// ModeZstd is a zstandard frame.
	ModeZstd Mode = "ZSTD"
)

// Magic opens every container.
var Magic = []byte("DCX\x00")

// HeaderSize is the size of the container header preceding the payload.
const HeaderSize = 16

// MaxPayload bounds the declared uncompressed size.
const MaxPayload = 1 << 30

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeNone, ModeDeflate, ModeZstd:
		return true
	}
	return false
}

// ParseMode maps a configuration value to a Mode. Empty means ModeNone.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "none", "NONE":
		return ModeNone, nil
	case "DFLT", "dflt", "deflate", "zlib":
		return ModeDeflate, nil
	case "ZSTD", "zstd":
		return ModeZstd, nil
	}
	return "", errors.Errorf("unknown compression mode %q", s)
}

// Detect returns the mode of data without decompressing it.
// Data without the container magic is ModeNone.
func Detect(data []byte) (Mode, error) {
	if !bytes.HasPrefix(data, Magic) {
		return ModeNone, nil
	}
	if len(data) < HeaderSize {
		return "", errors.Errorf("truncated container header: %d bytes", len(data))
	}
	m := Mode(data[4:8])
	if m != ModeDeflate && m != ModeZstd {
		return "", errors.Errorf("unsupported container mode %q", string(data[4:8]))
	}
	return m, nil
}

// Unwrap returns the decompressed payload and the mode it was stored with.
func Unwrap(data []byte) ([]byte, Mode, error) {
	mode, err := Detect(data)
	if err != nil {
		return nil, "", err
	}
	if mode == ModeNone {
		return data, ModeNone, nil
	}

	size := binary.BigEndian.Uint32(data[8:12])
	compressed := binary.BigEndian.Uint32(data[12:16])
	if size > MaxPayload {
		return nil, "", errors.Errorf("declared payload size %d exceeds limit", size)
	}
	if int(compressed) != len(data)-HeaderSize {
		return nil, "", errors.Errorf("compressed size mismatch: header %d, actual %d", compressed, len(data)-HeaderSize)
	}
	body := data[HeaderSize:]

	var out []byte
	switch mode {
	case ModeDeflate:
		r, err := zlib.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, "", errors.Wrap(err, "open zlib stream")
		}
		defer r.Close()
		out, err = io.ReadAll(io.LimitReader(r, int64(size)+1))
		if err != nil {
			return nil, "", errors.Wrap(err, "inflate payload")
		}
	case ModeZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, "", errors.Wrap(err, "create zstd decoder")
		}
		defer dec.Close()
		out, err = dec.DecodeAll(body, make([]byte, 0, size))
		if err != nil {
			return nil, "", errors.Wrap(err, "decode zstd payload")
		}
	}

	if uint32(len(out)) != size {
		return nil, "", errors.Errorf("payload size mismatch: header %d, actual %d", size, len(out))
	}
	return out, mode, nil
}

// Wrap compresses payload with mode and prepends the container header.
// ModeNone returns the payload unchanged.
func Wrap(payload []byte, mode Mode) ([]byte, error) {
	if len(payload) > MaxPayload {
		return nil, errors.Errorf("payload of %d bytes exceeds limit", len(payload))
	}

	var body []byte
	switch mode {
	case ModeNone, "":
		return payload, nil
	case ModeDeflate:
		var buf bytes.Buffer
		w, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
		if err != nil {
			return nil, errors.Wrap(err, "create zlib writer")
		}
		if _, err := w.Write(payload); err != nil {
			return nil, errors.Wrap(err, "deflate payload")
		}
		if err := w.Close(); err != nil {
			return nil, errors.Wrap(err, "close zlib writer")
		}
		body = buf.Bytes()
	case ModeZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, errors.Wrap(err, "create zstd encoder")
		}
		body = enc.EncodeAll(payload, nil)
		if err := enc.Close(); err != nil {
			return nil, errors.Wrap(err, "close zstd encoder")
		}
	default:
		return nil, errors.Errorf("unsupported container mode %q", string(mode))
	}

	out := make([]byte, HeaderSize, HeaderSize+len(body))
	copy(out, Magic)
	copy(out[4:8], string(mode))
	binary.BigEndian.PutUint32(out[8:12], uint32(len(payload)))
	binary.BigEndian.PutUint32(out[12:16], uint32(len(body)))
	return append(out, body...), nil
}
