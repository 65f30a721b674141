// Package dcx reads and writes the compression container around asset documents.
//
// A container is a 16 byte header followed by the compressed payload:
//
//	"DCX\x00" | mode (4 bytes, "DFLT" or "ZSTD") | uncompressed size (uint32 BE) | compressed size (uint32 BE)
//
// Data without the magic is treated as an uncompressed payload (ModeNone).
// Unwrap reports the mode so the caller can re-wrap with the same one.
package dcx
