package sensorproto

import "errors"

// Codec errors. These are the only three failure modes a Reader/Writer or
// any frame encode/decode can produce; none of them carry extra context,
// mirroring the narrow error surface of the byte-oriented wire format they
// guard.
var (
	// ErrBufferToSmall is returned by a Writer when its remaining capacity
	// is insufficient for the bytes being written.
	ErrBufferToSmall = errors.New("sensorproto: buffer too small")
	// ErrUnexpectedEOF is returned by a Reader when fewer bytes are
	// available than a field requires.
	ErrUnexpectedEOF = errors.New("sensorproto: unexpected end of input")
	// ErrUnknownTypeIdentifier is returned when a decoder encounters an
	// opcode or tag byte outside its assigned set.
	ErrUnknownTypeIdentifier = errors.New("sensorproto: unknown type identifier")
)
