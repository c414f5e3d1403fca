package sensorproto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sensorproto "github.com/fenwick-iot/sensorproto"
)

// The assigned opcode lanes per frame family. Every byte outside its
// family's set must be rejected as an unknown identifier, never silently
// passed through.
var (
	assignedRequestOpcodes = map[byte]bool{
		0x00: true, 0x01: true, 0x02: true,
		0x10: true, 0x11: true,
		0xA0: true, 0xA1: true,
		0xD0: true, 0xD1: true,
		0xFB: true, 0xFC: true, 0xFD: true, 0xFE: true, 0xFF: true,
	}
	assignedResponseOpcodes = map[byte]bool{0x00: true, 0xF0: true, 0xF1: true}
	assignedFormatOpcodes   = map[byte]bool{0x00: true, 0x01: true, 0x02: true, 0xFF: true}
	assignedBusOpcodes      = map[byte]bool{0x00: true, 0x01: true, 0xFF: true}
	assignedTypeOpcodes     = map[byte]bool{
		0x00: true, 0x01: true, 0x02: true, 0x03: true, 0x04: true, 0x05: true,
		0xC0: true,
		0xF6: true, 0xF7: true, 0xF8: true, 0xF9: true, 0xFA: true,
		0xFB: true, 0xFC: true, 0xFD: true, 0xFE: true, 0xFF: true,
	}
)

func TestReadRequestRejectsEveryUnassignedOpcode(t *testing.T) {
	for b := 0; b < 256; b++ {
		if assignedRequestOpcodes[byte(b)] {
			continue
		}
		_, err := sensorproto.ReadRequest(sensorproto.NewSliceReader([]byte{byte(b), 0x00}))
		assert.ErrorIs(t, err, sensorproto.ErrUnknownTypeIdentifier, "opcode %#02x", b)
	}
}

func TestReadResponseRejectsEveryUnassignedOpcode(t *testing.T) {
	for b := 0; b < 256; b++ {
		if assignedResponseOpcodes[byte(b)] {
			continue
		}
		_, err := sensorproto.ReadResponse(sensorproto.NewSliceReader([]byte{byte(b), 0x00}))
		assert.ErrorIs(t, err, sensorproto.ErrUnknownTypeIdentifier, "opcode %#02x", b)
	}
}

func TestReadFormatRejectsEveryUnassignedOpcode(t *testing.T) {
	for b := 0; b < 256; b++ {
		if assignedFormatOpcodes[byte(b)] {
			continue
		}
		_, err := sensorproto.ReadFormat(sensorproto.NewSliceReader([]byte{byte(b)}))
		assert.ErrorIs(t, err, sensorproto.ErrUnknownTypeIdentifier, "opcode %#02x", b)
	}
}

func TestReadBusRejectsEveryUnassignedOpcode(t *testing.T) {
	for b := 0; b < 256; b++ {
		if assignedBusOpcodes[byte(b)] {
			continue
		}
		_, err := sensorproto.ReadBus(sensorproto.NewSliceReader([]byte{byte(b)}))
		assert.ErrorIs(t, err, sensorproto.ErrUnknownTypeIdentifier, "opcode %#02x", b)
	}
}

func TestReadTypeRejectsEveryUnassignedOpcode(t *testing.T) {
	for b := 0; b < 256; b++ {
		if assignedTypeOpcodes[byte(b)] {
			continue
		}
		_, err := sensorproto.ReadType(sensorproto.NewSliceReader([]byte{byte(b)}))
		assert.ErrorIs(t, err, sensorproto.ErrUnknownTypeIdentifier, "opcode %#02x", b)
	}
}

func TestResponseWriteCapacityBoundary(t *testing.T) {
	ok := sensorproto.Ok(0x07, sensorproto.ValueOnly(sensorproto.F32Type))

	_, err := ok.Write(sensorproto.NewSliceWriter(make([]byte, 3)))
	assert.ErrorIs(t, err, sensorproto.ErrBufferToSmall)

	w := sensorproto.NewSliceWriter(make([]byte, 4))
	n, err := ok.Write(w)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, 0, w.Available())
}

func TestReadResponseTruncatedFrame(t *testing.T) {
	// Ok header cut off before its Format byte.
	_, err := sensorproto.ReadResponse(sensorproto.NewSliceReader([]byte{0x00, 0x07}))
	assert.ErrorIs(t, err, sensorproto.ErrUnexpectedEOF)

	_, err = sensorproto.ReadResponse(sensorproto.NewSliceReader(nil))
	assert.ErrorIs(t, err, sensorproto.ErrUnexpectedEOF)
}
