package sensorproto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	sensorproto "github.com/fenwick-iot/sensorproto"
)

func TestDecodeF32Values(t *testing.T) {
	// 20.0f32 big-endian is [0x41, 0xA0, 0x00, 0x00]
	payload := []byte{0x41, 0xA0, 0x00, 0x00, 0x41, 0xA0, 0x00, 0x00}
	values := sensorproto.DecodeF32Values(payload)
	assert.Equal(t, []float32{20.0, 20.0}, values)
}

func TestDecodeF32ValuesDropsTrailingPartialChunk(t *testing.T) {
	payload := []byte{0x41, 0xA0, 0x00, 0x00, 0x01, 0x02}
	values := sensorproto.DecodeF32Values(payload)
	assert.Equal(t, []float32{20.0}, values)
}

func TestDecodeAddressValueF32Pairs(t *testing.T) {
	// 1-byte address followed by a 20.0f32 value, twice.
	payload := []byte{
		0x01, 0x41, 0xA0, 0x00, 0x00,
		0x02, 0x41, 0xA0, 0x00, 0x00,
	}
	values := sensorproto.DecodeAddressValueF32Pairs(1, payload)
	assert.Equal(t, []float32{20.0, 20.0}, values)
}

func TestDecodeResponseF32UnknownFormatIsNotOk(t *testing.T) {
	resp := sensorproto.Ok(0x01, sensorproto.AddressOnly(sensorproto.PropertyIDType))
	_, ok := sensorproto.DecodeResponseF32(resp, []byte{0x01, 0x02})
	assert.False(t, ok)
}

func TestDecodeResponseF32RejectsNonOkResponse(t *testing.T) {
	resp := sensorproto.NotAvailable(0x01)
	_, ok := sensorproto.DecodeResponseF32(resp, nil)
	assert.False(t, ok)
}
