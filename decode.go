package sensorproto

import (
	"encoding/binary"
	"math"
)

// DecodeF32Values decodes payload as a sequence of consecutive 4-byte
// big-endian floats, dropping any trailing partial chunk.
func DecodeF32Values(payload []byte) []float32 {
	count := len(payload) / 4
	values := make([]float32, 0, count)
	for i := 0; i < count; i++ {
		values = append(values, decodeBEF32(payload[i*4:i*4+4]))
	}
	return values
}

// DecodeAddressValueF32Pairs decodes payload as a sequence of
// (addressLen+4)-byte records, extracting the last 4 bytes of each record
// as a big-endian float. Trailing partial records are dropped.
func DecodeAddressValueF32Pairs(addressLen byte, payload []byte) []float32 {
	recordLen := int(addressLen) + 4
	if recordLen <= 0 {
		return nil
	}
	count := len(payload) / recordLen
	values := make([]float32, 0, count)
	for i := 0; i < count; i++ {
		record := payload[i*recordLen : (i+1)*recordLen]
		values = append(values, decodeBEF32(record[len(record)-4:]))
	}
	return values
}

// DecodeResponseF32 extracts float32 values from resp's payload according
// to its advertised Format. It returns ok=false for any Format/Type
// combination this module doesn't know how to interpret as F32 values.
func DecodeResponseF32(resp Response, payload []byte) (values []float32, ok bool) {
	if resp.Kind != ResponseOk {
		return nil, false
	}
	switch {
	case resp.Format.Kind == FormatValueOnly && resp.Format.T1.Kind == TypeF32:
		return DecodeF32Values(payload), true
	case resp.Format.Kind == FormatAddressValuePairs &&
		resp.Format.T1.Kind == TypeBytes &&
		resp.Format.T2.Kind == TypeF32:
		return DecodeAddressValueF32Pairs(resp.Format.T1.Size, payload), true
	default:
		return nil, false
	}
}

func decodeBEF32(b []byte) float32 {
	bits := binary.BigEndian.Uint32(b)
	return math.Float32frombits(bits)
}
