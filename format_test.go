package sensorproto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sensorproto "github.com/fenwick-iot/sensorproto"
)

func TestFormatRoundTrip(t *testing.T) {
	cases := []struct {
		name   string
		format sensorproto.Format
		want   []byte
	}{
		{"value-only-f32", sensorproto.ValueOnly(sensorproto.F32Type), []byte{0x00, 0x00}},
		{"address-only-property-id", sensorproto.AddressOnly(sensorproto.PropertyIDType), []byte{0x01, 0x03}},
		{
			"address-value-pairs",
			sensorproto.AddressValuePairs(sensorproto.BytesType(1), sensorproto.F32Type),
			[]byte{0x02, 0x01, 0x01, 0x00},
		},
		{"empty", sensorproto.EmptyFormat, []byte{0xFF}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			buf := make([]byte, len(c.want))
			n, err := c.format.Write(sensorproto.NewSliceWriter(buf))
			require.NoError(t, err)
			assert.Equal(t, len(c.want), n)
			assert.Equal(t, c.want, buf)

			got, err := sensorproto.ReadFormat(sensorproto.NewSliceReader(buf))
			require.NoError(t, err)
			assert.Equal(t, c.format, got)
		})
	}
}
