package sensorproto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sensorproto "github.com/fenwick-iot/sensorproto"
)

func TestSliceReaderAdvances(t *testing.T) {
	r := sensorproto.NewSliceReader([]byte{0x01, 0x02})
	assert.Equal(t, 2, r.Available())

	b, err := r.ReadU8()
	require.NoError(t, err)
	assert.Equal(t, byte(0x01), b)
	assert.Equal(t, 1, r.Available())

	b, err = r.ReadU8()
	require.NoError(t, err)
	assert.Equal(t, byte(0x02), b)

	_, err = r.ReadU8()
	assert.ErrorIs(t, err, sensorproto.ErrUnexpectedEOF)
}

func TestReadAllDoesNotPartiallyConsume(t *testing.T) {
	r := sensorproto.NewSliceReader([]byte{0x01, 0x02})
	dst := make([]byte, 3)
	_, err := sensorproto.ReadAll(r, dst)
	assert.ErrorIs(t, err, sensorproto.ErrUnexpectedEOF)
	// The failed read must not have advanced the cursor.
	assert.Equal(t, 2, r.Available())
}

func TestWriteAllPreChecksCapacity(t *testing.T) {
	w := sensorproto.NewSliceWriter(make([]byte, 2))
	_, err := sensorproto.WriteAll(w, []byte{0x01, 0x02, 0x03})
	assert.ErrorIs(t, err, sensorproto.ErrBufferToSmall)
	// Nothing was written.
	assert.Equal(t, 2, w.Available())

	n, err := sensorproto.WriteAll(w, []byte{0x01, 0x02})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 0, w.Available())
	assert.Equal(t, []byte{0x01, 0x02}, w.Written())
}

func TestBufferReportsEffectivelyUnboundedCapacity(t *testing.T) {
	buf := sensorproto.NewBuffer()
	before := buf.Available()
	assert.Greater(t, before, 1<<20)

	_, err := buf.WriteU8(0xAB)
	require.NoError(t, err)
	assert.Equal(t, before-1, buf.Available())
	assert.Equal(t, []byte{0xAB}, buf.Bytes())
	assert.Equal(t, 1, buf.Len())
}
