package scformat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterPrimitives(t *testing.T) {
	var w writer
	w.int8(-1)
	w.int16(0x0102)
	w.int32(0x01020304)
	w.float32(1.0)
	require.NoError(t, w.pstring("ab"))
	assert.Equal(t, []byte{
		0xff,
		0x01, 0x02,
		0x01, 0x02, 0x03, 0x04,
		0x3f, 0x80, 0x00, 0x00,
		0x02, 'a', 'b',
	}, w.buf.Bytes())
}

func TestWriterStringTooLong(t *testing.T) {
	var w writer
	err := w.pstring(strings.Repeat("x", 256))
	var tooLong *StringTooLongError
	require.ErrorAs(t, err, &tooLong)
	require.NoError(t, w.pstring(strings.Repeat("x", 255)))
}

func TestCounterStringTooLong(t *testing.T) {
	var c counter
	err := c.pstring(strings.Repeat("x", 256))
	var tooLong *StringTooLongError
	require.ErrorAs(t, err, &tooLong)
}

func TestCounterMatchesWriter(t *testing.T) {
	var c counter
	var w writer
	for _, s := range []sink{&c, &w} {
		s.int8(1)
		s.int16(2)
		s.int32(3)
		s.float32(4)
		require.NoError(t, s.pstring("hello"))
	}
	assert.Equal(t, c.n, w.buf.Len())
}
