package sc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendDefMessage(t *testing.T) {
	data := []byte{0x53, 0x43, 0x67, 0x66}
	msg := sendDefMessage(data)
	assert.Equal(t, "/d_recv", msg.Address)
	require.Len(t, msg.Arguments, 1)
	assert.Equal(t, data, msg.Arguments[0])
}

func TestNewSynthMessage(t *testing.T) {
	msg := newSynthMessage("saw_osc", 1000, DefaultGroup, map[string]float32{
		"freq": 330,
		"amp":  0.2,
	})
	assert.Equal(t, "/s_new", msg.Address)
	require.Len(t, msg.Arguments, 8)
	assert.Equal(t, "saw_osc", msg.Arguments[0])
	assert.Equal(t, int32(1000), msg.Arguments[1])
	assert.Equal(t, int32(AddToHead), msg.Arguments[2])
	assert.Equal(t, DefaultGroup, msg.Arguments[3])
	// controls are appended in name order so messages are reproducible
	assert.Equal(t, []interface{}{"amp", float32(0.2), "freq", float32(330)}, msg.Arguments[4:])
}

func TestSetMessage(t *testing.T) {
	msg := setMessage(1001, "freq", 220)
	assert.Equal(t, "/n_set", msg.Address)
	assert.Equal(t, []interface{}{int32(1001), "freq", float32(220)}, msg.Arguments)
}

func TestFreeMessages(t *testing.T) {
	msg := freeMessage(1001)
	assert.Equal(t, "/n_free", msg.Address)
	assert.Equal(t, []interface{}{int32(1001)}, msg.Arguments)
	msg = freeDefMessage("saw_osc")
	assert.Equal(t, "/d_free", msg.Address)
	assert.Equal(t, []interface{}{"saw_osc"}, msg.Arguments)
}

func TestNodeIDAllocation(t *testing.T) {
	c := NewClient("localhost", 57110)
	assert.Equal(t, int32(1000), c.nodeID.Add(1))
	assert.Equal(t, int32(1001), c.nodeID.Add(1))
}
