// Package sc is the thin client side of the audio engine's control
// protocol: it delivers encoded synthdef files and issues the handful
// of node commands the builder's callers need. The engine itself (DSP,
// scheduling, audio output) is a black box behind these messages.
package sc

import (
	"sort"
	"sync/atomic"

	"github.com/hypebeast/go-osc/osc"
)

// Add actions for NewSynth, as defined by the engine's command
// reference.
const (
	AddToHead = 0
	AddToTail = 1
)

// DefaultGroup is the engine's default group, the usual target for new
// synth nodes.
const DefaultGroup int32 = 1

// Client talks to one engine instance over UDP. Node ids are allocated
// from an atomic counter, so a Client is safe for concurrent use.
type Client struct {
	conn   *osc.Client
	nodeID atomic.Int32
}

func NewClient(host string, port int) *Client {
	c := &Client{conn: osc.NewClient(host, port)}
	c.nodeID.Store(999) // first allocated id is 1000
	return c
}

// SendDef delivers an encoded synthdef file to the engine, which
// registers every definition in it by name.
func (c *Client) SendDef(data []byte) error {
	return c.conn.Send(sendDefMessage(data))
}

// FreeDef removes a definition from the engine's registry. Running
// nodes built from it keep playing.
func (c *Client) FreeDef(name string) error {
	return c.conn.Send(freeDefMessage(name))
}

// NewSynth instantiates a registered definition in the given group and
// returns the allocated node id. Initial controls are sent as a flat
// list of name/value pairs, addressed by the parameter names the
// builder declared.
func (c *Client) NewSynth(def string, group int32, controls map[string]float32) (int32, error) {
	id := c.nodeID.Add(1)
	return id, c.conn.Send(newSynthMessage(def, id, group, controls))
}

// Set updates one named control of a running node.
func (c *Client) Set(node int32, name string, value float32) error {
	return c.conn.Send(setMessage(node, name, value))
}

// Free stops and removes a running node.
func (c *Client) Free(node int32) error {
	return c.conn.Send(freeMessage(node))
}

func sendDefMessage(data []byte) *osc.Message {
	msg := osc.NewMessage("/d_recv")
	msg.Append(data)
	return msg
}

func freeDefMessage(name string) *osc.Message {
	msg := osc.NewMessage("/d_free")
	msg.Append(name)
	return msg
}

func newSynthMessage(def string, id, group int32, controls map[string]float32) *osc.Message {
	msg := osc.NewMessage("/s_new")
	msg.Append(def)
	msg.Append(id)
	msg.Append(int32(AddToHead))
	msg.Append(group)
	// sorted so the same call always produces the same message
	names := make([]string, 0, len(controls))
	for name := range controls {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		msg.Append(name)
		msg.Append(controls[name])
	}
	return msg
}

func setMessage(node int32, name string, value float32) *osc.Message {
	msg := osc.NewMessage("/n_set")
	msg.Append(node)
	msg.Append(name)
	msg.Append(value)
	return msg
}

func freeMessage(node int32) *osc.Message {
	msg := osc.NewMessage("/n_free")
	msg.Append(node)
	return msg
}
