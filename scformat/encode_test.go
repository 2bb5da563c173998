package scformat_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orafm "github.com/kylecombs/ORA-FM-sub001"
	"github.com/kylecombs/ORA-FM-sub001/scformat"
)

func sawSpec() orafm.GenSpec {
	return orafm.GenSpec{
		Name: "saw_osc",
		UGen: "Saw",
		Params: []orafm.ParamSpec{
			{Name: "freq", Default: 440, Mod: "freq_mod"},
			{Name: "amp", Default: 0.5, Role: orafm.RoleAmp, Mod: "amp_mod"},
		},
	}
}

func sawDef(t *testing.T) *orafm.SynthDef {
	t.Helper()
	def, err := orafm.BuildSynthDef(sawSpec())
	require.NoError(t, err)
	return def
}

func TestEncodeHeader(t *testing.T) {
	def := sawDef(t)
	buf, err := scformat.Encode(def)
	require.NoError(t, err)
	require.Greater(t, len(buf), 10)
	assert.Equal(t, "SCgf", string(buf[:4]))
	assert.Equal(t, []byte{0, 0, 0, 2}, buf[4:8], "format version")
	assert.Equal(t, []byte{0, 1}, buf[8:10], "synthdef count")
}

func TestEncodedSizeMatchesOutput(t *testing.T) {
	def := sawDef(t)
	size, err := scformat.EncodedSize(def)
	require.NoError(t, err)
	buf, err := scformat.Encode(def)
	require.NoError(t, err)
	assert.Equal(t, size, len(buf))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	def := sawDef(t)
	buf, err := scformat.Encode(def)
	require.NoError(t, err)
	defs, err := scformat.Decode(buf)
	require.NoError(t, err)
	require.Len(t, defs, 1)
	got := defs[0]
	assert.Equal(t, def.Name(), got.Name)
	assert.Equal(t, def.Constants(), got.Constants)
	params := def.Params()
	require.Len(t, got.ParamDefaults, len(params))
	require.Len(t, got.ParamNames, len(params))
	for i, p := range params {
		assert.Equal(t, p.Default, got.ParamDefaults[i])
		assert.Equal(t, p.Name, got.ParamNames[i].Name)
		assert.Equal(t, int32(i), got.ParamNames[i].Index, "absolute index matches the defaults-table position")
	}
	ugens := def.UGens()
	require.Len(t, got.UGens, len(ugens))
	for i, u := range ugens {
		gu := got.UGens[i]
		assert.Equal(t, u.Class, gu.Class)
		assert.Equal(t, int8(u.Rate), gu.Rate)
		assert.Equal(t, u.Special, gu.Special)
		require.Len(t, gu.Inputs, len(u.Inputs))
		for j, in := range u.Inputs {
			assert.Equal(t, in.UGen, gu.Inputs[j].UGen)
			assert.Equal(t, in.Output, gu.Inputs[j].Output)
		}
		require.Len(t, gu.Outputs, len(u.Outputs))
		for j, r := range u.Outputs {
			assert.Equal(t, int8(r), gu.Outputs[j])
		}
	}
}

func TestEncodeIdempotent(t *testing.T) {
	first, err := scformat.Encode(sawDef(t))
	require.NoError(t, err)
	second, err := scformat.Encode(sawDef(t))
	require.NoError(t, err)
	assert.True(t, bytes.Equal(first, second), "building the same spec twice must encode byte-identically")
}

func TestEncodeMultipleDefs(t *testing.T) {
	other, err := orafm.BuildSynthDef(orafm.GenSpec{
		Name:   "sine",
		UGen:   "SinOsc",
		Params: []orafm.ParamSpec{{Name: "freq", Default: 440}},
	})
	require.NoError(t, err)
	buf, err := scformat.Encode(sawDef(t), other)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 2}, buf[8:10])
	defs, err := scformat.Decode(buf)
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, "saw_osc", defs[0].Name)
	assert.Equal(t, "sine", defs[1].Name)
}

func TestEncodeNameTooLong(t *testing.T) {
	def := orafm.NewSynthDef(strings.Repeat("x", 256))
	buf, err := scformat.Encode(def)
	var tooLong *scformat.StringTooLongError
	require.ErrorAs(t, err, &tooLong)
	assert.Nil(t, buf, "no partial output on failure")
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := scformat.Decode([]byte("nope"))
	assert.Error(t, err)
	buf, err := scformat.Encode(sawDef(t))
	require.NoError(t, err)
	_, err = scformat.Decode(buf[:len(buf)-1])
	assert.Error(t, err, "truncated input must not decode")
	_, err = scformat.Decode(append(append([]byte{}, buf...), 0))
	assert.Error(t, err, "trailing bytes must not decode")
}
