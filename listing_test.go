package orafm_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	orafm "github.com/kylecombs/ORA-FM-sub001"
)

func TestListingGolden(t *testing.T) {
	def, err := orafm.BuildSynthDef(sawSpec())
	require.NoError(t, err)
	listing, err := def.Listing()
	require.NoError(t, err)
	g := goldie.New(t)
	g.Assert(t, "saw_osc_listing", []byte(listing))
}

func TestSpecFiles(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.yml"))
	require.NoError(t, err)
	require.NotEmpty(t, files)
	for _, filename := range files {
		name := strings.TrimSuffix(filepath.Base(filename), ".yml")
		t.Run(name, func(t *testing.T) {
			data, err := os.ReadFile(filename)
			require.NoError(t, err)
			var spec orafm.GenSpec
			require.NoError(t, yaml.Unmarshal(data, &spec))
			def, err := orafm.BuildSynthDef(spec)
			require.NoError(t, err)
			assertWellFormed(t, def)
		})
	}
}
