package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afcarl/vivarium/sim"
	"github.com/afcarl/vivarium/sim/config"
)

func TestLoadConfiguration_FilesThenOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte("population:\n  size: 1000\n"), 0o644))

	configFiles = []string{path}
	setPairs = []string{"population.size=250"}
	defer func() {
		configFiles = nil
		setPairs = nil
	}()

	tree := config.NewTree(sim.LayerOverride, sim.LayerComponents, sim.LayerBase)
	loadConfiguration(tree)

	// The CLI override wins; the file value survives underneath it.
	source, value, err := tree.GetValueWithSource("population.size", "")
	require.NoError(t, err)
	assert.Equal(t, "cli", source)
	assert.Equal(t, "250", value)

	value, err = tree.GetValueFromLayer("population.size", sim.LayerBase)
	require.NoError(t, err)
	assert.Equal(t, 1000, value)
}
