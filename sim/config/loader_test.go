package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree_LoadString_YAML(t *testing.T) {
	tree := NewTree("override", "base")
	src := `
population:
  size: 1000
  location: global
verbose: true
`
	require.NoError(t, tree.LoadString(src, "base", "model_spec"))

	source, value, err := tree.GetValueWithSource("population.size", "")
	require.NoError(t, err)
	assert.Equal(t, "model_spec", source)
	assert.Equal(t, 1000, value)

	v, err := tree.GetValue("verbose")
	require.NoError(t, err)
	assert.Equal(t, true, v)
}

func TestTree_LoadString_BadYAML(t *testing.T) {
	tree := NewTree()
	assert.Error(t, tree.LoadString("population: [unclosed", "base", "test"))
}

func TestTree_Load_Reader(t *testing.T) {
	tree := NewTree("override", "base")
	r := strings.NewReader("population:\n  size: 50\n")
	require.NoError(t, tree.Load(r, "override", "stream"))

	source, value, err := tree.GetValueWithSource("population.size", "")
	require.NoError(t, err)
	assert.Equal(t, "stream", source)
	assert.Equal(t, 50, value)
}

func TestTree_LoadFile_YAMLPathAsSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte("population:\n  size: 10\n"), 0o644))

	tree := NewTree("override", "base")
	require.NoError(t, tree.LoadFile(path, "base", ""))

	source, value, err := tree.GetValueWithSource("population.size", "")
	require.NoError(t, err)
	assert.Equal(t, path, source)
	assert.Equal(t, 10, value)
}

func TestTree_LoadFile_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.toml")
	src := "verbose = true\n\n[population]\nsize = 1000\nlocation = \"global\"\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	tree := NewTree("override", "base")
	require.NoError(t, tree.LoadFile(path, "base", "model_spec"))

	v, err := tree.GetValue("population.size")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), v) // TOML integers decode as int64

	v, err = tree.GetValue("population.location")
	require.NoError(t, err)
	assert.Equal(t, "global", v)
}

func TestTree_LoadFile_Missing(t *testing.T) {
	tree := NewTree()
	assert.Error(t, tree.LoadFile(filepath.Join(t.TempDir(), "absent.yaml"), "base", ""))
}

func TestTree_Decode_SubtreeIntoStruct(t *testing.T) {
	tree := NewTree("override", "base")
	require.NoError(t, tree.LoadString("population:\n  size: 1000\n  location: global\n", "base", "model_spec"))
	require.NoError(t, tree.SetWithMetadata("population.size", "250", "override", "cli"))

	var got struct {
		Size     int    `mapstructure:"size"`
		Location string `mapstructure:"location"`
	}
	require.NoError(t, tree.Decode("population", &got))

	// The CLI string override decodes weakly into the int field.
	assert.Equal(t, 250, got.Size)
	assert.Equal(t, "global", got.Location)
}

func TestTree_Decode_ValuePathFails(t *testing.T) {
	tree := NewTree()
	require.NoError(t, tree.Set("scalar", 1))

	var out struct{}
	assert.Error(t, tree.Decode("scalar", &out))
	assert.ErrorIs(t, tree.Decode("absent", &out), ErrNotFound)
}
