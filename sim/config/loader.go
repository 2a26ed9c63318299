package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// LoadString parses src as YAML into a nested mapping and writes it into
// the tree at layer with source. The markup grammar is entirely the
// parser's; the tree only sees the resulting mapping.
func (t *Tree) LoadString(src, layer, source string) error {
	var data map[string]any
	if err := yaml.Unmarshal([]byte(src), &data); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	return t.ReadDict(data, layer, source)
}

// Load reads YAML configuration from an open stream.
func (t *Tree) Load(r io.Reader, layer, source string) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	return t.LoadString(string(b), layer, source)
}

// LoadFile reads configuration from a file path. Files ending in .toml
// parse as TOML, everything else as YAML. When source is empty the file
// path is recorded as provenance.
func (t *Tree) LoadFile(path, layer, source string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if source == "" {
		source = path
	}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		var data map[string]any
		if err := toml.Unmarshal(b, &data); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
		return t.ReadDict(data, layer, source)
	}
	return t.LoadString(string(b), layer, source)
}

// Decode materializes the resolved values under path into out, a pointer
// to a struct or map. An empty path decodes the whole tree. Decoding is
// weakly typed, so "30" satisfies an int field the way a YAML scalar
// would.
func (t *Tree) Decode(path string, out any) error {
	sub := t
	if path != "" {
		v, err := t.Get(path)
		if err != nil {
			return err
		}
		var ok bool
		if sub, ok = v.(*Tree); !ok {
			return fmt.Errorf("decode %q: path resolves to a value, not nested structure", path)
		}
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("decode %q: %w", path, err)
	}
	if err := dec.Decode(sub.Resolved()); err != nil {
		return fmt.Errorf("decode %q: %w", path, err)
	}
	return nil
}
