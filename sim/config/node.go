package config

import (
	"fmt"
	"slices"
)

// valueEntry pairs a stored value with its provenance label.
type valueEntry struct {
	source string
	value  any
}

// Node holds one configurable scalar across the declared override layers.
// Layers are declared most-specific first; the last declared layer is the
// default write target. Resolution walks the declared order and returns
// the first layer holding a value.
type Node struct {
	layers []string
	values map[string]valueEntry
	frozen bool
}

// NewNode declares the layer sequence for a standalone node. With no
// arguments the single layer "base" is declared.
func NewNode(layers ...string) *Node {
	if len(layers) == 0 {
		layers = []string{"base"}
	}
	return &Node{
		layers: append([]string(nil), layers...),
		values: make(map[string]valueEntry),
	}
}

// Record is one layer's stored value as reported by Metadata.
type Record struct {
	Layer   string
	Value   any
	Source  string
	Default bool
}

// Freeze forbids all further writes. Freezing is permanent.
func (n *Node) Freeze() {
	n.frozen = true
}

// GetValueWithSource returns the stored (source, value) for layer, or, when
// layer is empty, for the most specific layer holding a value.
func (n *Node) GetValueWithSource(layer string) (source string, value any, err error) {
	if layer != "" {
		e, ok := n.values[layer]
		if !ok {
			return "", nil, fmt.Errorf("layer %q: %w", layer, ErrNotFound)
		}
		return e.source, e.value, nil
	}
	for _, l := range n.layers {
		if e, ok := n.values[l]; ok {
			return e.source, e.value, nil
		}
	}
	return "", nil, fmt.Errorf("no layer holds a value: %w", ErrNotFound)
}

// GetValue returns only the value half of GetValueWithSource.
func (n *Node) GetValue(layer string) (any, error) {
	_, v, err := n.GetValueWithSource(layer)
	return v, err
}

// SetValue stores value in layer (the default layer when empty) with the
// given provenance label.
func (n *Node) SetValue(value any, layer, source string) error {
	if n.frozen {
		return fmt.Errorf("set value: %w", ErrFrozen)
	}
	if layer == "" {
		layer = n.layers[len(n.layers)-1]
	}
	n.values[layer] = valueEntry{source: source, value: value}
	return nil
}

// Metadata reports, in declaration order, every declared layer holding a
// value. The record for the default (last declared) layer is flagged.
func (n *Node) Metadata() []Record {
	var records []Record
	for _, l := range n.layers {
		e, ok := n.values[l]
		if !ok {
			continue
		}
		records = append(records, Record{
			Layer:   l,
			Value:   e.value,
			Source:  e.source,
			Default: l == n.layers[len(n.layers)-1],
		})
	}
	return records
}

// ResetLayer removes the value stored at layer, keeping the layer declared.
// Resetting a layer with no stored value is a no-op.
func (n *Node) ResetLayer(layer string) error {
	if n.frozen {
		return fmt.Errorf("reset layer %q: %w", layer, ErrFrozen)
	}
	delete(n.values, layer)
	return nil
}

// DropLayer removes layer's value and its declaration. Dropping is
// irreversible; dropping a layer that was never declared fails.
func (n *Node) DropLayer(layer string) error {
	if n.frozen {
		return fmt.Errorf("drop layer %q: %w", layer, ErrFrozen)
	}
	i := slices.Index(n.layers, layer)
	if i < 0 {
		return fmt.Errorf("drop layer %q: %w", layer, ErrLayerNotDeclared)
	}
	delete(n.values, layer)
	n.layers = slices.Delete(n.layers, i, i+1)
	return nil
}
