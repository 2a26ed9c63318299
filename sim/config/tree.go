// Package config provides a layered configuration store. A value is
// resolved for a dotted name by walking override layers most-specific
// first; every stored value keeps provenance (the source label that set
// it), and the whole store can be frozen to forbid further writes.
package config

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Sep separates the segments of a dotted configuration path.
const Sep = "."

// Tree is a hierarchical mapping from names to nested Trees or leaf Nodes.
// Every descendant shares the declared layer sequence. Children are
// materialized by writes only; reads never create structure.
type Tree struct {
	layers   []string
	children map[string]any // *Tree or *Node
	frozen   bool
}

// NewTree declares the layer sequence shared by the tree and all of its
// descendants, most-specific first. With no arguments the single layer
// "base" is declared.
func NewTree(layers ...string) *Tree {
	if len(layers) == 0 {
		layers = []string{"base"}
	}
	return &Tree{
		layers:   append([]string(nil), layers...),
		children: make(map[string]any),
	}
}

// Layers returns the declared layer sequence, most-specific first.
func (t *Tree) Layers() []string {
	return append([]string(nil), t.layers...)
}

// Freeze recursively marks the tree and every current descendant frozen.
// Freezing is permanent; descendants created later under a frozen ancestor
// are impossible because frozen trees reject writes.
func (t *Tree) Freeze() {
	t.frozen = true
	for _, c := range t.children {
		switch x := c.(type) {
		case *Tree:
			x.Freeze()
		case *Node:
			x.Freeze()
		}
	}
}

// Contains reports whether a child has been materialized under name. It
// never creates the child and does not imply the child resolves to a value.
func (t *Tree) Contains(name string) bool {
	_, ok := t.children[name]
	return ok
}

// Len counts immediate materialized children only.
func (t *Tree) Len() int {
	return len(t.children)
}

// Get resolves a dotted path: to the child Tree when the path names nested
// structure (for chaining), or to the resolved value when it names a Node.
func (t *Tree) Get(path string) (any, error) {
	return t.GetFromLayer(path, "")
}

// GetValue resolves a dotted path to a Node's value from the most specific
// layer holding one. Paths naming nested structure fail.
func (t *Tree) GetValue(path string) (any, error) {
	return t.GetValueFromLayer(path, "")
}

// GetFromLayer is Get with an explicit layer consulted for Node values.
// An empty layer means the normal most-specific-first scan.
func (t *Tree) GetFromLayer(path, layer string) (any, error) {
	head, rest, _ := strings.Cut(path, Sep)
	c, ok := t.children[head]
	if !ok {
		return nil, fmt.Errorf("%q: %w", head, ErrNotFound)
	}
	switch x := c.(type) {
	case *Tree:
		if rest == "" {
			return x, nil
		}
		return x.GetFromLayer(rest, layer)
	case *Node:
		if rest != "" {
			return nil, fmt.Errorf("%q is a value, not nested structure: %w", head, ErrNotFound)
		}
		_, v, err := x.GetValueWithSource(layer)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", head, err)
		}
		return v, nil
	}
	return nil, fmt.Errorf("%q: %w", head, ErrNotFound)
}

// GetValueFromLayer resolves a dotted path to a Node's value stored at
// layer (or the most specific layer when empty).
func (t *Tree) GetValueFromLayer(path, layer string) (any, error) {
	_, v, err := t.GetValueWithSource(path, layer)
	return v, err
}

// GetValueWithSource resolves a dotted path to a Node and returns the
// winning (source, value) pair, from layer when given.
func (t *Tree) GetValueWithSource(path, layer string) (source string, value any, err error) {
	node, err := t.node(path)
	if err != nil {
		return "", nil, err
	}
	source, value, err = node.GetValueWithSource(layer)
	if err != nil {
		return "", nil, fmt.Errorf("%q: %w", path, err)
	}
	return source, value, nil
}

// node descends a dotted path to its terminal Node, failing on absent
// segments or on paths that terminate in nested structure.
func (t *Tree) node(path string) (*Node, error) {
	head, rest, _ := strings.Cut(path, Sep)
	c, ok := t.children[head]
	if !ok {
		return nil, fmt.Errorf("%q: %w", head, ErrNotFound)
	}
	switch x := c.(type) {
	case *Tree:
		if rest == "" {
			return nil, fmt.Errorf("%q is nested structure, not a value: %w", head, ErrNotFound)
		}
		return x.node(rest)
	case *Node:
		if rest != "" {
			return nil, fmt.Errorf("%q is a value, not nested structure: %w", head, ErrNotFound)
		}
		return x, nil
	}
	return nil, fmt.Errorf("%q: %w", head, ErrNotFound)
}

// Set stores value at path in the default layer with no source.
func (t *Tree) Set(path string, value any) error {
	return t.SetWithMetadata(path, value, "", "")
}

// SetWithMetadata is the layer and source aware write primitive. A
// map[string]any value merges recursively into a child Tree; any other
// value lands in a child Node at the given layer (the default layer when
// empty). A name bound to nested structure that is assigned a scalar is
// rebound to a fresh Node, and vice versa.
func (t *Tree) SetWithMetadata(path string, value any, layer, source string) error {
	if t.frozen {
		return fmt.Errorf("set %q: %w", path, ErrFrozen)
	}
	head, rest, _ := strings.Cut(path, Sep)
	if rest != "" {
		return t.ensureTree(head).SetWithMetadata(rest, value, layer, source)
	}
	if m, ok := value.(map[string]any); ok {
		return t.ensureTree(head).ReadDict(m, layer, source)
	}
	if err := t.ensureNode(head).SetValue(value, layer, source); err != nil {
		return fmt.Errorf("%q: %w", head, err)
	}
	return nil
}

// ReadDict writes every pair of data into the tree at layer with source,
// dispatching nested maps to child Trees and scalars to child Nodes. Keys
// are visited in sorted order so writes are deterministic.
func (t *Tree) ReadDict(data map[string]any, layer, source string) error {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := t.SetWithMetadata(k, data[k], layer, source); err != nil {
			return err
		}
	}
	return nil
}

// ensureTree returns the child Tree under name, creating it or rebinding a
// Node. Called only from write entry points; reads never create structure.
func (t *Tree) ensureTree(name string) *Tree {
	if sub, ok := t.children[name].(*Tree); ok {
		return sub
	}
	sub := NewTree(t.layers...)
	t.children[name] = sub
	return sub
}

// ensureNode returns the child Node under name, creating it or rebinding
// nested structure.
func (t *Tree) ensureNode(name string) *Node {
	if node, ok := t.children[name].(*Node); ok {
		return node
	}
	node := NewNode(t.layers...)
	t.children[name] = node
	return node
}

// Metadata resolves a dotted path to its terminal Node and returns that
// node's per-layer records. Any absent path segment fails.
func (t *Tree) Metadata(path string) ([]Record, error) {
	node, err := t.node(path)
	if err != nil {
		return nil, err
	}
	return node.Metadata(), nil
}

// ResetLayer clears layer from every descendant Node except those whose
// dotted path matches an entry in preserveKeys. A preserved path shields
// its whole subtree.
func (t *Tree) ResetLayer(layer string, preserveKeys ...string) error {
	return t.resetLayer(layer, preserveKeys, "")
}

func (t *Tree) resetLayer(layer string, preserve []string, prefix string) error {
	for name, c := range t.children {
		path := name
		if prefix != "" {
			path = prefix + Sep + name
		}
		if slices.Contains(preserve, path) {
			continue
		}
		switch x := c.(type) {
		case *Tree:
			if err := x.resetLayer(layer, preserve, path); err != nil {
				return err
			}
		case *Node:
			if err := x.ResetLayer(layer); err != nil {
				return fmt.Errorf("%q: %w", path, err)
			}
		}
	}
	return nil
}

// DropLayer removes layer from every descendant and from the declared
// sequence. Dropping a layer that was never declared fails; dropping is
// irreversible.
func (t *Tree) DropLayer(layer string) error {
	if t.frozen {
		return fmt.Errorf("drop layer %q: %w", layer, ErrFrozen)
	}
	i := slices.Index(t.layers, layer)
	if i < 0 {
		return fmt.Errorf("drop layer %q: %w", layer, ErrLayerNotDeclared)
	}
	for name, c := range t.children {
		var err error
		switch x := c.(type) {
		case *Tree:
			err = x.DropLayer(layer)
		case *Node:
			err = x.DropLayer(layer)
		}
		if err != nil {
			return fmt.Errorf("%q: %w", name, err)
		}
	}
	t.layers = slices.Delete(t.layers, i, i+1)
	return nil
}

// Walk visits every materialized descendant Node in sorted dotted-path
// order.
func (t *Tree) Walk(fn func(path string, n *Node)) {
	t.walk(fn, "")
}

func (t *Tree) walk(fn func(string, *Node), prefix string) {
	names := make([]string, 0, len(t.children))
	for name := range t.children {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		path := name
		if prefix != "" {
			path = prefix + Sep + name
		}
		switch x := t.children[name].(type) {
		case *Tree:
			x.walk(fn, path)
		case *Node:
			fn(path, x)
		}
	}
}

// Resolved flattens the tree into a plain nested map of winning values.
// Nodes with no stored value are skipped.
func (t *Tree) Resolved() map[string]any {
	out := make(map[string]any, len(t.children))
	for name, c := range t.children {
		switch x := c.(type) {
		case *Tree:
			out[name] = x.Resolved()
		case *Node:
			if v, err := x.GetValue(""); err == nil {
				out[name] = v
			}
		}
	}
	return out
}
