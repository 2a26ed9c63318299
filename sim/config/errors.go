package config

import "errors"

// Sentinel errors for the configuration store.
var (
	// ErrNotFound is returned when no consulted layer holds a value for a
	// name, or when a dotted path has an absent segment.
	ErrNotFound = errors.New("config: not found")

	// ErrFrozen is returned for any mutation of a frozen node or tree.
	ErrFrozen = errors.New("config: frozen")

	// ErrLayerNotDeclared is returned when dropping a layer that was never
	// part of the declared sequence.
	ErrLayerNotDeclared = errors.New("config: layer not declared")
)
