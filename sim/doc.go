// Package sim provides the scaffolding of a discrete-event simulation
// framework for population-level modeling.
//
// # Reading Guide
//
// Start with these files to understand the core:
//   - event.go: the Event value that flows through the system
//   - channel.go: per-event-name listener collections and emission order
//   - manager.go: the EventManager that owns channels and the clock
//   - registry.go: how components declare listeners and emitters
//   - engine.go: the Simulation driver tying events and configuration together
//
// # Architecture
//
// Independently developed components are installed with
// Simulation.Setup (or EventManager.SetupComponents directly). A component
// declares its listeners and emitter needs through the capability
// interfaces in registry.go; the manager discovers them and wires them
// into channels. Emission is synchronous: listeners run to completion in
// the caller's stack, ordered by priority then name, and a panicking
// listener aborts the rest of that emission.
//
// Layered configuration lives in the sim/config sub-package; example
// components built on both halves live in sim/components.
package sim
