package sim

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/afcarl/vivarium/sim/config"
)

// Configuration layer names, most specific first. Plain writes land in
// LayerBase; component defaults are merged into LayerComponents during
// setup; runtime overrides (CLI, callers) go to LayerOverride.
const (
	LayerOverride   = "override"
	LayerComponents = "component_configs"
	LayerBase       = "base"
)

// Event names emitted by the simulation driver.
const (
	EventSimulationStart = "simulation_start"
	EventTimeStep        = "time_step"
	EventSimulationEnd   = "simulation_end"
)

// UserDataStepSize is the UserData key under which driver events carry the
// current step length as a time.Duration.
const UserDataStepSize = "step_size"

// ConfigProvider is the capability a component implements to contribute
// configuration defaults before wiring. Defaults are merged into the
// component_configs layer with the component's name as source.
type ConfigProvider interface {
	Name() string
	ConfigurationDefaults() map[string]any
}

// clockConfig is the simulation subtree read back during Setup.
type clockConfig struct {
	StartTime    string `mapstructure:"start_time"`
	StepSizeDays int    `mapstructure:"step_size_days"`
}

// Simulation owns the event manager, the layered configuration, and the
// step clock for one run. Mutation (loading configuration, wiring
// components) happens before Run; the steady-state loop only reads.
type Simulation struct {
	Manager *EventManager
	Config  *config.Tree

	current  time.Time
	stepSize time.Duration
	index    []int64

	emitStart Emitter
	emitStep  Emitter
	emitEnd   Emitter
}

// NewSimulation creates a simulation with an empty event manager and a
// configuration tree carrying the standard layers plus clock defaults in
// the base layer. The manager's clock is bound immediately.
func NewSimulation() *Simulation {
	s := &Simulation{
		Manager: NewEventManager(),
		Config:  config.NewTree(LayerOverride, LayerComponents, LayerBase),
	}
	s.Manager.Setup(s.Now)

	// Base-layer defaults; files and CLI overrides land in stronger layers.
	defaults := map[string]any{
		"simulation": map[string]any{
			"start_time":     "1990-01-01",
			"step_size_days": 30,
		},
	}
	if err := s.Config.ReadDict(defaults, LayerBase, "defaults"); err != nil {
		// The tree is freshly built and unfrozen; a failure here is a bug.
		panic(err)
	}
	return s
}

// Now reports the current simulation time. It is the clock bound to the
// event manager, so emitted events are stamped with it.
func (s *Simulation) Now() time.Time {
	return s.current
}

// StepSize reports the configured step length.
func (s *Simulation) StepSize() time.Duration {
	return s.stepSize
}

// SetPopulation sets the entity identifiers carried on driver events.
func (s *Simulation) SetPopulation(index []int64) {
	s.index = index
}

// Setup applies component configuration defaults, wires component
// listeners and emitters, reads the clock parameters back from the merged
// configuration, and freezes it. After Setup the configuration rejects
// writes and the listener set should be treated as immutable.
func (s *Simulation) Setup(components ...any) error {
	for _, c := range components {
		cp, ok := c.(ConfigProvider)
		if !ok {
			continue
		}
		if err := s.Config.ReadDict(cp.ConfigurationDefaults(), LayerComponents, cp.Name()); err != nil {
			return fmt.Errorf("component %q defaults: %w", cp.Name(), err)
		}
		logrus.Debugf("applied configuration defaults for component %q", cp.Name())
	}

	if err := s.Manager.SetupComponents(components...); err != nil {
		return err
	}

	var cc clockConfig
	if err := s.Config.Decode("simulation", &cc); err != nil {
		return err
	}
	start, err := time.Parse("2006-01-02", cc.StartTime)
	if err != nil {
		return fmt.Errorf("simulation.start_time: %w", err)
	}
	if cc.StepSizeDays <= 0 {
		return fmt.Errorf("simulation.step_size_days must be positive, got %d", cc.StepSizeDays)
	}
	s.current = start
	s.stepSize = time.Duration(cc.StepSizeDays) * 24 * time.Hour

	s.emitStart = s.Manager.Emitter(EventSimulationStart)
	s.emitStep = s.Manager.Emitter(EventTimeStep)
	s.emitEnd = s.Manager.Emitter(EventSimulationEnd)

	s.Config.Freeze()
	logrus.Infof("simulation ready: start=%s step=%s events=%v",
		cc.StartTime, s.stepSize, s.Manager.ListEvents())
	return nil
}

// Run executes the loop: one simulation_start emission, then a time_step
// emission per step with the clock advanced first, then simulation_end.
// Setup must have completed.
func (s *Simulation) Run(steps int) {
	if s.emitStep == nil {
		panic("sim: Run before Setup")
	}
	logrus.Infof("starting run: %d steps of %s from %s",
		steps, s.stepSize, s.current.Format("2006-01-02"))

	s.emitStart(s.newDriverEvent())
	for i := 0; i < steps; i++ {
		s.current = s.current.Add(s.stepSize)
		logrus.Debugf("[step %03d] %s", i+1, s.current.Format("2006-01-02"))
		s.emitStep(s.newDriverEvent())
	}
	s.emitEnd(s.newDriverEvent())

	logrus.Infof("run complete at %s", s.current.Format("2006-01-02"))
}

func (s *Simulation) newDriverEvent() *Event {
	return NewEvent(s.index, map[string]any{UserDataStepSize: s.stepSize})
}
