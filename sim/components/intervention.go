// Package components holds example simulation components built on the
// event and configuration frameworks. They are ordinary external
// collaborators: they declare listeners through the capability interfaces
// in package sim and read their parameters from the shared configuration
// tree.
package components

import (
	"time"

	"github.com/afcarl/vivarium/sim"
	"github.com/afcarl/vivarium/sim/config"
)

// Intervention models a coverage program: it accrues the cost of covering
// eligible entities on every time step and halves the incidence of the
// conditions it targets. The unit cost and target conditions come from
// configuration, so overrides at any layer change its behavior without
// code changes.
type Intervention struct {
	conf     *config.Tree
	eligible func(id int64) bool

	cumulativeCost float64
}

// NewIntervention creates the component. Eligibility is a predicate over
// entity identifiers; nil means every entity is eligible.
func NewIntervention(conf *config.Tree, eligible func(id int64) bool) *Intervention {
	return &Intervention{conf: conf, eligible: eligible}
}

// Name implements sim.ConfigProvider.
func (iv *Intervention) Name() string { return "intervention" }

// ConfigurationDefaults implements sim.ConfigProvider.
func (iv *Intervention) ConfigurationDefaults() map[string]any {
	return map[string]any{
		"intervention": map[string]any{
			"annual_unit_cost": 2.0,
			"conditions":       []any{"ihd", "hemorrhagic_stroke"},
		},
	}
}

// EventHandlers implements sim.ListenerProvider.
func (iv *Intervention) EventHandlers() []*sim.Handler {
	return []*sim.Handler{
		sim.NewHandler("intervention.track_cost", iv.trackCost).
			ListensFor(sim.EventTimeStep),
	}
}

// trackCost accrues unit cost, prorated by step length, for every eligible
// entity in the step's index.
func (iv *Intervention) trackCost(ev *sim.Event) {
	step, ok := ev.UserData[sim.UserDataStepSize].(time.Duration)
	if !ok {
		return
	}
	eligible := 0
	for _, id := range ev.Index {
		if iv.eligible == nil || iv.eligible(id) {
			eligible++
		}
	}
	years := step.Hours() / (365.0 * 24.0)
	iv.cumulativeCost += iv.unitCost() * float64(eligible) * years
}

// IncidenceAdjustment returns the multiplier to apply to condition's
// incidence rate for covered entities: 0.5 when the intervention targets
// the condition, 1.0 otherwise.
func (iv *Intervention) IncidenceAdjustment(condition string) float64 {
	v, err := iv.conf.GetValue("intervention.conditions")
	if err != nil {
		return 1.0
	}
	conditions, ok := v.([]any)
	if !ok {
		return 1.0
	}
	for _, c := range conditions {
		if name, ok := c.(string); ok && name == condition {
			return 0.5
		}
	}
	return 1.0
}

// CumulativeCost reports the cost accrued so far.
func (iv *Intervention) CumulativeCost() float64 {
	return iv.cumulativeCost
}

// Reset clears the accrued cost.
func (iv *Intervention) Reset() {
	iv.cumulativeCost = 0
}

func (iv *Intervention) unitCost() float64 {
	v, err := iv.conf.GetValue("intervention.annual_unit_cost")
	if err != nil {
		return 0
	}
	switch x := v.(type) {
	case float64:
		return x
	case int:
		return float64(x)
	}
	return 0
}
