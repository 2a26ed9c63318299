package components

import (
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afcarl/vivarium/sim"
)

func TestMain(m *testing.M) {
	if os.Getenv("DEBUG_TESTS") == "" {
		logrus.SetLevel(logrus.WarnLevel)
	}
	os.Exit(m.Run())
}

func TestIntervention_CostAccruesPerEligibleEntityStep(t *testing.T) {
	// GIVEN a 365-day step so one step covers exactly one year
	s := sim.NewSimulation()
	require.NoError(t, s.Config.SetWithMetadata("simulation.step_size_days", 365, sim.LayerOverride, "test"))

	// Only even identifiers are eligible.
	iv := NewIntervention(s.Config, func(id int64) bool { return id%2 == 0 })
	require.NoError(t, s.Setup(iv))
	s.SetPopulation([]int64{0, 1, 2, 3, 4, 5})

	// WHEN two yearly steps run
	s.Run(2)

	// THEN cost = unit cost (2.0) * 3 eligible * 2 years
	assert.InDelta(t, 12.0, iv.CumulativeCost(), 1e-9)

	iv.Reset()
	assert.Zero(t, iv.CumulativeCost())
}

func TestIntervention_UnitCostOverridable(t *testing.T) {
	s := sim.NewSimulation()
	require.NoError(t, s.Config.SetWithMetadata("simulation.step_size_days", 365, sim.LayerOverride, "test"))
	require.NoError(t, s.Config.SetWithMetadata("intervention.annual_unit_cost", 5, sim.LayerOverride, "cli"))

	iv := NewIntervention(s.Config, nil)
	require.NoError(t, s.Setup(iv))
	s.SetPopulation([]int64{1, 2})

	s.Run(1)

	assert.InDelta(t, 10.0, iv.CumulativeCost(), 1e-9)
}

func TestIntervention_DefaultsLandInComponentLayer(t *testing.T) {
	s := sim.NewSimulation()
	iv := NewIntervention(s.Config, nil)
	require.NoError(t, s.Setup(iv))

	records, err := s.Config.Metadata("intervention.annual_unit_cost")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, sim.LayerComponents, records[0].Layer)
	assert.Equal(t, "intervention", records[0].Source)
	assert.Equal(t, 2.0, records[0].Value)
}

func TestIntervention_IncidenceAdjustment(t *testing.T) {
	s := sim.NewSimulation()
	iv := NewIntervention(s.Config, nil)
	require.NoError(t, s.Setup(iv))

	assert.Equal(t, 0.5, iv.IncidenceAdjustment("ihd"))
	assert.Equal(t, 0.5, iv.IncidenceAdjustment("hemorrhagic_stroke"))
	assert.Equal(t, 1.0, iv.IncidenceAdjustment("all_cause_mortality"))
}

func TestRecorder_CountsAndReports(t *testing.T) {
	s := sim.NewSimulation()
	rec := NewRecorder()
	require.NoError(t, s.Setup(rec))
	s.SetPopulation([]int64{1})

	// The requested channel exists before anything is emitted.
	assert.Contains(t, s.Manager.ListEvents(), "final_report")

	s.Run(5)

	assert.Equal(t, 1, rec.Count(sim.EventSimulationStart))
	assert.Equal(t, 5, rec.Count(sim.EventTimeStep))
	assert.Equal(t, 1, rec.Count(sim.EventSimulationEnd))
}

func TestRecorder_ReportReachesListeners(t *testing.T) {
	s := sim.NewSimulation()
	rec := NewRecorder()
	require.NoError(t, s.Setup(rec))

	var counts map[string]int
	require.NoError(t, s.Manager.RegisterListener("final_report", "probe", func(ev *sim.Event) {
		counts, _ = ev.UserData["counts"].(map[string]int)
	}, sim.DefaultPriority))

	s.Run(3)

	require.NotNil(t, counts)
	assert.Equal(t, 3, counts[sim.EventTimeStep])
}
