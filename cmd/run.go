package cmd

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/afcarl/vivarium/sim"
	"github.com/afcarl/vivarium/sim/components"
)

var (
	steps          int // Number of time steps to simulate
	populationSize int // Number of entities carried on driver events
)

// runCmd drives a demo simulation: an intervention component tracking
// coverage cost and a recorder counting emissions.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a demo simulation",
	Run: func(cmd *cobra.Command, args []string) {
		s := sim.NewSimulation()
		loadConfiguration(s.Config)

		intervention := components.NewIntervention(s.Config, nil)
		recorder := components.NewRecorder()
		if err := s.Setup(intervention, recorder); err != nil {
			logrus.Fatalf("setup failed: %v", err)
		}

		index := make([]int64, populationSize)
		for i := range index {
			index[i] = int64(i)
		}
		s.SetPopulation(index)

		start := time.Now()
		s.Run(steps)

		logrus.Infof("simulated %d steps over %d entities in %s",
			recorder.Count(sim.EventTimeStep), populationSize, time.Since(start))
		logrus.Infof("cumulative intervention cost: %.2f", intervention.CumulativeCost())
	},
}

func init() {
	runCmd.Flags().IntVar(&steps, "steps", 12, "Number of time steps to simulate")
	runCmd.Flags().IntVar(&populationSize, "population", 1000, "Number of entities in the population index")

	rootCmd.AddCommand(runCmd)
}
