package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/afcarl/vivarium/sim"
	"github.com/afcarl/vivarium/sim/config"
)

// showConfigCmd resolves the layered configuration and prints every value
// with its provenance: the winning layer and the source that set it.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show resolved configuration with provenance",
	Run: func(cmd *cobra.Command, args []string) {
		tree := config.NewTree(sim.LayerOverride, sim.LayerComponents, sim.LayerBase)
		loadConfiguration(tree)

		tree.Walk(func(path string, n *config.Node) {
			records := n.Metadata()
			if len(records) == 0 {
				fmt.Printf("%-40s <unset>\n", path)
				return
			}
			// Records come back most-specific first, so the winner leads.
			winner := records[0]
			fmt.Printf("%-40s %-12v layer=%s source=%s\n",
				path, winner.Value, winner.Layer, winner.Source)
			for _, r := range records[1:] {
				fmt.Printf("%-40s   shadowed: %-10v layer=%s source=%s\n",
					"", r.Value, r.Layer, r.Source)
			}
		})
	},
}

func init() {
	rootCmd.AddCommand(showConfigCmd)
}
