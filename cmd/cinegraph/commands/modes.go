package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/cinegraph/cinegraph/graph"
)

var modeDescriptions = map[graph.Mode]string{
	graph.ModeSimilarity: "Movies linked by shared genres and keywords (Jaccard, top neighbors per movie)",
	graph.ModeCoActor:    "Movies linked by shared cast members",
	graph.ModeTimeline:   "Movies arranged on a horizontal release-year axis, no links",
	graph.ModeEntity:     "Movies plus genre, cast, and keyword satellites with relationship edges",
}

// ModesCmd lists the layout modes.
var ModesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List the available layout modes",
	Run: func(cmd *cobra.Command, args []string) {
		rows := pterm.TableData{{"mode", "description"}}
		for _, m := range graph.AllModes() {
			rows = append(rows, []string{string(m), modeDescriptions[m]})
		}
		pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	},
}
