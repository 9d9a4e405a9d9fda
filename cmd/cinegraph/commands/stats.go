package commands

import (
	"encoding/json"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/cinegraph/cinegraph/graph"
)

// StatsCmd summarizes a dataset and the graphs derived from it.
var StatsCmd = &cobra.Command{
	Use:   "stats [dataset.json]",
	Short: "Show dataset and graph statistics",
	Long: `Load a dataset and report node and link counts for the entity graph
and the analytical link sets, without running any layout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func init() {
	addDatasetFlags(StatsCmd)
	StatsCmd.Flags().Bool("json", false, "Output statistics as JSON")
}

type graphStats struct {
	Source          string               `json:"source,omitempty"`
	Movies          int                  `json:"movies"`
	EntityNodes     int                  `json:"entity_nodes"`
	EntityLinks     int                  `json:"entity_links"`
	NodeTypes       []graph.NodeTypeInfo `json:"node_types"`
	SimilarityLinks int                  `json:"similarity_links"`
	CoActorLinks    int                  `json:"coactor_links"`
}

func runStats(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, args)
	if err != nil {
		return err
	}
	defer s.Close()

	ds := s.Dataset()
	entity := graph.BuildEntityGraph(ds.Movies)
	movies := graph.BuildMovieNodes(ds.Movies)
	idx := graph.BuildFeatureIndex(movies)
	topK, _ := cmd.Flags().GetInt("top-k")
	if topK <= 0 {
		topK = graph.DefaultTopK
	}

	stats := graphStats{
		Source:          ds.Source,
		Movies:          len(ds.Movies),
		EntityNodes:     len(entity.Nodes),
		EntityLinks:     len(entity.Links),
		NodeTypes:       entity.Meta.NodeTypes,
		SimilarityLinks: len(graph.TopKLinks(movies, graph.SimilarityAdjacency(movies, idx), topK, graph.LinkSimilarity)),
		CoActorLinks:    len(graph.TopKLinks(movies, graph.CoActorAdjacency(idx), topK, graph.LinkCoActor)),
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		out, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	}

	pterm.DefaultSection.Println("Dataset")
	rows := pterm.TableData{
		{"movies", fmt.Sprintf("%d", stats.Movies)},
	}
	if stats.Source != "" {
		rows = append(rows, []string{"source", stats.Source})
	}
	pterm.DefaultTable.WithData(rows).Render()

	pterm.DefaultSection.Println("Entity graph")
	typeRows := pterm.TableData{{"type", "count"}}
	for _, t := range stats.NodeTypes {
		typeRows = append(typeRows, []string{string(t.Type), fmt.Sprintf("%d", t.Count)})
	}
	typeRows = append(typeRows, []string{"links", fmt.Sprintf("%d", stats.EntityLinks)})
	pterm.DefaultTable.WithHasHeader().WithData(typeRows).Render()

	pterm.DefaultSection.Println("Analytical links")
	pterm.DefaultTable.WithData(pterm.TableData{
		{"similarity", fmt.Sprintf("%d", stats.SimilarityLinks)},
		{"co-actor", fmt.Sprintf("%d", stats.CoActorLinks)},
	}).Render()

	return nil
}
