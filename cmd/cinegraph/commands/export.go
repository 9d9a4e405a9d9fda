package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/cinegraph/cinegraph/graph"
	"github.com/cinegraph/cinegraph/logger"
	"github.com/cinegraph/cinegraph/render"
	"github.com/cinegraph/cinegraph/session"
)

// ExportCmd computes every layout mode to convergence and writes a
// self-contained interactive HTML file.
var ExportCmd = &cobra.Command{
	Use:   "export [dataset.json]",
	Short: "Compute layouts and write an interactive HTML file",
	Long: `Load a dataset, run the force-directed layout to convergence for each
layout mode, and write a self-contained HTML file with the settled
positions embedded. The exported file needs no server and no network.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	addDatasetFlags(ExportCmd)
	ExportCmd.Flags().StringP("out", "o", "", "Output path (default cinegraph_<timestamp>.html)")
	ExportCmd.Flags().StringP("mode", "m", "", "Layout mode the export opens on (similarity, coactor, timeline, entity)")
	ExportCmd.Flags().String("title", "", "Page title")
	ExportCmd.Flags().String("filter", "", "Entity type filter baked into the export (genre, person, keyword)")
}

func runExport(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, args)
	if err != nil {
		pterm.Error.Printf("Failed to load dataset: %v\n", err)
		return err
	}
	defer s.Close()

	openMode := s.Mode()
	if m, _ := cmd.Flags().GetString("mode"); m != "" {
		openMode, err = graph.ParseMode(m)
		if err != nil {
			return err
		}
	}

	if f, _ := cmd.Flags().GetString("filter"); f != "" {
		if err := s.SetTypeFilter(graph.NodeType(f)); err != nil {
			return err
		}
	}

	frames, err := collectFrames(cmd, s, openMode)
	if err != nil {
		return err
	}

	title, _ := cmd.Flags().GetString("title")
	out, _ := cmd.Flags().GetString("out")
	path, err := render.WriteHTML(render.HTMLOptions{
		Title:      title,
		Path:       out,
		Frames:     frames,
		ActiveMode: openMode,
	})
	if err != nil {
		pterm.Error.Printf("Export failed: %v\n", err)
		return err
	}

	ds := s.Dataset()
	pterm.Success.Printf("Exported %d movies to %s\n", len(ds.Movies), path)
	return nil
}

// collectFrames runs each layout mode to convergence and snapshots the
// settled frame. The open mode runs last so the preference file ends up
// recording it.
func collectFrames(cmd *cobra.Command, s *session.Session, openMode graph.Mode) (map[graph.Mode]render.Frame, error) {
	recorder := render.NewRecorder()
	s.SetRenderTarget(recorder)

	verbosity, _ := cmd.Flags().GetCount("verbose")
	log := logger.Named("export")

	order := make([]graph.Mode, 0, len(graph.AllModes()))
	for _, m := range graph.AllModes() {
		if m != openMode {
			order = append(order, m)
		}
	}
	order = append(order, openMode)

	frames := make(map[graph.Mode]render.Frame, len(order))
	for _, m := range order {
		spinner, _ := pterm.DefaultSpinner.Start(fmt.Sprintf("Settling %s layout...", m))
		if err := s.SwitchMode(m); err != nil {
			spinner.Fail()
			return nil, err
		}
		if err := s.Run(cmd.Context()); err != nil {
			spinner.Fail()
			return nil, err
		}
		s.ZoomToFit()
		frame := recorder.Frame().Clone()
		frames[m] = frame
		if logger.ShouldLogTrace(verbosity) {
			tr := frame.Transform
			log.Debugw("layout settled",
				"mode", m,
				"nodes", len(frame.Nodes),
				"links", len(frame.Links),
				"frames", recorder.FrameCount(),
				"scale", tr.K,
			)
		}
		spinner.Success(fmt.Sprintf("%s layout settled", m))
	}
	return frames, nil
}
