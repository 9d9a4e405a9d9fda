package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/cinegraph/cinegraph/dataset"
	"github.com/cinegraph/cinegraph/graph"
	"github.com/cinegraph/cinegraph/logger"
	"github.com/cinegraph/cinegraph/render"
	"github.com/cinegraph/cinegraph/session"
)

// WatchCmd re-exports the HTML file whenever the dataset file changes.
var WatchCmd = &cobra.Command{
	Use:   "watch <dataset.json>",
	Short: "Re-export whenever a dataset file changes",
	Long: `Watch a dataset file and regenerate the HTML export every time it
changes. Edits are debounced, so editors that write in several steps
trigger one re-export. Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	addDatasetFlags(WatchCmd)
	WatchCmd.Flags().StringP("out", "o", "cinegraph.html", "Output path")
	WatchCmd.Flags().StringP("mode", "m", "", "Layout mode the export opens on")
	WatchCmd.Flags().String("title", "", "Page title")
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := args[0]
	out, _ := cmd.Flags().GetString("out")
	title, _ := cmd.Flags().GetString("title")

	s, err := openSession(cmd, args)
	if err != nil {
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

	export := func(sess *session.Session) {
		frames, err := collectFrames(cmd, sess, openMode)
		if err != nil {
			pterm.Error.Printf("Layout failed: %v\n", err)
			return
		}
		written, err := render.WriteHTML(render.HTMLOptions{
			Title:      title,
			Path:       out,
			Frames:     frames,
			ActiveMode: openMode,
		})
		if err != nil {
			pterm.Error.Printf("Export failed: %v\n", err)
			return
		}
		pterm.Success.Printf("Wrote %s\n", written)
	}

	export(s)

	watcher, err := dataset.NewWatcher(path, logger.Logger)
	if err != nil {
		return err
	}
	watcher.OnReload(func(changed string) {
		pterm.Info.Printf("Dataset changed: %s\n", changed)
		if err := s.LoadFile(changed); err != nil {
			pterm.Warning.Printf("Keeping previous export: %v\n", err)
			return
		}
		export(s)
	})
	watcher.Start()
	defer watcher.Stop()

	pterm.Info.Printf("Watching %s (Ctrl-C to stop)\n", path)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	select {
	case <-sig:
	case <-cmd.Context().Done():
	}
	return nil
}
