package commands

import (
	"github.com/spf13/cobra"

	"github.com/cinegraph/cinegraph/logger"
	"github.com/cinegraph/cinegraph/session"
)

// openSession builds a session from configuration plus flag overrides and
// loads a dataset: from the file argument when given, otherwise from the
// configured sources in fallback order.
func openSession(cmd *cobra.Command, args []string) (*session.Session, error) {
	cfg, err := session.LoadConfig()
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("top-k") {
		cfg.Graph.TopK, _ = cmd.Flags().GetInt("top-k")
	}
	if cmd.Flags().Changed("link-strength") {
		cfg.Graph.LinkStrength, _ = cmd.Flags().GetFloat64("link-strength")
	}
	if url, _ := cmd.Flags().GetString("url"); url != "" {
		cfg.Dataset.PrimaryURL = url
	}

	s, err := session.New(cfg, logger.Logger)
	if err != nil {
		return nil, err
	}

	if len(args) > 0 {
		err = s.LoadFile(args[0])
	} else {
		err = s.Load(cmd.Context())
	}
	if err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func addDatasetFlags(cmd *cobra.Command) {
	cmd.Flags().String("url", "", "Dataset URL (overrides configuration)")
	cmd.Flags().Int("top-k", 0, "Neighbors kept per node in similarity and co-actor views")
	cmd.Flags().Float64("link-strength", 0, "Base edge-attraction strength")
}
