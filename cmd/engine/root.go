package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"draftboard-engine/internal/config"
)

const (
	dbFile    = "draftboard.db"
	lockFile  = "engine.lock"
	tokenFile = "engine.token"
)

type globalOpts struct {
	dataDir       string
	defaultConfig string
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func newRootCmd() *cobra.Command {
	g := &globalOpts{}
	root := &cobra.Command{
		Use:          "engine",
		Short:        "Local engine behind the MLB draft dashboard",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), g)
		},
	}
	// The desktop shell passes its app data dir through the environment.
	root.PersistentFlags().StringVar(&g.dataDir, "data-dir", envOr("DRAFT_DATA_DIR", "."), "directory holding config, database and dataset")
	root.PersistentFlags().StringVar(&g.defaultConfig, "default-config", filepath.Join("config", config.FileName), "config copied into the data dir on first run")

	root.AddCommand(newServeCmd(g), newImportCmd(g))
	return root
}
