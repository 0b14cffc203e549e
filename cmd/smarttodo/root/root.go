package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"smarttodo/internal/config"
	"smarttodo/internal/storage"
	"smarttodo/internal/ui"
)

const Version = "0.1.0"

var flagConfig string

var rootCmd = &cobra.Command{
	Use:           "smarttodo",
	Short:         "Smart ToDo — terminal task manager with live filtering",
	Long:          "Smart ToDo is a terminal task manager: categories, priorities, due dates, live filtering and keyword search over a local SQLite store.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, cfg, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()
		return ui.Run(store, cfg)
	},
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: user config dir)")

	rootCmd.AddCommand(
		newListCmd(),
		newClearCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render("error: "+err.Error()))
		os.Exit(1)
	}
}

func openStore() (*storage.Store, config.Config, error) {
	path := flagConfig
	if path == "" {
		path = config.ResolveConfigPath()
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return nil, cfg, fmt.Errorf("load config: %w", err)
	}
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		return nil, cfg, fmt.Errorf("open database: %w", err)
	}
	return store, cfg, nil
}
