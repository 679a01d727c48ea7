// Package cli holds the hackerstories command tree.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"hackerstories/internal/config"
	"hackerstories/internal/hnclient"
	"hackerstories/internal/logging"
)

// flagBindings maps persistent flags onto config keys
var flagBindings = map[string]string{
	"api-url":   "api.base_url",
	"store":     "store.backend",
	"log-level": "log.level",
	"log-file":  "log.file",
}

// NewRootCommand builds the command tree. Running the root command starts
// the terminal UI.
func NewRootCommand(version string) *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "hackerstories",
		Short: "Search Hacker News stories from the terminal",
		Long: `hackerstories searches the Hacker News story index and shows the results in
a scrollable list. More results load as the end of the list comes into view.
The last search term is remembered between sessions.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			term, _ := cmd.Flags().GetString("term")
			return runTUI(cmd, v, version, term)
		},
	}

	rootCmd.PersistentFlags().String("config", "", "config file (default: "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().String("api-url", "", "search API base URL")
	rootCmd.PersistentFlags().String("store", "", "where the last search is kept: memory, file or sqlite")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-file", "", "log file path")
	rootCmd.Flags().String("term", "", "search this term at startup instead of the last one")

	for flag, key := range flagBindings {
		_ = v.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag))
	}

	rootCmd.AddCommand(newSearchCommand(v, version))
	rootCmd.AddCommand(newVersionCommand(version))
	return rootCmd
}

// Execute runs the command tree against os.Args and returns the exit code
func Execute(version string) int {
	rootCmd := NewRootCommand(version)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func loadConfig(cmd *cobra.Command, v *viper.Viper) (config.ConfigService, *config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cs := config.NewConfigService(path, config.WithViper(v))
	cfg, err := cs.Load()
	if err != nil {
		return nil, nil, err
	}
	return cs, cfg, nil
}

func newHTTPClient(cfg *config.Config) *http.Client {
	return &http.Client{Timeout: cfg.API.Timeout}
}

func newSearchClient(cfg *config.Config, version string, logger *slog.Logger) *hnclient.Client {
	return hnclient.New(newHTTPClient(cfg),
		hnclient.WithUserAgent("hackerstories/"+version),
		hnclient.WithLogger(logger),
	)
}

func openLog(cfg *config.Config) (*slog.Logger, io.Closer) {
	logger, closer, err := logging.OpenFile(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open log file: %v\n", err)
		return logging.Discard(), io.NopCloser(nil)
	}
	return logger, closer
}
