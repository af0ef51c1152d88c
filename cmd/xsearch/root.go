package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"xsearch/pkg/ui"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile string
	logLevel   string
	quiet      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "xsearch",
	Short: "Fetch recent posts from the X API matching a set of hashtags",
	Long: `xsearch pulls recent public posts from the X API v2 recent-search
endpoint that match a boolean-OR set of hashtags or terms, applies
optional language and date filters, and saves the results as a
timestamped CSV or JSON file.

The recent-search endpoint only covers a short trailing history window
and enforces layered quotas: a monthly post cap plus a request ceiling
per 15-minute window. The fetch loop is aware of both - it pages
through results up to the requested limit, and on throttling either
waits for the window to reset or returns whatever was fetched so far.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if quiet || logLevel == "error" {
			ui.SetQuietMode(true)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is .xsearch.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress all output except errors")

	rootCmd.SetVersionTemplate(`xsearch {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
