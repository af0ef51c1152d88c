package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"xsearch/pkg/auth"
	"xsearch/pkg/config"
	"xsearch/pkg/logger"
	"xsearch/pkg/output"
	"xsearch/pkg/presets"
	"xsearch/pkg/query"
	"xsearch/pkg/ratelimit"
	"xsearch/pkg/search"
	"xsearch/pkg/twitter"
	"xsearch/pkg/ui"
)

var (
	// Search command flags
	searchHashtags []string
	searchPreset   string
	searchSince    string
	searchUntil    string
	searchLang     string
	searchLimit    int
	searchFormat   string
	searchOutDir   string
	searchNoWait   bool
	searchDebug    bool
	searchPageSize int
	searchAccount  string
	fallbackWait   time.Duration
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Fetch recent posts matching hashtags or a preset",
	Long: `Fetch recent public posts matching a boolean-OR set of hashtags or
terms and save them to a timestamped file.

A bearer token is required. It is looked up in the system keyring
(store one with 'xsearch auth login'), then the encrypted credential
file, then the X_BEARER_TOKEN / TWITTER_BEARER_TOKEN environment
variables (a .env file in the working directory is honored).`,
	Example: `  # Fetch up to 200 posts for two hashtags
  xsearch search --hashtags '#Fabry' '#FabryDisease' --limit 200

  # Use a preset group, Spanish only, as JSON
  xsearch search --preset fabry --lang es --format json

  # Bounded date range, return partial results instead of waiting out
  # a rate limit
  xsearch search --preset glp1 --since 2026-08-01 --until 2026-08-30 --no-wait

  # Show per-page diagnostics
  xsearch search --hashtags '#Ozempic' --limit 500 --debug`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSearch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringSliceVar(&searchHashtags, "hashtags", nil, "hashtags/terms to OR together")
	searchCmd.Flags().StringVar(&searchPreset, "preset", "", "use a preset group of hashtags")
	searchCmd.Flags().StringVar(&searchSince, "since", "", "start date YYYY-MM-DD inclusive (UTC)")
	searchCmd.Flags().StringVar(&searchUntil, "until", "", "end date YYYY-MM-DD inclusive (UTC)")
	searchCmd.Flags().StringVar(&searchLang, "lang", "", "ISO 639-1 language code filter, e.g. es or en")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 100, "max number of posts to fetch")
	searchCmd.Flags().StringVar(&searchFormat, "format", "", "output format (csv or json)")
	searchCmd.Flags().StringVarP(&searchOutDir, "out", "o", "", "output directory (default ./data)")
	searchCmd.Flags().BoolVar(&searchNoWait, "no-wait", false, "do not sleep on rate limit; return partial results")
	searchCmd.Flags().BoolVar(&searchDebug, "debug", false, "show per-page counts, cursors and wait decisions")
	searchCmd.Flags().IntVar(&searchPageSize, "page-size", 0, "posts per API page (10-100)")
	searchCmd.Flags().StringVarP(&searchAccount, "account", "a", "", "use a specific stored token label")
	searchCmd.Flags().DurationVar(&fallbackWait, "fallback-wait", 0, "wait when a rate-limit response has no reset hint")

	searchCmd.MarkFlagsOneRequired("hashtags", "preset")
	searchCmd.MarkFlagsMutuallyExclusive("hashtags", "preset")
}

func runSearch(cmd *cobra.Command) error {
	// Build flags map from command line
	flags := make(map[string]interface{})
	if searchOutDir != "" {
		flags["output-dir"] = searchOutDir
	}
	if searchFormat != "" {
		flags["format"] = searchFormat
	}
	if searchPageSize != 0 {
		flags["page-size"] = searchPageSize
	}
	if fallbackWait != 0 {
		flags["fallback-wait"] = fallbackWait
	}
	if searchDebug {
		flags["log-level"] = "debug"
	} else if logLevel != "info" {
		flags["log-level"] = logLevel
	}

	cfg, err := config.Load(configFile, flags)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		os.Exit(1)
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		ui.PrintError("Failed to initialize logger", err.Error())
		os.Exit(1)
	}
	log := logger.GetLogger()
	log.WithField("version", version).Info("xsearch starting")

	terms := searchHashtags
	if searchPreset != "" {
		terms, err = presets.Resolve(searchPreset)
		if err != nil {
			ui.PrintError("Unknown preset", err.Error())
			os.Exit(1)
		}
		ui.PrintInfo("Preset", searchPreset)
	}

	q, err := query.Build(query.Params{
		Terms: terms,
		Lang:  searchLang,
		Since: searchSince,
		Until: searchUntil,
		Limit: searchLimit,
	}, time.Now())
	if err != nil {
		ui.PrintError("Invalid query", err.Error())
		os.Exit(1)
	}

	ui.PrintInfo("Query", q.Text)
	if searchSince != "" || searchUntil != "" {
		ui.PrintInfo("Date range", fmt.Sprintf("%s to %s", orAny(searchSince), orNow(searchUntil)))
	}
	ui.PrintInfo("Limit", strconv.Itoa(q.MaxResults))

	token, err := resolveBearerToken(searchAccount)
	if err != nil {
		ui.PrintError("Missing bearer token", "store one with 'xsearch auth login' or set X_BEARER_TOKEN")
		os.Exit(1)
	}

	client := twitter.NewClient(token, cfg.API.BaseURL, cfg.API.Timeout, log)

	var reporter search.Reporter
	if searchDebug {
		reporter = search.NewLogReporter(log)
	}

	engine := search.NewEngine(client, search.Options{
		PageCap:         cfg.API.PageSize,
		WaitOnRateLimit: !searchNoWait,
		FallbackWait:    cfg.RateLimit.FallbackWait,
		Limiter:         ratelimit.NewSlidingWindow(cfg.RateLimit.WindowRequests, cfg.RateLimit.Window),
		Reporter:        reporter,
		Logger:          log,
	})

	outcome := engine.Run(q)

	format, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		ui.PrintError("Invalid output format", err.Error())
		os.Exit(1)
	}

	writer, err := output.NewWriter(cfg.Output.Directory, cfg.Output.FilePrefix)
	if err != nil {
		ui.PrintError("Failed to prepare output directory", err.Error())
		os.Exit(1)
	}

	path, err := writer.Write(outcome.Tweets, format)
	if err != nil {
		ui.PrintError("Failed to write output", err.Error())
		os.Exit(1)
	}

	switch outcome.Status {
	case search.StatusCompleted:
		if len(outcome.Tweets) == 0 {
			ui.PrintNoResultsHelp()
		}
		ui.PrintSuccess(fmt.Sprintf("Saved %d posts to %s", len(outcome.Tweets), path))
	case search.StatusPartial:
		ui.PrintWarning(fmt.Sprintf("Rate limited: saved %d posts (partial) to %s", len(outcome.Tweets), path))
	case search.StatusAborted:
		ui.PrintWarning(fmt.Sprintf("Run aborted: saved %d posts fetched before the failure to %s", len(outcome.Tweets), path))
		ui.PrintError("Fetch failed", outcome.Err.Error())
		os.Exit(1)
	}

	return nil
}

// resolveBearerToken walks the credential store chain.
func resolveBearerToken(label string) (string, error) {
	manager, err := auth.NewManager()
	if err != nil {
		return "", err
	}
	creds, err := manager.Retrieve(label)
	if err != nil {
		return "", err
	}
	return creds.BearerToken, nil
}

func orAny(s string) string {
	if s == "" {
		return "any"
	}
	return s
}

func orNow(s string) string {
	if s == "" {
		return "now"
	}
	return s
}
