// Package cli implements the retailctl command tree.
package cli

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"retailadmin/internal/config"
	"retailadmin/internal/invoice"
	"retailadmin/internal/logger"
	"retailadmin/internal/report"
	"retailadmin/internal/upstream"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	upstreamURL string
	timeout     time.Duration
	logFile     string
	debug       bool
}

// env is what every subcommand needs, built once per invocation.
type env struct {
	source   *upstream.Client
	exporter *report.Exporter
	match    invoice.DateMatcher
	loc      *time.Location
	log      *slog.Logger
	closeLog func() error
}

func (o *rootOptions) setup() (*env, error) {
	cfg := config.Load()
	ucfg := cfg.Upstream
	if o.upstreamURL != "" {
		ucfg.BaseURL = o.upstreamURL
	}
	if o.timeout > 0 {
		ucfg.Timeout = o.timeout
	}

	level := cfg.Log.Level
	if o.debug {
		level = "debug"
	}
	// On error ToFile hands back a discard logger; the command still runs.
	log, closeLog, _ := logger.ToFile(o.logFile, level)

	client, err := upstream.New(ucfg)
	if err != nil {
		_ = closeLog()
		return nil, err
	}

	loc := cfg.Location()
	exporter := report.NewExporter(loc)
	if cfg.Report.FontFile != "" {
		if err := exporter.UseFontFile(cfg.Report.FontFile); err != nil {
			_ = closeLog()
			return nil, err
		}
	}
	log.Info("retailctl.start", "upstream", ucfg.BaseURL, "date_match", cfg.Invoice.DateMatch)
	return &env{
		source:   client,
		exporter: exporter,
		match:    invoice.MatcherFor(cfg.Invoice.DateMatch, loc),
		loc:      loc,
		log:      log,
		closeLog: closeLog,
	}, nil
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "retailctl",
		Short:        "retailctl: browse and export store invoices",
		SilenceUsage: true,
	}

	defaultLog := filepath.Join(".retailctl", "logs", "retailctl.log")
	cmd.PersistentFlags().StringVar(&opts.upstreamURL, "upstream", "", "retail backend base URL (default $UPSTREAM_BASE_URL)")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 0, "upstream request timeout (default $UPSTREAM_TIMEOUT)")
	cmd.PersistentFlags().StringVar(&opts.logFile, "log-file", defaultLog, "where to write logs")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable verbose logging")

	cmd.AddCommand(invoicesCmd(opts))
	cmd.AddCommand(browseCmd(opts))
	return cmd
}
