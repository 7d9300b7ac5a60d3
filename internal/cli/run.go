package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/healthcheckx/config"
	"github.com/jonwraymond/healthcheckx/health"
	"github.com/jonwraymond/healthcheckx/internal/version"
	"github.com/jonwraymond/healthcheckx/observe"
	"github.com/jonwraymond/healthcheckx/observe/exporters"
)

// DefaultConfigPath is read when --config is not given.
const DefaultConfigPath = "healthcheckx.yaml"

type runFlags struct {
	configPath     string
	format         string
	parallel       bool
	failOnDegraded bool
	logLevel       string
	timeout        time.Duration
}

func newRunCommand(opts Options) *cobra.Command {
	var f runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run every configured probe once and print a report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.format != "text" && f.format != "json" {
				return usageError(fmt.Errorf("--format must be text or json, got %q", f.format))
			}
			return runOnce(cmd.Context(), cmd, opts, f)
		},
	}

	cmd.Flags().StringVarP(&f.configPath, "config", "c", DefaultConfigPath, "Path to the probe configuration file")
	cmd.Flags().StringVarP(&f.format, "format", "o", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&f.parallel, "parallel", false, "Run probes concurrently (overrides the file)")
	cmd.Flags().BoolVar(&f.failOnDegraded, "fail-on-degraded", false, "Exit non-zero when the overall status is degraded")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "Enable JSON logs on stderr at this level (debug, info, warn, error)")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "Deadline for the whole run (0 means none)")

	return cmd
}

func runOnce(ctx context.Context, cmd *cobra.Command, opts Options, f runFlags) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return usageError(err)
	}
	if cmd.Flags().Changed("parallel") {
		cfg.Parallel = f.parallel
	}
	if f.logLevel != "" {
		cfg.Logging.Enabled = true
		cfg.Logging.Level = f.logLevel
	}

	if err := config.Validate(cfg); err != nil {
		return usageError(err)
	}
	config.ApplyDefaults(cfg)

	exporters.StdoutWriter = opts.Stderr
	oc := cfg.Observability(version.Version)
	oc.Logging.Output = opts.Stderr
	obs, err := observe.NewObserver(ctx, oc)
	if err != nil {
		return usageError(err)
	}
	defer func() { _ = obs.Shutdown(context.WithoutCancel(ctx)) }()

	mw, err := observe.MiddlewareFromObserver(obs)
	if err != nil {
		return usageError(err)
	}

	h, err := config.Build(ctx, cfg, config.Options{Middleware: []health.Middleware{mw.Wrap}})
	if err != nil {
		return usageError(err)
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	report := h.Report(ctx)
	obs.Logger().Info(ctx, "run complete",
		observe.Field{Key: "report_id", Value: report.ID},
		observe.Field{Key: "status", Value: report.Status.String()},
		observe.Field{Key: "probes", Value: len(report.Results)},
	)

	if err := render(opts.Stdout, f.format, report); err != nil {
		return err
	}

	switch {
	case report.Status == health.StatusUnhealthy,
		report.Status == health.StatusDegraded && f.failOnDegraded:
		return &ExitError{Code: ExitUnhealthy, Err: fmt.Errorf("overall status %s", report.Status), Silent: true}
	}
	return nil
}

func render(w io.Writer, format string, report health.Report) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSTATUS\tDURATION\tMESSAGE")
	for _, r := range report.Results {
		d := "-"
		if elapsed, ok := r.Elapsed(); ok {
			d = elapsed.Round(time.Microsecond).String()
		}
		msg, _ := r.MessageText()
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Name, r.Status, d, msg)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	counts := report.Counts()
	_, err := fmt.Fprintf(w, "\noverall: %s (%d healthy, %d degraded, %d unhealthy) in %s [%s]\n",
		report.Status,
		counts[health.StatusHealthy], counts[health.StatusDegraded], counts[health.StatusUnhealthy],
		report.Duration.Round(time.Microsecond), report.ID)
	return err
}
