package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"dw/internal/bootstrap"
	exportdto "dw/internal/modules/export/dto"
	"dw/internal/platform/config"
	apperrors "dw/internal/platform/errors"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "dw",
		Short:         "Deep work session tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default ~/.dw)")

	root.AddCommand(newStartCmd(&dataDir))
	root.AddCommand(newStopCmd(&dataDir))
	root.AddCommand(newStatusCmd(&dataDir))
	root.AddCommand(newAbortCmd(&dataDir))
	root.AddCommand(newReportCmd(&dataDir))
	root.AddCommand(newSummaryCmd(&dataDir))
	root.AddCommand(newStatsCmd(&dataDir))
	root.AddCommand(newReindexCmd(&dataDir))
	root.AddCommand(newExporterCmd(&dataDir))
	root.AddCommand(newExportCmd(&dataDir))
	root.AddCommand(newTUICmd(&dataDir))
	return root
}

func loadApp(dataDir string) (*bootstrap.App, config.Config, error) {
	cfg, err := config.New(dataDir)
	if err != nil {
		return nil, config.Config{}, err
	}
	app, err := bootstrap.New(cfg)
	if err != nil {
		return nil, config.Config{}, err
	}
	return app, cfg, nil
}

func newStartCmd(dataDir *string) *cobra.Command {
	var label string
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start tracking a deep work session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.TrackerCLI.Start(context.Background(), label)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Begin deep work!")
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Start: %s\n", out.StartedAt.Local().Format("15:04:05"))
			if out.Label != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Label: %s\n", out.Label)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&label, "label", "", "label attached to this session")
	return cmd
}

func newStopCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop tracking the current deep work session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.TrackerCLI.Stop(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Deep work complete!")
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Start: %s\n", out.StartedAt.Local().Format("15:04:05"))
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Stop: %s\n", out.EndedAt.Local().Format("15:04:05"))
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Time elapsed: %s\n", formatDuration(out.Duration))
			if out.Label != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Label: %s\n", out.Label)
			}
			if out.NotePath != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Note: %s\n", out.NotePath)
			}
			if out.NoteWarning != "" {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: session recorded, journal note failed: %s\n", out.NoteWarning)
			}
			return nil
		},
	}
}

func newStatusCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current deep work session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.TrackerCLI.Status(context.Background())
			if errors.Is(err, apperrors.ErrNoActiveSession) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No active deep work session")
				return nil
			}
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Start: %s\n", out.StartedAt.Local().Format("15:04:05"))
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Time elapsed: %s\n", formatDuration(time.Since(out.StartedAt)))
			if out.Label != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Label: %s\n", out.Label)
			}
			return nil
		},
	}
}

func newAbortCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "abort",
		Short: "Discard the current deep work session without recording it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.TrackerCLI.Abort(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Aborted session started at %s\n", out.StartedAt.Local().Format("15:04:05"))
			return nil
		},
	}
}

func newReportCmd(dataDir *string) *cobra.Command {
	var fromRaw, toRaw string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Total duration and sessions within a range",
		RunE: func(cmd *cobra.Command, _ []string) error {
			from, to, err := parseRange(fromRaw, toRaw)
			if err != nil {
				return err
			}
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.ReportCLI.Report(context.Background(), from, to)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Total: %s across %d session(s)\n", formatDuration(out.Total), len(out.Sessions))
			for _, s := range out.Sessions {
				label := s.Label
				if label == "" {
					label = "-"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n",
					s.StartedAt.Local().Format("2006-01-02 15:04:05"),
					formatDuration(s.Duration),
					label,
				)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&fromRaw, "from", "", "range start, inclusive (2006-01-02 or RFC 3339)")
	cmd.Flags().StringVar(&toRaw, "to", "", "range end, exclusive (2006-01-02 or RFC 3339)")
	return cmd
}

func newSummaryCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Summarize today's deep work",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.ReportCLI.Summary(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deep work summary for %s:\n", out.Date.Format("Monday, January 2, 2006"))
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s across %d session(s)\n", formatDuration(out.Total), out.Sessions)
			return nil
		},
	}
}

func newStatsCmd(dataDir *string) *cobra.Command {
	var bucket, fromRaw, toRaw string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Aggregate totals per day or week",
		RunE: func(cmd *cobra.Command, _ []string) error {
			from, to, err := parseRange(fromRaw, toRaw)
			if err != nil {
				return err
			}
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.ReportCLI.Stats(context.Background(), bucket, from, to)
			if err != nil {
				return err
			}
			if len(out) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions recorded")
				return nil
			}
			for _, row := range out {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d session(s)\n", row.Key, formatDuration(row.Total), row.Sessions)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&bucket, "by", "day", "aggregation bucket: day|week")
	cmd.Flags().StringVar(&fromRaw, "from", "", "range start, inclusive")
	cmd.Flags().StringVar(&toRaw, "to", "", "range end, exclusive")
	return cmd
}

func newReindexCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the stats index from the session log",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.ReportCLI.Reindex(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reindexed %d session(s)\n", out.Sessions)
			return nil
		},
	}
}

func newExporterCmd(dataDir *string) *cobra.Command {
	exporter := &cobra.Command{Use: "exporter", Short: "Exporter plugin operations"}

	exporter.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List installed exporters",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			exporters, err := app.ExportCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(exporters) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no exporters configured")
				return nil
			}
			for _, e := range exporters {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s@%s enabled=%t formats=%s binary=%s\n",
					e.Name, e.Version, e.Enabled, strings.Join(e.Formats, ","), e.Binary)
			}
			return nil
		},
	})

	exporter.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Validate exporter binaries and handshakes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			results, err := app.ExportCLI.Doctor(context.Background())
			if err != nil {
				return err
			}
			if len(results) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no exporters configured")
				return nil
			}
			for _, r := range results {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s binary=%t handshake=%t", r.Name, r.BinaryReachable, r.HandshakeOK)
				if r.Error != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), " error=%q", r.Error)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	})

	return exporter
}

func newExportCmd(dataDir *string) *cobra.Command {
	var exporterName, format, fromRaw, toRaw string
	cmd := &cobra.Command{
		Use:   "export --exporter <name> --format <format>",
		Short: "Render the session log through an exporter plugin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(exporterName) == "" || strings.TrimSpace(format) == "" {
				return fmt.Errorf("--exporter and --format are required")
			}
			from, to, err := parseRange(fromRaw, toRaw)
			if err != nil {
				return err
			}
			app, cfg, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.ExportCLI.Render(context.Background(), exportdto.RenderInput{
				Exporter: exporterName,
				Format:   format,
				From:     from,
				To:       to,
				DataDir:  cfg.DataDir,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), out.Output)
			return nil
		},
	}
	cmd.Flags().StringVar(&exporterName, "exporter", "", "exporter name")
	cmd.Flags().StringVar(&format, "format", "", "output format")
	cmd.Flags().StringVar(&fromRaw, "from", "", "range start, inclusive")
	cmd.Flags().StringVar(&toRaw, "to", "", "range end, exclusive")
	return cmd
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the dw terminal dashboard",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, _, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(app)
		},
	}
}

func parseRange(fromRaw, toRaw string) (time.Time, time.Time, error) {
	from, err := parseTimeFlag(fromRaw)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := parseTimeFlag(toRaw)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

func parseTimeFlag(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", raw, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: cannot parse %q as 2006-01-02 or RFC 3339", apperrors.ErrInvalidInput, raw)
}

func formatDuration(d time.Duration) string {
	total := int(d.Seconds())
	hrs := total / 3600
	minutes := (total / 60) % 60
	seconds := total % 60
	return fmt.Sprintf("%d hour(s) %d minute(s) %d second(s)", hrs, minutes, seconds)
}
