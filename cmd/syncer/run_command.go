package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"replay_fetcher/internal/domain"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Sync every tracked uploader once and regenerate documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.logger(cfg)

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			if cfg.Sync.RunTimeout > 0 {
				var cancel context.CancelFunc
				runCtx, cancel = context.WithTimeout(runCtx, cfg.Sync.RunTimeout)
				defer cancel()
			}

			a, err := newApp(runCtx, cfg, logger, nil)
			if err != nil {
				return err
			}
			defer func() {
				if err := a.Close(); err != nil {
					logger.Warn().Err(err).Msg("failed to close resources")
				}
			}()

			stats, err := a.service.Sync(runCtx)
			if stats != nil {
				printRunStats(cmd.OutOrStdout(), stats)
			}
			return runError(stats, err)
		},
	}
}

// runError words a sync error. Failures outside any identity, such as the
// README index, leave Failed at zero.
func runError(stats *domain.RunStats, err error) error {
	if err == nil {
		return nil
	}
	if stats == nil || stats.Failed == 0 {
		return fmt.Errorf("sync finished with errors: %w", err)
	}
	return fmt.Errorf("sync failed for %d identities: %w", stats.Failed, err)
}

func printRunStats(out io.Writer, stats *domain.RunStats) {
	headers := []string{"UID", "Pages", "Fetched", "Added", "Replaced", "Rejected", "Errors", "Duration"}
	rows := make([][]string, 0, len(stats.Identities))
	for _, s := range stats.Identities {
		rows = append(rows, []string{
			strconv.FormatInt(s.IdentityID, 10),
			strconv.Itoa(s.Pages),
			strconv.Itoa(s.Fetched),
			strconv.Itoa(s.Added),
			strconv.Itoa(s.Replaced),
			strconv.Itoa(s.Rejected),
			strconv.Itoa(s.Errors),
			s.Duration.Round(time.Millisecond).String(),
		})
	}
	aligns := []columnAlignment{alignRight, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight}
	fmt.Fprintln(out, renderTable(headers, rows, aligns))
	fmt.Fprintf(out, "run %s finished in %s\n", stats.RunID, stats.Duration.Round(time.Millisecond))
}
