package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"replay_fetcher/internal/config"
	"replay_fetcher/internal/domain"
	"replay_fetcher/internal/render"
	"replay_fetcher/internal/storage/jsonfile"
	"replay_fetcher/internal/storage/postgres"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var fromDB bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the stored state of every tracked uploader",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			read := func(_ context.Context, identity domain.Identity) (*domain.UserRecordStore, error) {
				return jsonfile.ReadSnapshot(cfg.Paths.StateDir, identity)
			}
			if fromDB {
				mirror, closeDB, err := openMirror(cmd.Context(), cfg, ctx)
				if err != nil {
					return err
				}
				defer func() { _ = closeDB() }()
				read = mirror.Load
			}

			headers := []string{"UID", "Uploader", "Ruleset", "Records", "Streamers", "Last AID", "Last Sync"}
			rows := make([][]string, 0, len(cfg.Identities))
			for _, id := range cfg.Identities {
				snap, err := read(cmd.Context(), domain.Identity{ID: id.UID, DisplayName: id.Name})
				if err != nil {
					return fmt.Errorf("read state of %d: %w", id.UID, err)
				}
				rows = append(rows, statusRow(id.Ruleset, snap))
			}

			aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
			return nil
		},
	}

	cmd.Flags().BoolVar(&fromDB, "from-db", false, "Read state from the database mirror instead of the JSON files")
	return cmd
}

func openMirror(ctx context.Context, cfg *config.Config, cmdCtx *commandContext) (*postgres.Mirror, func() error, error) {
	if !cfg.Database.Enabled {
		return nil, nil, errors.New("database mirror is not enabled")
	}
	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.Database.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	return postgres.NewMirror(db, cmdCtx.logger(cfg)), db.Close, nil
}

func statusRow(ruleset string, snap *domain.UserRecordStore) []string {
	streamers := make(map[domain.Streamer]struct{})
	for _, r := range snap.Records {
		streamers[r.Streamer] = struct{}{}
	}

	lastAID := "-"
	if snap.Pointer.LastSeenID != 0 {
		lastAID = strconv.FormatInt(snap.Pointer.LastSeenID, 10)
	}
	lastSync := "never"
	if snap.Pointer.LastSyncTimestamp != 0 {
		lastSync = render.FormatDate(snap.Pointer.LastSyncTimestamp)
	}

	return []string{
		strconv.FormatInt(snap.Identity.ID, 10),
		snap.Identity.DisplayName,
		ruleset,
		strconv.Itoa(len(snap.Records)),
		strconv.Itoa(len(streamers)),
		lastAID,
		lastSync,
	}
}
