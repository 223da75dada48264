// Package postgres mirrors record stores into PostgreSQL so they can be
// queried with SQL. The JSON files stay the source of truth.
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"replay_fetcher/internal/domain"
	"replay_fetcher/internal/logging"
)

type Mirror struct {
	records *RecordStore
	games   *GameStore
	cache   *CacheStore
	tx      *TransactionManager
	logger  zerolog.Logger
}

func NewMirror(db *sqlx.DB, logger zerolog.Logger) *Mirror {
	return &Mirror{
		records: NewRecordStore(db),
		games:   NewGameStore(db),
		cache:   NewCacheStore(db),
		tx:      NewTransactionManager(db),
		logger:  logging.Named(logger, "postgres_mirror"),
	}
}

// Save brings the mirrored copy of one identity up to date with snapshot.
// Only records that are missing or carry a different title are written.
func (m *Mirror) Save(ctx context.Context, snapshot *domain.UserRecordStore) error {
	uid := snapshot.Identity.ID
	written := 0

	err := m.tx.WithTransaction(ctx, func(ctx context.Context) error {
		existing, err := m.records.ExistingTitles(ctx, uid, snapshot.IDs())
		if err != nil {
			return fmt.Errorf("load existing records: %w", err)
		}

		var changed []StoredRecord
		games := make(map[int64][]string)
		for pos, r := range snapshot.Records {
			if title, ok := existing[r.ID]; ok && title == r.Title {
				continue
			}
			changed = append(changed, StoredRecord{Position: pos, Record: r})
			games[r.ID] = r.Games
		}

		if err := m.records.UpsertBatch(ctx, uid, changed); err != nil {
			return fmt.Errorf("upsert records: %w", err)
		}
		if err := m.games.LinkToRecords(ctx, uid, games); err != nil {
			return fmt.Errorf("link games: %w", err)
		}
		if err := m.cache.Update(ctx, snapshot.Identity, snapshot.Pointer); err != nil {
			return fmt.Errorf("update cache pointer: %w", err)
		}

		written = len(changed)
		return nil
	})
	if err != nil {
		return err
	}

	m.logger.Debug().Int64("uid", uid).Int("written", written).Msg("mirrored record store")
	return nil
}

// Load reads the mirrored copy of one identity.
func (m *Mirror) Load(ctx context.Context, identity domain.Identity) (*domain.UserRecordStore, error) {
	pointer, err := m.cache.Get(ctx, identity.ID)
	if err != nil {
		return nil, fmt.Errorf("get cache pointer: %w", err)
	}
	records, err := m.records.ListByIdentity(ctx, identity.ID)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	games, err := m.games.GetByIdentity(ctx, identity.ID)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}

	for i := range records {
		records[i].Games = games[records[i].ID]
	}

	return &domain.UserRecordStore{
		Identity: identity,
		Pointer:  *pointer,
		Records:  records,
	}, nil
}
