package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"replay_fetcher/internal/domain"
)

type CacheStore struct {
	db *sqlx.DB
}

func NewCacheStore(db *sqlx.DB) *CacheStore {
	return &CacheStore{db: db}
}

func (s *CacheStore) Get(ctx context.Context, uid int64) (*domain.CachePointer, error) {
	var row struct {
		LastSeenID        int64 `db:"last_seen_aid"`
		LastSyncTimestamp int64 `db:"last_sync_timestamp"`
	}
	query := `
		SELECT last_seen_aid, last_sync_timestamp
		FROM record_cache
		WHERE uid = $1`

	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &row, query, uid)
	if errors.Is(err, sql.ErrNoRows) {
		// Never mirrored yet
		return &domain.CachePointer{}, nil
	}
	if err != nil {
		return nil, err
	}
	return &domain.CachePointer{
		LastSeenID:        row.LastSeenID,
		LastSyncTimestamp: row.LastSyncTimestamp,
	}, nil
}

func (s *CacheStore) Update(ctx context.Context, identity domain.Identity, pointer domain.CachePointer) error {
	query := `
		INSERT INTO record_cache (uid, user_name, last_seen_aid, last_sync_timestamp, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (uid) DO UPDATE SET
			user_name = EXCLUDED.user_name,
			last_seen_aid = EXCLUDED.last_seen_aid,
			last_sync_timestamp = EXCLUDED.last_sync_timestamp,
			updated_at = EXCLUDED.updated_at`

	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, query,
		identity.ID,
		identity.DisplayName,
		pointer.LastSeenID,
		pointer.LastSyncTimestamp,
	)
	return err
}
