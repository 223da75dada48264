package postgres

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const (
	gameColumns   = 4
	gameBatchSize = 5000
)

type GameStore struct {
	db *sqlx.DB
}

func NewGameStore(db *sqlx.DB) *GameStore {
	return &GameStore{db: db}
}

// LinkToRecords replaces the game lists of the given records.
func (s *GameStore) LinkToRecords(ctx context.Context, uid int64, games map[int64][]string) error {
	if len(games) == 0 {
		return nil
	}
	exec := GetExecutor(ctx, s.db)

	ids := make([]int64, 0, len(games))
	for aid := range games {
		ids = append(ids, aid)
	}
	_, err := exec.ExecContext(ctx,
		"DELETE FROM record_games WHERE uid = $1 AND aid = ANY($2)",
		uid, pq.Array(ids),
	)
	if err != nil {
		return err
	}

	type gameRow struct {
		aid  int64
		pos  int
		game string
	}
	var rows []gameRow
	for _, aid := range ids {
		for pos, game := range games[aid] {
			rows = append(rows, gameRow{aid: aid, pos: pos, game: game})
		}
	}

	for start := 0; start < len(rows); start += gameBatchSize {
		chunk := rows[start:min(start+gameBatchSize, len(rows))]

		var sb strings.Builder
		sb.WriteString("INSERT INTO record_games (uid, aid, position, game) VALUES ")
		valueArgs := make([]any, 0, len(chunk)*gameColumns)

		for i, row := range chunk {
			if i > 0 {
				sb.WriteString(", ")
			}
			writePlaceholders(&sb, i*gameColumns, gameColumns)
			valueArgs = append(valueArgs, uid, row.aid, row.pos, row.game)
		}
		sb.WriteString(" ON CONFLICT DO NOTHING")

		if _, err := exec.ExecContext(ctx, sb.String(), valueArgs...); err != nil {
			return err
		}
	}
	return nil
}

// GetByIdentity returns every game list of the identity keyed by aid.
func (s *GameStore) GetByIdentity(ctx context.Context, uid int64) (map[int64][]string, error) {
	query := `
		SELECT aid, game
		FROM record_games
		WHERE uid = $1
		ORDER BY aid, position`

	var rows []struct {
		AID  int64  `db:"aid"`
		Game string `db:"game"`
	}
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &rows, query, uid); err != nil {
		return nil, err
	}

	result := make(map[int64][]string)
	for _, row := range rows {
		result[row.AID] = append(result[row.AID], row.Game)
	}
	return result, nil
}
