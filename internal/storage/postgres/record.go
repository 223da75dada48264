package postgres

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"replay_fetcher/internal/domain"
)

const (
	recordColumns   = 9
	recordBatchSize = 1000
)

// StoredRecord is a record together with its position in the identity's store.
type StoredRecord struct {
	Position int
	Record   domain.Record
}

type recordRow struct {
	UID         int64  `db:"uid"`
	AID         int64  `db:"aid"`
	BVID        string `db:"bvid"`
	Title       string `db:"title"`
	PublishTime int64  `db:"publish_time"`
	LiveTime    int64  `db:"live_time"`
	Duration    int64  `db:"duration"`
	Streamer    string `db:"streamer"`
	Position    int    `db:"position"`
}

type RecordStore struct {
	db *sqlx.DB
}

func NewRecordStore(db *sqlx.DB) *RecordStore {
	return &RecordStore{db: db}
}

// UpsertBatch inserts or updates records in chunks that stay under the
// driver's bind parameter limit.
func (s *RecordStore) UpsertBatch(ctx context.Context, uid int64, records []StoredRecord) error {
	exec := GetExecutor(ctx, s.db)

	for start := 0; start < len(records); start += recordBatchSize {
		chunk := records[start:min(start+recordBatchSize, len(records))]

		var sb strings.Builder
		sb.WriteString(`INSERT INTO records (
			uid, aid, bvid, title, publish_time, live_time, duration, streamer, position
		) VALUES `)
		valueArgs := make([]any, 0, len(chunk)*recordColumns)

		for i, sr := range chunk {
			if i > 0 {
				sb.WriteString(", ")
			}
			writePlaceholders(&sb, i*recordColumns, recordColumns)
			r := sr.Record
			valueArgs = append(valueArgs,
				uid,
				r.ID,
				r.AltID,
				r.Title,
				r.PublishTime,
				r.LiveTime,
				r.DurationSeconds,
				string(r.Streamer),
				sr.Position,
			)
		}
		sb.WriteString(`
		ON CONFLICT (uid, aid) DO UPDATE SET
			bvid = EXCLUDED.bvid,
			title = EXCLUDED.title,
			publish_time = EXCLUDED.publish_time,
			live_time = EXCLUDED.live_time,
			duration = EXCLUDED.duration,
			streamer = EXCLUDED.streamer,
			position = EXCLUDED.position,
			updated_at = NOW()`)

		if _, err := exec.ExecContext(ctx, sb.String(), valueArgs...); err != nil {
			return err
		}
	}
	return nil
}

// ExistingTitles returns the stored title of every given aid the identity already has.
func (s *RecordStore) ExistingTitles(ctx context.Context, uid int64, ids []int64) (map[int64]string, error) {
	if len(ids) == 0 {
		return make(map[int64]string), nil
	}

	query := `SELECT aid, title FROM records WHERE uid = $1 AND aid = ANY($2)`

	rows, err := GetExecutor(ctx, s.db).QueryxContext(ctx, query, uid, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[int64]string)
	for rows.Next() {
		var aid int64
		var title string
		if err := rows.Scan(&aid, &title); err != nil {
			return nil, err
		}
		result[aid] = title
	}

	return result, rows.Err()
}

// ListByIdentity returns the identity's records in store order, without games.
func (s *RecordStore) ListByIdentity(ctx context.Context, uid int64) ([]domain.Record, error) {
	query := `
		SELECT uid, aid, bvid, title, publish_time, live_time, duration, streamer, position
		FROM records
		WHERE uid = $1
		ORDER BY position`

	var rows []recordRow
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &rows, query, uid); err != nil {
		return nil, err
	}

	records := make([]domain.Record, len(rows))
	for i, row := range rows {
		records[i] = domain.Record{
			Upload: domain.Upload{
				ID:              row.AID,
				AltID:           row.BVID,
				DurationSeconds: row.Duration,
				PublishTime:     row.PublishTime,
				Title:           row.Title,
			},
			LiveTime: row.LiveTime,
			Streamer: domain.Streamer(row.Streamer),
		}
	}
	return records, nil
}

func writePlaceholders(sb *strings.Builder, offset, n int) {
	sb.WriteString("(")
	for j := 1; j <= n; j++ {
		if j > 1 {
			sb.WriteString(", ")
		}
		sb.WriteString("$")
		sb.WriteString(itoa(offset + j))
	}
	sb.WriteString(")")
}

func itoa(i int) string {
	if i < 10 {
		return string(rune('0' + i))
	}
	return itoa(i/10) + string(rune('0'+i%10))
}
