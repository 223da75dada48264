package jsonfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"replay_fetcher/internal/domain"
	"replay_fetcher/internal/fsutil"
)

// document is the on-disk layout of <uid>.record.json.
type document struct {
	Cache   cacheEntry      `json:"cache"`
	Records []domain.Record `json:"records"`
}

type cacheEntry struct {
	UID       int64  `json:"uid"`
	UserName  string `json:"userName"`
	AID       int64  `json:"aid"`
	Timestamp int64  `json:"timestamp"`
}

// RecordStore owns the persisted records of one identity. It is not safe for
// concurrent use; a file lock keeps other processes from opening the same
// identity while it is held.
type RecordStore struct {
	path   string
	lock   *flock.Flock
	state  domain.UserRecordStore
	index  map[int64]int
	now    func() time.Time
	logger zerolog.Logger
}

type Option func(*RecordStore)

func WithClock(now func() time.Time) Option {
	return func(s *RecordStore) { s.now = now }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *RecordStore) { s.logger = logger }
}

func RecordPath(dir string, uid int64) string {
	return filepath.Join(dir, fmt.Sprintf("%d.record.json", uid))
}

// OpenRecordStore loads the identity's store from dir, creating an empty one
// if none exists. The returned store holds the identity lock until Close.
func OpenRecordStore(dir string, identity domain.Identity, opts ...Option) (*RecordStore, error) {
	path := RecordPath(dir, identity.ID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &StoreError{Op: "mkdir", Path: dir, Err: err}
	}

	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, &StoreError{Op: "lock", Path: path, Err: err}
	}
	if !ok {
		return nil, &StoreError{Op: "lock", Path: path, Err: ErrStoreLocked}
	}

	s := &RecordStore{
		path:   path,
		lock:   lock,
		now:    time.Now,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.load(identity); err != nil {
		_ = lock.Unlock()
		return nil, err
	}

	return s, nil
}

func (s *RecordStore) load(identity domain.Identity) error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return s.commit(domain.UserRecordStore{Identity: identity})
	}
	if err != nil {
		return &StoreError{Op: "read", Path: s.path, Err: err}
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return &StoreError{Op: "decode", Path: s.path, Err: fmt.Errorf("%w: %v", ErrCorrupt, err)}
	}
	if doc.Cache.UID != 0 && doc.Cache.UID != identity.ID {
		return &StoreError{
			Op:   "decode",
			Path: s.path,
			Err:  fmt.Errorf("%w: file belongs to uid %d", ErrCorrupt, doc.Cache.UID),
		}
	}

	name := identity.DisplayName
	if name == "" {
		name = doc.Cache.UserName
	}

	records, dropped := dedupe(doc.Records)
	if dropped > 0 {
		s.logger.Warn().Int("duplicates", dropped).Str("path", s.path).Msg("collapsed duplicate records on load")
	}

	s.state = domain.UserRecordStore{
		Identity: domain.Identity{ID: identity.ID, DisplayName: name},
		Pointer: domain.CachePointer{
			LastSeenID:        doc.Cache.AID,
			LastSyncTimestamp: doc.Cache.Timestamp,
		},
		Records: records,
	}
	s.reindex()
	return nil
}

// dedupe keeps each id at its first position with its last stored data.
func dedupe(records []domain.Record) ([]domain.Record, int) {
	pos := make(map[int64]int, len(records))
	out := make([]domain.Record, 0, len(records))
	for _, r := range records {
		r.TitleChanged = false
		if i, ok := pos[r.ID]; ok {
			out[i] = r
			continue
		}
		pos[r.ID] = len(out)
		out = append(out, r)
	}
	return out, len(records) - len(out)
}

func (s *RecordStore) reindex() {
	s.index = make(map[int64]int, len(s.state.Records))
	for i, r := range s.state.Records {
		s.index[r.ID] = i
	}
}

// commit writes next as a full snapshot and only then makes it current.
func (s *RecordStore) commit(next domain.UserRecordStore) error {
	doc := document{
		Cache: cacheEntry{
			UID:       next.Identity.ID,
			UserName:  next.Identity.DisplayName,
			AID:       next.Pointer.LastSeenID,
			Timestamp: next.Pointer.LastSyncTimestamp,
		},
		Records: next.Records,
	}
	if doc.Records == nil {
		doc.Records = []domain.Record{}
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return &StoreError{Op: "encode", Path: s.path, Err: err}
	}
	if err := fsutil.WriteFile(s.path, data); err != nil {
		return &StoreError{Op: "persist", Path: s.path, Err: err}
	}

	s.state = next
	s.reindex()
	return nil
}

func (s *RecordStore) Path() string { return s.path }

func (s *RecordStore) Identity() domain.Identity { return s.state.Identity }

func (s *RecordStore) Pointer() domain.CachePointer { return s.state.Pointer }

// Snapshot returns a copy of the current state.
func (s *RecordStore) Snapshot() domain.UserRecordStore { return s.state.Clone() }

// HasReachedCachePoint compares by value, so a pointer naming a record that
// was later rejected still stops pagination.
func (s *RecordStore) HasReachedCachePoint(id int64) bool {
	return id != 0 && s.state.Pointer.LastSeenID == id
}

// TitleUnchanged reports false only when a stored record carries a different title.
func (s *RecordStore) TitleUnchanged(u domain.Upload) bool {
	i, ok := s.index[u.ID]
	if !ok {
		return true
	}
	if s.state.Records[i].Title != u.Title {
		s.logger.Info().Int64("aid", u.ID).Msg("upload title changed")
		return false
	}
	return true
}

// MergeBatch integrates a newest-first batch. Title-changed records replace
// their stored counterpart in place, each persisted on its own. The rest are
// appended oldest first. headID is the most recent upload the fetch saw as new;
// the pointer advances to it even when the parser rejected that upload.
func (s *RecordStore) MergeBatch(records []domain.Record, headID int64) (*domain.MergeResult, error) {
	res := &domain.MergeResult{Pointer: s.state.Pointer}

	var fresh []domain.Record
	seen := make(map[int64]struct{}, len(records))
	for _, r := range records {
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}

		pos, stored := s.index[r.ID]
		if r.TitleChanged && stored {
			r.TitleChanged = false
			next := s.state.Clone()
			next.Records[pos] = r
			if err := s.commit(next); err != nil {
				return res, fmt.Errorf("replace record %d: %w", r.ID, err)
			}
			res.Replaced = append(res.Replaced, r)
			continue
		}
		if stored {
			continue
		}
		r.TitleChanged = false
		fresh = append(fresh, r)
	}

	next := s.state.Clone()

	head := headID
	if head == 0 && len(fresh) > 0 {
		head = fresh[0].ID
	}
	if head != 0 && head != next.Pointer.LastSeenID {
		next.Pointer.LastSeenID = head
		res.PointerAdvanced = true
	}

	for i := len(fresh) - 1; i >= 0; i-- {
		next.Records = append(next.Records, fresh[i])
		res.Added = append(res.Added, fresh[i])
	}
	next.Pointer.LastSyncTimestamp = s.now().UnixMilli()

	if err := s.commit(next); err != nil {
		res.PointerAdvanced = false
		res.Added = nil
		return res, fmt.Errorf("merge batch: %w", err)
	}

	res.Pointer = s.state.Pointer
	return res, nil
}

// Close releases the identity lock.
func (s *RecordStore) Close() error {
	return s.lock.Unlock()
}

// ReadSnapshot loads a store without taking the writer lock. It is meant for
// read-only views such as status listings.
func ReadSnapshot(dir string, identity domain.Identity) (*domain.UserRecordStore, error) {
	path := RecordPath(dir, identity.ID)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &domain.UserRecordStore{Identity: identity}, nil
	}
	if err != nil {
		return nil, &StoreError{Op: "read", Path: path, Err: err}
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &StoreError{Op: "decode", Path: path, Err: fmt.Errorf("%w: %v", ErrCorrupt, err)}
	}
	records, _ := dedupe(doc.Records)
	if identity.DisplayName == "" {
		identity.DisplayName = doc.Cache.UserName
	}
	return &domain.UserRecordStore{
		Identity: identity,
		Pointer: domain.CachePointer{
			LastSeenID:        doc.Cache.AID,
			LastSyncTimestamp: doc.Cache.Timestamp,
		},
		Records: records,
	}, nil
}
