package domain

import "time"

// MergeResult describes what a merge changed.
type MergeResult struct {
	Added           []Record
	Replaced        []Record
	PointerAdvanced bool
	Pointer         CachePointer
}

// SyncStats holds statistics about one identity's sync.
type SyncStats struct {
	IdentityID   int64
	Pages        int
	Fetched      int
	TitleChanged int
	Rejected     int
	Added        int
	Replaced     int
	Published    int
	Errors       int
	Duration     time.Duration
}

// RunStats aggregates one pass over all tracked identities.
type RunStats struct {
	RunID      string
	Identities []SyncStats
	Failed     int
	Duration   time.Duration
}

// RecordEvent is emitted for every record a merge added or replaced.
type RecordEvent struct {
	RunID      string
	IdentityID int64
	Replaced   bool
	Record     Record
}
