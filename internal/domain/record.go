package domain

// Streamer names the live streamer a record belongs to.
type Streamer string

// Record is a classified upload, the durable unit of a record store.
type Record struct {
	Upload
	LiveTime int64    `json:"liveTime"` // epoch ms
	Games    []string `json:"playGame"`
	Streamer Streamer `json:"liver"`
}

// Identity is a tracked uploader.
type Identity struct {
	ID          int64
	DisplayName string
}

// CachePointer marks the most recent upload known to be fully processed.
type CachePointer struct {
	LastSeenID        int64
	LastSyncTimestamp int64 // epoch ms
}

// UserRecordStore is the persisted state of one identity.
type UserRecordStore struct {
	Identity Identity
	Pointer  CachePointer
	// Records are kept oldest first.
	Records []Record
}

// Clone returns a deep copy safe to hand out of the owning store.
func (s *UserRecordStore) Clone() UserRecordStore {
	out := UserRecordStore{
		Identity: s.Identity,
		Pointer:  s.Pointer,
		Records:  make([]Record, len(s.Records)),
	}
	for i, r := range s.Records {
		r.Games = append([]string(nil), r.Games...)
		out.Records[i] = r
	}
	return out
}

// IDs returns the ids of all stored records in storage order.
func (s *UserRecordStore) IDs() []int64 {
	ids := make([]int64, len(s.Records))
	for i, r := range s.Records {
		ids[i] = r.ID
	}
	return ids
}

// GameOverrides supplies hand-curated game lists that take precedence over parsed ones.
type GameOverrides interface {
	Games(id int64) []string
}
