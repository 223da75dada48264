package jsonfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	json "github.com/goccy/go-json"

	"replay_fetcher/internal/fsutil"
)

func AidMapperPath(dir string, uid int64) string {
	return filepath.Join(dir, fmt.Sprintf("%d.aid.json", uid))
}

// AidMapper holds the hand-curated game lists keyed by video id. An empty
// list means the parsed games stand.
type AidMapper struct {
	path    string
	entries map[string][]string
	exists  bool
}

func OpenAidMapper(dir string, uid int64) (*AidMapper, error) {
	m := &AidMapper{
		path:    AidMapperPath(dir, uid),
		entries: make(map[string][]string),
	}

	data, err := os.ReadFile(m.path)
	if errors.Is(err, fs.ErrNotExist) {
		return m, nil
	}
	if err != nil {
		return nil, &StoreError{Op: "read", Path: m.path, Err: err}
	}
	if err := json.Unmarshal(data, &m.entries); err != nil {
		return nil, &StoreError{Op: "decode", Path: m.path, Err: fmt.Errorf("%w: %v", ErrCorrupt, err)}
	}
	if m.entries == nil {
		m.entries = make(map[string][]string)
	}
	m.exists = true
	return m, nil
}

// Games returns the override for id, or nil when none is set.
func (m *AidMapper) Games(id int64) []string {
	games := m.entries[strconv.FormatInt(id, 10)]
	if len(games) == 0 {
		return nil
	}
	return append([]string(nil), games...)
}

// Update adds an empty entry for every id not yet present and rewrites the
// file when anything changed. It returns how many entries were added.
func (m *AidMapper) Update(ids []int64) (int, error) {
	added := 0
	for _, id := range ids {
		key := strconv.FormatInt(id, 10)
		if _, ok := m.entries[key]; ok {
			continue
		}
		m.entries[key] = []string{}
		added++
	}
	if added == 0 && m.exists {
		return 0, nil
	}

	data, err := json.MarshalIndent(m.entries, "", "\t")
	if err != nil {
		return 0, &StoreError{Op: "encode", Path: m.path, Err: err}
	}
	if err := fsutil.WriteFile(m.path, data); err != nil {
		return 0, &StoreError{Op: "persist", Path: m.path, Err: err}
	}
	m.exists = true
	return added, nil
}

func (m *AidMapper) Len() int { return len(m.entries) }
