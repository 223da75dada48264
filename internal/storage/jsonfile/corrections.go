package jsonfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	json "github.com/goccy/go-json"
)

// Corrections maps misspelled game names to their canonical spelling.
type Corrections map[string]string

// LoadCorrections reads the dictionary at path. A missing file is an empty dictionary.
func LoadCorrections(path string) (Corrections, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Corrections{}, nil
	}
	if err != nil {
		return nil, &StoreError{Op: "read", Path: path, Err: err}
	}

	c := Corrections{}
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, &StoreError{Op: "decode", Path: path, Err: fmt.Errorf("%w: %v", ErrCorrupt, err)}
	}
	return c, nil
}

func (c Corrections) Correct(game string) string {
	if fixed, ok := c[game]; ok && fixed != "" {
		return fixed
	}
	return game
}
