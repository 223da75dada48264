package jsonfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAidMapper_UpdateAddsEmptyEntries(t *testing.T) {
	dir := t.TempDir()
	m, err := OpenAidMapper(dir, 15810)
	require.NoError(t, err)

	added, err := m.Update([]int64{11, 12})
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	data, err := os.ReadFile(AidMapperPath(dir, 15810))
	require.NoError(t, err)
	assert.Equal(t, "{\n\t\"11\": [],\n\t\"12\": []\n}", string(data))
}

func TestAidMapper_KeepsCuratedOverrides(t *testing.T) {
	dir := t.TempDir()
	path := AidMapperPath(dir, 1)
	require.NoError(t, os.WriteFile(path, []byte(`{"11": ["Dota 2", "CS2"], "12": []}`), 0o644))

	m, err := OpenAidMapper(dir, 1)
	require.NoError(t, err)

	assert.Equal(t, []string{"Dota 2", "CS2"}, m.Games(11))
	assert.Nil(t, m.Games(12))
	assert.Nil(t, m.Games(13))

	added, err := m.Update([]int64{11, 12, 13})
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	reopened, err := OpenAidMapper(dir, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, reopened.Len())
	assert.Equal(t, []string{"Dota 2", "CS2"}, reopened.Games(11))
}

func TestAidMapper_NoopUpdateSkipsWrite(t *testing.T) {
	dir := t.TempDir()
	path := AidMapperPath(dir, 1)
	require.NoError(t, os.WriteFile(path, []byte(`{"11": []}`), 0o644))

	m, err := OpenAidMapper(dir, 1)
	require.NoError(t, err)
	added, err := m.Update([]int64{11})
	require.NoError(t, err)
	assert.Zero(t, added)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"11": []}`, string(data))
}

func TestLoadCorrections(t *testing.T) {
	dir := t.TempDir()

	empty, err := LoadCorrections(filepath.Join(dir, "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, "data2", empty.Correct("data2"))

	path := filepath.Join(dir, "SpellingCorrections.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"data2": "dota2", "blank": ""}`), 0o644))

	c, err := LoadCorrections(path)
	require.NoError(t, err)
	assert.Equal(t, "dota2", c.Correct("data2"))
	assert.Equal(t, "blank", c.Correct("blank"))
	assert.Equal(t, "dota2", c.Correct("dota2"))
}

func TestLoadCorrections_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "SpellingCorrections.json")
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0o644))

	_, err := LoadCorrections(path)
	require.ErrorIs(t, err, ErrCorrupt)
}
