package main

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"replay_fetcher/internal/domain"
)

const catalogBody = `{"code":0,"message":"0","data":{
	"archives":[
		{"aid":103,"bvid":"BV103","duration":600,"pubdate":1704250000,"title":"杂谈"},
		{"aid":102,"bvid":"BV102","duration":7200,"pubdate":1704160000,"title":"【机皇录播】2024年1月2日《艾尔登法环》《哈迪斯》"},
		{"aid":101,"bvid":"BV101","duration":3600,"pubdate":1704070000,"title":"【机皇录播】《蔚蓝》"}
	],
	"page":{"num":1,"size":100,"total":3}}}`

type testEnv struct {
	dir        string
	configPath string
	requests   atomic.Int32
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{dir: t.TempDir()}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env.requests.Add(1)
		assert.Equal(t, "245335", r.URL.Query().Get("mid"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(catalogBody))
	}))
	t.Cleanup(srv.Close)

	cfg := fmt.Sprintf(`
log:
  level: error
  format: json
paths:
  state_dir: %[1]s/state
  docs_dir: %[1]s/docx
  readme: %[1]s/README.md
api:
  base_url: %[2]s
  retry:
    max_attempts: 1
sync:
  page_delay: 1ms
identities:
  - uid: 245335
    name: 胧黑
    ruleset: bracketed
`, env.dir, srv.URL)

	env.configPath = filepath.Join(env.dir, "config.yaml")
	require.NoError(t, os.WriteFile(env.configPath, []byte(cfg), 0o644))
	return env
}

func (e *testEnv) execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", e.configPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestRunCommand_SyncsAndRenders(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.execute(t, "run")
	require.NoError(t, err)
	assert.Contains(t, out, "245335")
	assert.Equal(t, int32(1), env.requests.Load())

	record, err := os.ReadFile(filepath.Join(env.dir, "state", "245335.record.json"))
	require.NoError(t, err)
	// 103 is rejected by the parser but still becomes the cache pointer.
	assert.Contains(t, string(record), `"aid":103`)
	assert.Contains(t, string(record), `"liver":"机皇"`)
	assert.NotContains(t, string(record), `"aid":103,"bvId"`)

	aids, err := os.ReadFile(filepath.Join(env.dir, "state", "245335.aid.json"))
	require.NoError(t, err)
	assert.Contains(t, string(aids), `"101": []`)
	assert.Contains(t, string(aids), `"102": []`)

	doc, err := os.ReadFile(filepath.Join(env.dir, "docx", "机皇", "机皇直播回放列表(from 胧黑).md"))
	require.NoError(t, err)
	assert.Contains(t, string(doc), "## 蔚蓝")
	assert.Contains(t, string(doc), "| 艾尔登法环 | 2024-01-02 | 02:00:00 | Part 1 |")

	readme, err := os.ReadFile(filepath.Join(env.dir, "README.md"))
	require.NoError(t, err)
	assert.Contains(t, string(readme), "[[**机皇**]]")
	assert.Contains(t, string(readme), "- 胧黑: https://space.bilibili.com/245335")
}

func TestRunCommand_SecondRunStopsAtCachePoint(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.execute(t, "run")
	require.NoError(t, err)
	first, err := os.ReadFile(filepath.Join(env.dir, "state", "245335.record.json"))
	require.NoError(t, err)

	_, err = env.execute(t, "run")
	require.NoError(t, err)
	second, err := os.ReadFile(filepath.Join(env.dir, "state", "245335.record.json"))
	require.NoError(t, err)

	assert.Equal(t, strings.Count(string(first), `"aid":`), strings.Count(string(second), `"aid":`))
	assert.Equal(t, int32(2), env.requests.Load())
}

func TestRunCommand_IndexFailureIsNotAnIdentityFailure(t *testing.T) {
	env := newTestEnv(t)
	blocked := filepath.Join(env.dir, "README.md", "keep")
	require.NoError(t, os.MkdirAll(blocked, 0o755))

	out, err := env.execute(t, "run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sync finished with errors")
	assert.Contains(t, err.Error(), "render index")
	assert.NotContains(t, err.Error(), "failed for")
	assert.Contains(t, out, "245335")
	assert.FileExists(t, filepath.Join(env.dir, "state", "245335.record.json"))
}

func TestRunError(t *testing.T) {
	cause := errors.New("boom")

	assert.NoError(t, runError(&domain.RunStats{}, nil))
	assert.EqualError(t, runError(&domain.RunStats{}, cause), "sync finished with errors: boom")
	assert.EqualError(t, runError(nil, cause), "sync finished with errors: boom")
	assert.EqualError(t, runError(&domain.RunStats{Failed: 2}, cause), "sync failed for 2 identities: boom")
}

func TestStatusCommand(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.execute(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "胧黑")
	assert.Contains(t, out, "never")

	_, err = env.execute(t, "run")
	require.NoError(t, err)

	out, err = env.execute(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "bracketed")
	assert.Contains(t, out, "103")
	assert.NotContains(t, out, "never")
}

func TestRenderCommand_UsesStoredState(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.execute(t, "run")
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(filepath.Join(env.dir, "docx")))

	out, err := env.execute(t, "render")
	require.NoError(t, err)
	assert.Contains(t, out, "rendered 1 documents")
	assert.Equal(t, int32(1), env.requests.Load())
	assert.FileExists(t, filepath.Join(env.dir, "docx", "机皇", "机皇直播回放列表(from 胧黑).md"))
}

func TestRenderCommand_SingleUploader(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.execute(t, "run")
	require.NoError(t, err)

	out, err := env.execute(t, "render", "--uid", "245335")
	require.NoError(t, err)
	assert.Contains(t, out, "rendered 1 documents")

	_, err = env.execute(t, "render", "--uid", "999")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "uploader 999 is not tracked")
}

func TestStatusCommand_FromDBRequiresDatabase(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.execute(t, "status", "--from-db")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database mirror is not enabled")
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: loud\n"), 0o644))

	cmd := newRootCommand()
	cmd.SetArgs([]string{"--config", path, "status"})
	cmd.SetOut(&bytes.Buffer{})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}
