package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"replay_fetcher/internal/domain"
)

func upload(id int64, title string) domain.Upload {
	return domain.Upload{
		ID:              id,
		AltID:           "BV1xx",
		DurationSeconds: 7200,
		PublishTime:     1714000000000,
		Title:           title,
	}
}

func buildRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := Build(newToolkit(), []IdentitySpec{
		{Identity: domain.Identity{ID: 245335, DisplayName: "胧黑"}, Ruleset: "bracketed"},
		{Identity: domain.Identity{ID: 1400350754, DisplayName: "自行车二层"}, Ruleset: "dated"},
		{Identity: domain.Identity{ID: 15810, DisplayName: "Mr.Quin"}, Ruleset: "quin"},
	})
	require.NoError(t, err)
	return reg
}

func lookup(t *testing.T, reg *Registry, id int64) *Parser {
	t.Helper()
	p, ok := reg.Lookup(id)
	require.True(t, ok)
	return p
}

func TestBracketed(t *testing.T) {
	p := lookup(t, buildRegistry(t), 245335)

	r, ok := p.Parse(upload(1, "【机皇录播】2024年3月5日《艾尔登法环》《黑神话：悟空》"))
	require.True(t, ok)
	assert.Equal(t, domain.Streamer("机皇"), r.Streamer)
	assert.Equal(t, []string{"艾尔登法环", "黑神话：悟空"}, r.Games)
	assert.Equal(t, day(2024, time.March, 5), r.LiveTime)
	assert.Equal(t, int64(1), r.ID)
	assert.Equal(t, int64(7200), r.DurationSeconds)

	_, ok = p.Parse(upload(2, "随便的视频《游戏》"))
	assert.False(t, ok, "streamer marker required")

	_, ok = p.Parse(upload(3, "【机皇录播】2024年3月5日 杂谈"))
	assert.False(t, ok, "at least one game required")
}

func TestBracketed_KeepsTitleChangedFlag(t *testing.T) {
	p := lookup(t, buildRegistry(t), 245335)

	u := upload(1, "【机皇录播】《只狼》")
	u.TitleChanged = true

	r, ok := p.Parse(u)
	require.True(t, ok)
	assert.True(t, r.TitleChanged)
	assert.Equal(t, u.PublishTime, r.LiveTime)
}

func TestDated(t *testing.T) {
	p := lookup(t, buildRegistry(t), 1400350754)

	r, ok := p.Parse(upload(1, "【剩饭录播】 2024-1-9 艾尔登法环——残缺+初体验空洞骑士"))
	require.True(t, ok)
	assert.Equal(t, domain.Streamer("北极熊剩饭"), r.Streamer)
	assert.Equal(t, []string{"艾尔登法环", "空洞骑士"}, r.Games)
	assert.Equal(t, day(2024, time.January, 9), r.LiveTime)

	r, ok = p.Parse(upload(2, "【QUIN录播】2023-05-02 红霞岛+（彩蛋）"))
	require.True(t, ok)
	assert.Equal(t, domain.Streamer("Mr.Quin"), r.Streamer)
	assert.Equal(t, []string{"红霞岛"}, r.Games)

	_, ok = p.Parse(upload(3, "【剩饭录播】 艾尔登法环"))
	assert.False(t, ok, "date required")

	_, ok = p.Parse(upload(4, "【剩饭录播】 2024-1-9 （备注）"))
	assert.False(t, ok, "games empty after cleaning")
}

func TestQuin(t *testing.T) {
	p := lookup(t, buildRegistry(t), 15810)

	r, ok := p.Parse(upload(1, "【Mr.Quin】红霞岛+装甲核心6 直播录像"))
	require.True(t, ok)
	assert.Equal(t, QuinStreamer, r.Streamer)
	assert.Equal(t, []string{"红霞岛", "装甲核心6"}, r.Games)
	assert.Equal(t, r.PublishTime, r.LiveTime)

	r, ok = p.Parse(upload(2, "【Mr.Quin X 鱼炒剩饭】双人成行&胡闹厨房"))
	require.True(t, ok)
	assert.Equal(t, []string{"双人成行", "胡闹厨房"}, r.Games)

	_, ok = p.Parse(upload(3, "【Quin】"))
	assert.False(t, ok)

	_, ok = p.Parse(upload(4, "别的视频"))
	assert.False(t, ok)
}

func TestParse_FirstSuccessfulStrategyWins(t *testing.T) {
	var calls []string
	first := func(u domain.Upload) (domain.Record, bool) {
		calls = append(calls, "first")
		return domain.Record{}, false
	}
	second := func(u domain.Upload) (domain.Record, bool) {
		calls = append(calls, "second")
		return classify(u, 1, []string{"a"}, "x"), true
	}
	third := func(u domain.Upload) (domain.Record, bool) {
		calls = append(calls, "third")
		return classify(u, 2, []string{"b"}, "y"), true
	}

	p := New(domain.Identity{ID: 1}, first, second, third)
	r, ok := p.Parse(upload(1, "t"))

	require.True(t, ok)
	assert.Equal(t, []string{"a"}, r.Games)
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestParse_Deterministic(t *testing.T) {
	p := lookup(t, buildRegistry(t), 1400350754)
	u := upload(1, "【肯尼录播】2024-02-03 CS2+Dota 2（天梯）")

	a, okA := p.Parse(u)
	b, okB := p.Parse(u)
	assert.Equal(t, okA, okB)
	assert.Equal(t, a, b)
}

func TestBuild_Errors(t *testing.T) {
	_, err := Build(newToolkit(), []IdentitySpec{{Identity: domain.Identity{ID: 1}, Ruleset: "nope"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown ruleset")

	_, err = Build(newToolkit(), []IdentitySpec{
		{Identity: domain.Identity{ID: 1}, Ruleset: "quin"},
		{Identity: domain.Identity{ID: 1}, Ruleset: "dated"},
	})
	require.Error(t, err)
}

func TestRegistry_PreservesOrder(t *testing.T) {
	reg := buildRegistry(t)

	var got []int64
	for _, id := range reg.Identities() {
		got = append(got, id.ID)
	}
	assert.Equal(t, []int64{245335, 1400350754, 15810}, got)
	assert.Equal(t, []string{"bracketed", "dated", "quin"}, Rulesets())
}
