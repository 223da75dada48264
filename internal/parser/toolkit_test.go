package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"replay_fetcher/internal/domain"
)

var utc8 = time.FixedZone("UTC+8", 8*60*60)

func defaultPrefixes() []StreamerPrefix {
	return []StreamerPrefix{
		{Prefix: "【机皇录播】", Streamer: "机皇"},
		{Prefix: "【Quin？机皇！】", Streamer: "机皇"},
		{Prefix: "【肯尼录播】", Streamer: "机智的肯尼"},
		{Prefix: "【剩饭录播】", Streamer: "北极熊剩饭"},
		{Prefix: "【Quin录播】", Streamer: "Mr.Quin"},
		{Prefix: "【Mr.Quin】", Streamer: "Mr.Quin"},
	}
}

func newToolkit() *Toolkit {
	return NewToolkit(defaultPrefixes(), utc8)
}

func day(y int, m time.Month, d int) int64 {
	return time.Date(y, m, d, 0, 0, 0, 0, utc8).UnixMilli()
}

func TestExtractStreamer(t *testing.T) {
	tk := newToolkit()

	tests := []struct {
		title string
		want  domain.Streamer
		ok    bool
	}{
		{"【机皇录播】2024年3月5日《艾尔登法环》", "机皇", true},
		{"【QUIN？机皇！】《只狼》", "机皇", true},
		{"转载 【quin录播】 2023-05-02 红霞岛", "Mr.Quin", true},
		{"【MR.QUIN】杂谈", "Mr.Quin", true},
		{"【肯尼录播】2024-01-01 CS2", "机智的肯尼", true},
		{"普通视频", "", false},
	}

	for _, tt := range tests {
		got, ok := tk.ExtractStreamer(tt.title)
		assert.Equal(t, tt.ok, ok, tt.title)
		assert.Equal(t, tt.want, got, tt.title)
	}
}

func TestExtractStreamer_FirstEntryWins(t *testing.T) {
	tk := newToolkit()

	got, ok := tk.ExtractStreamer("【Mr.Quin】【机皇录播】")
	assert.True(t, ok)
	assert.Equal(t, domain.Streamer("机皇"), got)
}

func TestExtractLiveDate(t *testing.T) {
	tk := newToolkit()
	fallback := int64(1700000000000)

	assert.Equal(t, day(2024, time.March, 5), tk.ExtractLiveDate("【机皇录播】2024年3月5日《艾尔登法环》", fallback))
	assert.Equal(t, day(2024, time.March, 5), tk.ExtractLiveDate("24年3月5日", fallback))
	assert.Equal(t, day(2023, time.May, 2), tk.ExtractLiveDate("【Quin录播】2023-05-02 红霞岛", fallback))
	assert.Equal(t, day(2023, time.May, 2), tk.ExtractLiveDate("23-5-2", fallback))
	assert.Equal(t, day(2024, time.March, 5), tk.ExtractLiveDate("2023-01-02 回放 2024年3月5日", fallback),
		"the Chinese form takes precedence")
	assert.Equal(t, fallback, tk.ExtractLiveDate("没有日期", fallback))
}

func TestCleanGameName(t *testing.T) {
	tests := map[string]string{
		"艾尔登法环（DLC）":     "艾尔登法环",
		"Dota 2 (ranked)": "Dota 2",
		"【新】星露谷物语":       "星露谷物语",
		"空洞骑士——已爆炸":      "空洞骑士",
		"空洞骑士-残缺":        "空洞骑士",
		"残缺——只狼":         "只狼",
		"只狼初体验":          "只狼",
		"只狼直播实况":         "只狼",
		"只狼【直播录像】":       "只狼",
		"  Celeste  ":     "Celeste",
		"（全是备注）":         "",
	}

	for in, want := range tests {
		assert.Equal(t, want, CleanGameName(in), in)
	}
}

func TestCleanGameName_RemovesFirstNoteOnly(t *testing.T) {
	assert.Equal(t, "A实况", CleanGameName("A初体验实况"))
}
