// Package render turns record stores into markdown replay lists and the
// README index that links them.
package render

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/rs/zerolog"

	"replay_fetcher/internal/domain"
	"replay_fetcher/internal/fsutil"
	"replay_fetcher/internal/logging"
)

const videoURL = "https://www.bilibili.com/video/av%d/"

// Corrector maps a game name to its canonical spelling.
type Corrector interface {
	Correct(game string) string
}

type noCorrections struct{}

func (noCorrections) Correct(game string) string { return game }

type Config struct {
	DocsDir    string
	ReadmePath string
	Location   *time.Location
	// Identities are listed in the README as supported uploaders.
	Identities []domain.Identity
}

type Renderer struct {
	docsDir     string
	readmePath  string
	loc         *time.Location
	identities  []domain.Identity
	corrections Corrector
	logger      zerolog.Logger
}

func New(cfg Config, corrections Corrector, logger zerolog.Logger) *Renderer {
	if cfg.Location == nil {
		cfg.Location = Beijing
	}
	if corrections == nil {
		corrections = noCorrections{}
	}
	return &Renderer{
		docsDir:     cfg.DocsDir,
		readmePath:  cfg.ReadmePath,
		loc:         cfg.Location,
		identities:  cfg.Identities,
		corrections: corrections,
		logger:      logging.Named(logger, "render"),
	}
}

// DocumentPath is where the list of one streamer's replays uploaded by uploader lives.
func DocumentPath(docsDir string, streamer domain.Streamer, uploader string) string {
	return filepath.Join(docsDir, string(streamer), fmt.Sprintf("%s直播回放列表(from %s).md", streamer, uploader))
}

type gameRow struct {
	record domain.Record
	game   string
}

type gameGroup struct {
	game string
	rows []gameRow
}

// RenderIdentity writes one document per streamer found in the store and
// returns the written paths. overrides may be nil.
func (r *Renderer) RenderIdentity(store *domain.UserRecordStore, overrides domain.GameOverrides) ([]string, error) {
	var order []domain.Streamer
	byStreamer := make(map[domain.Streamer][]domain.Record)
	for _, rec := range store.Records {
		if _, ok := byStreamer[rec.Streamer]; !ok {
			order = append(order, rec.Streamer)
		}
		byStreamer[rec.Streamer] = append(byStreamer[rec.Streamer], rec)
	}

	paths := make([]string, 0, len(order))
	for _, streamer := range order {
		records := byStreamer[streamer]
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].PublishTime > records[j].PublishTime
		})

		content := r.document(streamer, store, records, r.groupByGame(records, overrides))
		path := DocumentPath(r.docsDir, streamer, store.Identity.DisplayName)
		if err := fsutil.WriteFile(path, []byte(content)); err != nil {
			return paths, fmt.Errorf("write document for %s: %w", streamer, err)
		}

		r.logger.Info().
			Str("streamer", string(streamer)).
			Str("uploader", store.Identity.DisplayName).
			Int("records", len(records)).
			Msg("rendered replay list")
		paths = append(paths, path)
	}

	return paths, nil
}

// groupByGame expects records newest first. Groups keep first-seen order and
// their rows come out oldest first.
func (r *Renderer) groupByGame(records []domain.Record, overrides domain.GameOverrides) []gameGroup {
	var groups []gameGroup
	index := make(map[string]int)

	for _, rec := range records {
		games := rec.Games
		if overrides != nil {
			if fixed := overrides.Games(rec.ID); len(fixed) > 0 {
				games = fixed
			}
		}
		for _, g := range games {
			game := r.corrections.Correct(g)
			i, ok := index[game]
			if !ok {
				i = len(groups)
				index[game] = i
				groups = append(groups, gameGroup{game: game})
			}
			groups[i].rows = append(groups[i].rows, gameRow{record: rec, game: game})
		}
	}

	for _, g := range groups {
		for i, j := 0, len(g.rows)-1; i < j; i, j = i+1, j-1 {
			g.rows[i], g.rows[j] = g.rows[j], g.rows[i]
		}
	}
	return groups
}

func (r *Renderer) document(streamer domain.Streamer, store *domain.UserRecordStore, records []domain.Record, groups []gameGroup) string {
	uploader := store.Identity.DisplayName
	latest := records[0]
	oldest := records[len(records)-1]

	var b strings.Builder
	fmt.Fprintf(&b, "# %s 直播回放 (from %s)\n\n", streamer, uploader)

	summary := table.NewWriter()
	summary.AppendHeader(table.Row{"主播", string(streamer)})
	summary.AppendRows([]table.Row{
		{"**上传者**", bold(uploader)},
		{"**数据更新时间**", bold(formatDate(store.Pointer.LastSyncTimestamp, r.loc))},
		{"**累积计入视频数量**", bold(fmt.Sprint(len(records)))},
		{"**最旧视频**", link(oldest.Title, oldest.ID)},
		{"**最新视频**", link(latest.Title, latest.ID)},
	})
	b.WriteString(summary.RenderMarkdown())
	b.WriteString("\n\n---\n")

	for _, g := range groups {
		fmt.Fprintf(&b, "\n## %s\n\n", g.game)
		b.WriteString(r.gameTable(g))
		b.WriteString("\n")
	}

	return b.String()
}

func (r *Renderer) gameTable(g gameGroup) string {
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"游戏名称", "直播日期", "时长", "集数", "标题", "aid"})
	for i, row := range g.rows {
		duration, err := FormatTime(row.record.DurationSeconds)
		if err != nil {
			duration = timePlaceholder
		}
		tw.AppendRow(table.Row{
			row.game,
			formatDate(row.record.LiveTime, r.loc),
			duration,
			fmt.Sprintf("Part %d", i+1),
			link(row.record.Title, row.record.ID),
			row.record.ID,
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignLeft},
		{Number: 3, Align: text.AlignCenter},
		{Number: 4, Align: text.AlignCenter},
		{Number: 6, Align: text.AlignCenter},
	})
	return tw.RenderMarkdown()
}

func bold(s string) string { return "**" + s + "**" }

func link(title string, aid int64) string {
	return fmt.Sprintf("[%s]("+videoURL+")", title, aid)
}
