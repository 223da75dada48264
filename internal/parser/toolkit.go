package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"replay_fetcher/internal/domain"
)

// StreamerPrefix maps a title marker to the streamer it announces.
type StreamerPrefix struct {
	Prefix   string
	Streamer domain.Streamer
}

// Toolkit holds the injected tables shared by every ruleset.
type Toolkit struct {
	prefixes []StreamerPrefix
	location *time.Location
}

// NewToolkit folds the prefixes once. Live dates are interpreted in loc.
func NewToolkit(prefixes []StreamerPrefix, loc *time.Location) *Toolkit {
	if loc == nil {
		loc = time.UTC
	}
	t := &Toolkit{location: loc}
	for _, p := range prefixes {
		t.prefixes = append(t.prefixes, StreamerPrefix{
			Prefix:   fold(p.Prefix),
			Streamer: p.Streamer,
		})
	}
	return t
}

// fold builds a fresh Caser per call; Casers are not safe for concurrent use.
func fold(s string) string {
	return cases.Fold().String(s)
}

func (t *Toolkit) Location() *time.Location { return t.location }

// ExtractStreamer returns the streamer of the first prefix found anywhere in
// the title, ignoring case.
func (t *Toolkit) ExtractStreamer(title string) (domain.Streamer, bool) {
	folded := fold(title)
	for _, p := range t.prefixes {
		if strings.Contains(folded, p.Prefix) {
			return p.Streamer, true
		}
	}
	return "", false
}

var (
	cnDatePattern  = regexp.MustCompile(`(\d{2,4})年(\d{1,2})月(\d{1,2})日`)
	isoDatePattern = regexp.MustCompile(`(\d{2,4})-(\d{1,2})-(\d{1,2})`)
)

// ExtractLiveDate reads the stream date from the title, preferring the
// Chinese form over the dashed one, and falls back to fallback (epoch ms).
func (t *Toolkit) ExtractLiveDate(title string, fallback int64) int64 {
	for _, re := range []*regexp.Regexp{cnDatePattern, isoDatePattern} {
		m := re.FindStringSubmatch(title)
		if m == nil {
			continue
		}
		year := m[1]
		if len(year) == 2 {
			year = "20" + year
		}
		y, _ := strconv.Atoi(year)
		mo, _ := strconv.Atoi(m[2])
		d, _ := strconv.Atoi(m[3])
		return time.Date(y, time.Month(mo), d, 0, 0, 0, 0, t.location).UnixMilli()
	}
	return fallback
}

var (
	fullWidthParens = regexp.MustCompile(`（[^）]*）`)
	asciiParens     = regexp.MustCompile(`\([^)]*\)`)
	lenticular      = regexp.MustCompile(`【[^】]*】`)
	brokenSuffix    = regexp.MustCompile(`[—-]+(残缺|已爆炸)$`)
	brokenPrefix    = regexp.MustCompile(`^残缺[—-]+`)
	recordingNote   = regexp.MustCompile(`(初体验|【?直播录像】?|直播实况|实况)`)
)

// CleanGameName strips annotations uploaders add around game names.
func CleanGameName(name string) string {
	name = fullWidthParens.ReplaceAllString(name, "")
	name = asciiParens.ReplaceAllString(name, "")
	name = lenticular.ReplaceAllString(name, "")
	name = brokenSuffix.ReplaceAllString(name, "")
	name = brokenPrefix.ReplaceAllString(name, "")
	if loc := recordingNote.FindStringIndex(name); loc != nil {
		name = name[:loc[0]] + name[loc[1]:]
	}
	return strings.TrimSpace(name)
}

// splitGames splits raw on sep, cleans every part and drops empty ones.
func splitGames(raw string, sep *regexp.Regexp) []string {
	var games []string
	for _, part := range sep.Split(raw, -1) {
		if g := CleanGameName(part); g != "" {
			games = append(games, g)
		}
	}
	return games
}
