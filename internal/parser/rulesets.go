package parser

import (
	"regexp"

	"replay_fetcher/internal/domain"
)

// QuinStreamer is the streamer every "quin" title belongs to.
const QuinStreamer domain.Streamer = "Mr.Quin"

var (
	bookTitle  = regexp.MustCompile(`《([^》]+)》`)
	datedTitle = regexp.MustCompile(`(?i)【.*?录播】[\s\p{Zs}]*\d{2,4}-\d{1,2}-\d{1,2}[\s\p{Zs}]+(.+)`)
	quinTagged = regexp.MustCompile(`(【Quin】|【Mr.Quin】)(.*)(【?直播录像|直播实况|实况)`)
	quinLoose  = regexp.MustCompile(`(【Quin】|【Mr.Quin】|【Mr.Quin X 鱼炒剩饭】)(.*)`)
	plusSep    = regexp.MustCompile(`\+`)
	plusAmpSep = regexp.MustCompile(`[+&]`)
)

// Bracketed handles titles that name every game in 《》 after a streamer marker.
func Bracketed(tk *Toolkit) []Strategy {
	return []Strategy{func(u domain.Upload) (domain.Record, bool) {
		streamer, ok := tk.ExtractStreamer(u.Title)
		if !ok {
			return domain.Record{}, false
		}

		var games []string
		for _, m := range bookTitle.FindAllStringSubmatch(u.Title, -1) {
			games = append(games, m[1])
		}
		if len(games) == 0 {
			return domain.Record{}, false
		}

		return classify(u, tk.ExtractLiveDate(u.Title, u.PublishTime), games, streamer), true
	}}
}

// Dated handles "【xx录播】 yyyy-mm-dd game+game" titles.
func Dated(tk *Toolkit) []Strategy {
	return []Strategy{func(u domain.Upload) (domain.Record, bool) {
		streamer, ok := tk.ExtractStreamer(u.Title)
		if !ok {
			return domain.Record{}, false
		}

		m := datedTitle.FindStringSubmatch(u.Title)
		if m == nil || m[1] == "" {
			return domain.Record{}, false
		}

		games := splitGames(m[1], plusSep)
		if len(games) == 0 {
			return domain.Record{}, false
		}

		return classify(u, tk.ExtractLiveDate(u.Title, u.PublishTime), games, streamer), true
	}}
}

// Quin handles the streamer's own uploads. The tagged form that ends in a
// recording note is tried before the loose form.
func Quin(_ *Toolkit) []Strategy {
	return []Strategy{
		quinStrategy(quinTagged),
		quinStrategy(quinLoose),
	}
}

func quinStrategy(re *regexp.Regexp) Strategy {
	return func(u domain.Upload) (domain.Record, bool) {
		m := re.FindStringSubmatch(u.Title)
		if m == nil || m[2] == "" {
			return domain.Record{}, false
		}

		games := splitGames(m[2], plusAmpSep)
		if len(games) == 0 {
			return domain.Record{}, false
		}

		return classify(u, u.PublishTime, games, QuinStreamer), true
	}
}
