package render

import (
	"errors"
	"fmt"
	"time"
)

const (
	// maxTimestampMs is the largest magnitude a timestamp may have and still be rendered.
	maxTimestampMs = 8_640_000_000_000_000

	datePlaceholder = "----/--/--"
	timePlaceholder = "--:--:--"
)

// Beijing is the zone documents are rendered in.
var Beijing = time.FixedZone("UTC+8", 8*60*60)

var ErrNegativeDuration = errors.New("duration must be non-negative")

// FormatDate renders an epoch-ms timestamp as yyyy-mm-dd in UTC+8.
func FormatDate(ms int64) string {
	return formatDate(ms, Beijing)
}

func formatDate(ms int64, loc *time.Location) string {
	if ms > maxTimestampMs || ms < -maxTimestampMs {
		return datePlaceholder
	}
	t := time.UnixMilli(ms).In(loc)
	if t.Year() < 0 || t.Year() > 9999 {
		return datePlaceholder
	}
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// FormatTime renders a duration in seconds as hh:mm:ss. Hours are not
// wrapped at 24.
func FormatTime(seconds int64) (string, error) {
	if seconds < 0 {
		return "", fmt.Errorf("format %d seconds: %w", seconds, ErrNegativeDuration)
	}
	h := seconds / 3600
	m := seconds % 3600 / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s), nil
}
