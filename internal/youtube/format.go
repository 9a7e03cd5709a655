package youtube

import (
	"fmt"
	"regexp"
	"strconv"
)

const watchURLPrefix = "https://www.youtube.com/watch?v="

var durationPattern = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// FormatDuration converts an ISO 8601 duration such as PT4M13S to "4:13", or to
// "H:MM:SS" when the hour component is non-zero. Unparseable input yields "0:00".
func FormatDuration(code string) string {
	match := durationPattern.FindStringSubmatch(code)
	if match == nil {
		return "0:00"
	}

	hours := atoiOrZero(match[1])
	minutes := atoiOrZero(match[2])
	seconds := atoiOrZero(match[3])

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// FormatViewCount renders 1234567 as "1.2M", 4200 as "4.2K" and 850 as "850".
func FormatViewCount(count int64) string {
	switch {
	case count >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(count)/1_000_000)
	case count >= 1_000:
		return fmt.Sprintf("%.1fK", float64(count)/1_000)
	default:
		return strconv.FormatInt(count, 10)
	}
}

// BestThumbnail picks the highest resolution variant present.
func BestThumbnail(t *Thumbnails) string {
	if t == nil {
		return ""
	}
	for _, candidate := range []*Thumbnail{t.Maxres, t.Standard, t.High, t.Medium, t.Default} {
		if candidate != nil && candidate.URL != "" {
			return candidate.URL
		}
	}
	return ""
}

func WatchURL(id string) string {
	return watchURLPrefix + id
}

func atoiOrZero(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
