package model

import (
	"strings"
	"time"
)

const watchURLPrefix = "https://www.youtube.com/watch?v="

// VideoRecord is one persisted cache entry for a video. A record with an
// empty Transcript has not been enriched yet; once the transcript is
// non-empty the record is reused verbatim on rediscovery.
type VideoRecord struct {
	ID          string
	Title       string
	URL         string
	PublishedAt time.Time
	Transcript  string
	Summary     string
}

// Enriched reports whether the record already carries a transcript.
func (r VideoRecord) Enriched() bool {
	return r.Transcript != ""
}

// WatchURL builds the canonical watch URL for a video id.
func WatchURL(videoID string) string {
	return watchURLPrefix + videoID
}

// VideoIDFromURL extracts the video id from a watch URL. The id is parsed
// once, at record creation, and carried as a field from then on.
func VideoIDFromURL(url string) string {
	if i := strings.LastIndex(url, "v="); i >= 0 {
		return url[i+2:]
	}
	return url
}
