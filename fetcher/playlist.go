package fetcher

import "time"

// Upload is one item from a channel's uploads playlist, most recent first.
type Upload struct {
	VideoID     string
	Title       string
	PublishedAt time.Time
}

// PlaylistReader pages through an uploads playlist using an opaque
// continuation token. An empty next token means the listing is exhausted.
type PlaylistReader interface {
	UploadsPage(playlistID, pageToken string) ([]Upload, string, error)
}
