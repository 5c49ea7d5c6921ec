package fetcher

import (
	"fmt"
	"time"

	"google.golang.org/api/youtube/v3"
)

const pageSize = 50

// Youtube implements ChannelResolver and PlaylistReader on the YouTube Data
// API v3.
type Youtube struct {
	client *youtube.Service
}

func NewYoutube(client *youtube.Service) *Youtube {
	return &Youtube{client: client}
}

func (y *Youtube) UploadsPlaylistID(name string) (string, error) {
	search, err := y.client.Search.
		List([]string{"id"}).
		Q(name).
		Type("channel").
		MaxResults(1).
		Do()
	if err != nil {
		return "", fmt.Errorf("search channel %q: %w", name, err)
	}
	if len(search.Items) == 0 {
		return "", fmt.Errorf("channel %q not found", name)
	}
	channelID := search.Items[0].Id.ChannelId

	channels, err := y.client.Channels.
		List([]string{"contentDetails"}).
		Id(channelID).
		Do()
	if err != nil {
		return "", fmt.Errorf("fetch channel %s: %w", channelID, err)
	}
	if len(channels.Items) == 0 {
		return "", fmt.Errorf("channel %s has no content details", channelID)
	}

	return channels.Items[0].ContentDetails.RelatedPlaylists.Uploads, nil
}

func (y *Youtube) UploadsPage(playlistID, pageToken string) ([]Upload, string, error) {
	response, err := y.client.PlaylistItems.
		List([]string{"snippet"}).
		PlaylistId(playlistID).
		MaxResults(pageSize).
		PageToken(pageToken).
		Do()
	if err != nil {
		return nil, "", fmt.Errorf("fetch playlist page: %w", err)
	}

	uploads := make([]Upload, 0, len(response.Items))
	for _, item := range response.Items {
		publishedAt, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
		if err != nil {
			return nil, "", fmt.Errorf("parse publish time %q: %w", item.Snippet.PublishedAt, err)
		}
		uploads = append(uploads, Upload{
			VideoID:     item.Snippet.ResourceId.VideoId,
			Title:       item.Snippet.Title,
			PublishedAt: publishedAt,
		})
	}

	return uploads, response.NextPageToken, nil
}
