package model

import "github.com/google/uuid"

// DownloadTask is one queued download unit corresponding to one cached
// video. Tasks are ephemeral: produced at queue-fill time and consumed
// exactly once by a worker, whether it succeeds or exhausts its retries.
type DownloadTask struct {
	ID          uuid.UUID
	VideoID     string
	URL         string
	ChannelName string
}

// NewDownloadTask builds a task for a cached record.
func NewDownloadTask(rec VideoRecord, channelName string) DownloadTask {
	return DownloadTask{
		ID:          uuid.New(),
		VideoID:     rec.ID,
		URL:         rec.URL,
		ChannelName: channelName,
	}
}
