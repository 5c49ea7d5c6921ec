package fetcher

// ChannelResolver turns a channel name into the id of its uploads playlist.
// Resolution is a single best-effort lookup; a failure skips the channel for
// the current run.
type ChannelResolver interface {
	UploadsPlaylistID(name string) (string, error)
}
