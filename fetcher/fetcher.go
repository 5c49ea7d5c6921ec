package fetcher

import (
	"fmt"

	"golang.org/x/exp/slog"

	"tubescribe/model"
	"tubescribe/storage"
)

// Fetcher runs the discovery and enrichment pipeline: it scans each tracked
// channel for videos newer than its cursor, resolves a transcript and
// summary for every new video, commits each record to the channel's cache
// before moving on, and saves the advanced cursors once at the end of the
// run.
type Fetcher struct {
	channels  []string
	cursors   *storage.CursorStore
	cachePath func(channel string) string
	resolver  ChannelResolver
	playlist  PlaylistReader
	enricher  Enricher
	maxVideos int
	logger    *slog.Logger
}

func NewFetch(channels []string, cursors *storage.CursorStore, cachePath func(string) string, resolver ChannelResolver, playlist PlaylistReader, enricher Enricher, maxVideos int, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		channels:  channels,
		cursors:   cursors,
		cachePath: cachePath,
		resolver:  resolver,
		playlist:  playlist,
		enricher:  enricher,
		maxVideos: maxVideos,
		logger:    logger,
	}
}

// Run processes all channels sequentially and persists the cursor store.
// Per-channel failures are logged and skipped; they never abort the run.
func (f *Fetcher) Run() {
	cursors, err := f.cursors.Load()
	if err != nil {
		f.logger.Error("unable to load cursors, starting empty", err)
	}

	for _, name := range f.channels {
		f.logger.Info("processing channel", slog.String("channel", name))
		f.processChannel(name, cursors)
	}

	if err := f.cursors.Save(cursors); err != nil {
		f.logger.Error("failed to save cursors", err)
		return
	}
	f.logger.Info("run completed", slog.Int("channels", len(f.channels)))
}

func (f *Fetcher) processChannel(name string, cursors storage.Cursors) {
	playlistID, err := f.resolver.UploadsPlaylistID(name)
	if err != nil {
		f.logger.Error("failed to resolve channel", err, slog.String("channel", name))
		return
	}

	cache, err := storage.OpenCache(f.cachePath(name))
	if err != nil {
		f.logger.Error("failed to open cache", err, slog.String("channel", name))
		return
	}

	cursor := cursors.Get(name)
	latest := cursor
	count := 0
	token := ""

scan:
	for {
		uploads, next, err := f.playlist.UploadsPage(playlistID, token)
		if err != nil {
			// Transient listing error: keep what was already
			// committed, discover nothing beyond it this run.
			f.logger.Error("failed to fetch playlist page", err, slog.String("channel", name))
			break
		}
		for _, upload := range uploads {
			if !upload.PublishedAt.After(cursor) {
				// The listing is newest-first, so the first
				// at-or-before item proves nothing further
				// qualifies.
				break scan
			}
			if count >= f.maxVideos {
				f.logger.Info("reached video cap", slog.String("channel", name), slog.Int("cap", f.maxVideos))
				break scan
			}
			rec := f.resolve(cache, upload)
			if err := cache.Append(rec); err != nil {
				f.logger.Error("failed to commit record", err, slog.String("channel", name), slog.String("video", rec.ID))
				break scan
			}
			if upload.PublishedAt.After(latest) {
				latest = upload.PublishedAt
			}
			count++
			f.logger.Info("processed video", slog.String("channel", name), slog.String("video", rec.ID), slog.Int("count", count))
		}
		if next == "" {
			break
		}
		token = next
	}

	if count == 0 {
		f.logger.Info("no new videos", slog.String("channel", name))
		return
	}
	cursors.Set(name, latest)
	f.logger.Info("processed new videos", slog.String("channel", name), slog.Int("count", count))
}

// resolve produces the record for an upload, reusing the cached transcript
// when one exists and calling the enrichment capability otherwise. A failed
// enrichment degrades to an error-describing record that is committed like
// any other.
func (f *Fetcher) resolve(cache *storage.Cache, upload Upload) model.VideoRecord {
	rec := model.VideoRecord{
		ID:          upload.VideoID,
		Title:       upload.Title,
		URL:         model.WatchURL(upload.VideoID),
		PublishedAt: upload.PublishedAt,
	}

	if cached, ok := cache.Get(upload.VideoID); ok && cached.Enriched() {
		f.logger.Info("using cached transcript", slog.String("video", upload.VideoID))
		rec.Transcript = cached.Transcript
		rec.Summary = cached.Summary
		return rec
	}

	f.logger.Info("generating transcript", slog.String("video", upload.VideoID))
	raw, err := f.enricher.Generate(rec.URL)
	if err != nil {
		f.logger.Error("failed to generate transcript", err, slog.String("video", upload.VideoID))
		rec.Transcript = fmt.Sprintf("Error generating transcript: %s", err)
		rec.Summary = fmt.Sprintf("Error generating summary: %s", err)
		return rec
	}

	rec.Transcript, rec.Summary = parseTranscript(raw)
	if rec.Summary == noSummary {
		f.logger.Warn("no summary found", slog.String("video", upload.VideoID))
	}

	return rec
}
