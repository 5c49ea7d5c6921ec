package main

import (
	"context"
	"errors"
	"os"
	"strings"

	"golang.org/x/exp/slog"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"tubescribe/config"
	"tubescribe/fetcher"
	"tubescribe/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("unable to load config", err)
		os.Exit(1)
	}
	logger := newLogger(cfg.LogLevel)

	if cfg.YouTubeAPIKey == "" {
		logger.Error("missing configuration", errors.New("YOUTUBE_API_KEY is not set"))
		os.Exit(1)
	}

	ctx := context.Background()
	ytClient, err := youtube.NewService(ctx, option.WithAPIKey(cfg.YouTubeAPIKey))
	if err != nil {
		logger.Error("unable to create youtube service", err)
		os.Exit(1)
	}
	yt := fetcher.NewYoutube(ytClient)

	enricher := fetcher.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.PromptFile, cfg.TranscriptLanguage)

	channels, err := storage.ReadChannels(cfg.ChannelFile)
	if err != nil {
		logger.Error("unable to read channel list", err, slog.String("path", cfg.ChannelFile))
	}

	cursors := storage.NewCursorStore(cfg.CursorFile)

	fetch := fetcher.NewFetch(channels, cursors, cfg.CachePath, yt, yt, enricher, cfg.MaxVideosPerChannel, logger)
	fetch.Run()

	logger.Info("scan completed")
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	opts := slog.HandlerOptions{Level: lvl}
	return slog.New(opts.NewTextHandler(os.Stderr))
}
