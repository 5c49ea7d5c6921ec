package main

import (
	"context"
	"os"
	"strings"

	"golang.org/x/exp/slog"

	"tubescribe/config"
	"tubescribe/downloader"
	"tubescribe/model"
	"tubescribe/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("unable to load config", err)
		os.Exit(1)
	}
	logger := newLogger(cfg.LogLevel)

	channels, err := storage.ReadChannels(cfg.ChannelFile)
	if err != nil {
		logger.Error("unable to read channel list", err, slog.String("path", cfg.ChannelFile))
	}

	var tasks []model.DownloadTask
	for _, name := range channels {
		path := cfg.CachePath(name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			logger.Warn("cache file not found for channel", slog.String("channel", name), slog.String("path", path))
			continue
		}
		cache, err := storage.OpenCache(path)
		if err != nil {
			logger.Error("failed to open cache", err, slog.String("channel", name))
			continue
		}
		for _, rec := range cache.Records() {
			tasks = append(tasks, model.NewDownloadTask(rec, name))
		}
	}
	logger.Info("queueing downloads", slog.Int("count", len(tasks)))

	pool := downloader.NewPool(downloader.NewYTDLP(""), cfg.DownloadDirectory, cfg.WorkerCount, cfg.MaxRetries, logger)
	stats := pool.Run(context.Background(), tasks)

	logger.Info("all downloads completed", slog.Int("done", stats.Done), slog.Int("abandoned", stats.Abandoned))
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
