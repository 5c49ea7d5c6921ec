// Package config handles application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds the configuration shared by both pipelines. The scan
// pipeline additionally requires YouTubeAPIKey to be set.
type Config struct {
	YouTubeAPIKey       string
	OpenAIAPIKey        string
	OpenAIModel         string
	PromptFile          string
	ChannelFile         string
	CursorFile          string
	OutputFile          string
	OutputDirectory     string
	DownloadDirectory   string
	TranscriptLanguage  string
	MaxVideosPerChannel int
	WorkerCount         int
	MaxRetries          int
	LogLevel            string
}

// Load reads configuration from environment variables, applying defaults.
func Load() (*Config, error) {
	maxVideos, err := intParam("MAX_VIDEOS_PER_CHANNEL", 50)
	if err != nil {
		return nil, err
	}
	workers, err := intParam("WORKER_COUNT", 3)
	if err != nil {
		return nil, err
	}
	retries, err := intParam("MAX_RETRIES", 10)
	if err != nil {
		return nil, err
	}

	return &Config{
		YouTubeAPIKey:       os.Getenv("YOUTUBE_API_KEY"),
		OpenAIAPIKey:        os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:         param("OPENAI_MODEL", "gpt-4"),
		PromptFile:          param("PROMPT_FILE", "prompt.txt"),
		ChannelFile:         param("CHANNEL_FILE", "youtubeChannels.txt"),
		CursorFile:          param("CURSOR_FILE", "channelData.txt"),
		OutputFile:          param("OUTPUT_FILE", "output.csv"),
		OutputDirectory:     param("OUTPUT_DIRECTORY", "./output"),
		DownloadDirectory:   param("DOWNLOAD_DIRECTORY", "./downloaded_videos"),
		TranscriptLanguage:  param("TRANSCRIPT_LANGUAGE", "en-US"),
		MaxVideosPerChannel: maxVideos,
		WorkerCount:         workers,
		MaxRetries:          retries,
		LogLevel:            param("LOG_LEVEL", "info"),
	}, nil
}

// CachePath returns the transcript cache file for a channel.
func (c *Config) CachePath(channel string) string {
	return filepath.Join(c.OutputDirectory, channel+"_"+c.OutputFile)
}

func param(key, def string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return def
}

func intParam(key string, def int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return def, nil
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return val, nil
}
