package downloader

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Downloader fetches a video to a destination path.
type Downloader interface {
	Download(ctx context.Context, url, dest string) error
}

// YTDLP shells out to yt-dlp. dest may carry the yt-dlp %(ext)s output
// template.
type YTDLP struct {
	bin string
}

func NewYTDLP(bin string) *YTDLP {
	if bin == "" {
		bin = "yt-dlp"
	}
	return &YTDLP{bin: bin}
}

func (y *YTDLP) Download(ctx context.Context, url, dest string) error {
	cmd := exec.CommandContext(ctx, y.bin,
		"-f", "best",
		"-o", dest,
		"--quiet",
		"--no-warnings",
		url,
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg == "" {
			return fmt.Errorf("yt-dlp: %w", err)
		}
		return fmt.Errorf("yt-dlp: %w: %s", err, msg)
	}
	return nil
}
