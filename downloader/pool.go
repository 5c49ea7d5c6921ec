package downloader

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/exp/slog"

	"tubescribe/model"
)

const retryDelay = 5 * time.Second

// Stats tallies the terminal states of a drained queue.
type Stats struct {
	Done      int
	Abandoned int
}

// Pool drains a queue of download tasks with a fixed number of workers.
// Each task gets a bounded number of attempts separated by a fixed delay;
// a task that exhausts them is abandoned and never revisited.
type Pool struct {
	dl          Downloader
	root        string
	workers     int
	maxAttempts int
	delay       time.Duration
	logger      *slog.Logger
}

func NewPool(dl Downloader, root string, workers, maxAttempts int, logger *slog.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Pool{
		dl:          dl,
		root:        root,
		workers:     workers,
		maxAttempts: maxAttempts,
		delay:       retryDelay,
		logger:      logger,
	}
}

// Run feeds all tasks to the workers and blocks until every task has
// reached a terminal state. Closing the queue after the last send is the
// stop signal; the WaitGroup is the drain barrier, so no task can be lost
// between enqueue and shutdown.
func (p *Pool) Run(ctx context.Context, tasks []model.DownloadTask) Stats {
	queue := make(chan model.DownloadTask)

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		stats Stats
	)
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for task := range queue {
				ok := p.process(ctx, worker, task)
				mu.Lock()
				if ok {
					stats.Done++
				} else {
					stats.Abandoned++
				}
				mu.Unlock()
			}
		}(i)
	}

	for _, task := range tasks {
		queue <- task
	}
	close(queue)
	wg.Wait()

	return stats
}

func (p *Pool) process(ctx context.Context, worker int, task model.DownloadTask) bool {
	dest := filepath.Join(p.root, task.ChannelName, task.VideoID+".%(ext)s")
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		p.logger.Error("failed to create download directory", err, slog.String("task", task.ID.String()), slog.String("channel", task.ChannelName))
		return false
	}

	attempt := 0
	backoff := retry.WithMaxRetries(uint64(p.maxAttempts-1), retry.NewConstant(p.delay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if err := p.dl.Download(ctx, task.URL, dest); err != nil {
			p.logger.Warn("download attempt failed",
				slog.String("task", task.ID.String()),
				slog.String("url", task.URL),
				slog.Int("worker", worker),
				slog.Int("attempt", attempt))
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		p.logger.Error("abandoning download", err,
			slog.String("task", task.ID.String()),
			slog.String("url", task.URL),
			slog.Int("attempts", attempt))
		return false
	}

	p.logger.Info("downloaded video",
		slog.String("task", task.ID.String()),
		slog.String("url", task.URL),
		slog.Int("worker", worker))
	return true
}
