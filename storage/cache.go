package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tubescribe/model"
)

var cacheHeader = []string{"title", "url", "publishedAt", "transcript", "summary"}

// Cache is the per-channel transcript cache, backed by a CSV file. Records
// are keyed by the video id embedded in their URL. Appends go straight to
// disk, one record at a time, so a crash loses at most the video currently
// being processed.
type Cache struct {
	path    string
	byID    map[string]model.VideoRecord
	ordered []string
}

// OpenCache reads an existing cache file into memory. A missing file yields
// an empty cache. When the file holds multiple rows for one id, the last
// row wins.
func OpenCache(path string) (*Cache, error) {
	c := &Cache{
		path: path,
		byID: map[string]model.VideoRecord{},
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("open cache: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read cache: %w", err)
	}

	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) != len(cacheHeader) {
			return nil, fmt.Errorf("cache row %d has %d fields", i, len(row))
		}
		rec := model.VideoRecord{
			ID:         model.VideoIDFromURL(row[1]),
			Title:      row[0],
			URL:        row[1],
			Transcript: row[3],
			Summary:    row[4],
		}
		if t, err := time.Parse(timeLayout, row[2]); err == nil {
			rec.PublishedAt = t
		}
		c.put(rec)
	}

	return c, nil
}

// Get looks a record up by video id.
func (c *Cache) Get(videoID string) (model.VideoRecord, bool) {
	rec, ok := c.byID[videoID]
	return rec, ok
}

// Records returns all cached records, one per video id, in first-seen order.
func (c *Cache) Records() []model.VideoRecord {
	recs := make([]model.VideoRecord, 0, len(c.ordered))
	for _, id := range c.ordered {
		recs = append(recs, c.byID[id])
	}
	return recs
}

// Len returns the number of distinct videos in the cache.
func (c *Cache) Len() int {
	return len(c.byID)
}

// Append commits a record to the cache file before returning. The file is
// opened, written, and closed per record so the row is durable before the
// next video is touched.
func (c *Cache) Append(rec model.VideoRecord) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}

	f, err := os.OpenFile(c.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open cache for append: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat cache: %w", err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(cacheHeader); err != nil {
			return fmt.Errorf("write cache header: %w", err)
		}
	}
	row := []string{
		rec.Title,
		rec.URL,
		rec.PublishedAt.UTC().Format(timeLayout),
		rec.Transcript,
		rec.Summary,
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("write cache row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush cache row: %w", err)
	}

	c.put(rec)

	return nil
}

func (c *Cache) put(rec model.VideoRecord) {
	if _, ok := c.byID[rec.ID]; !ok {
		c.ordered = append(c.ordered, rec.ID)
	}
	c.byID[rec.ID] = rec
}
