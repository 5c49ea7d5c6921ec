package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const timeLayout = "2006-01-02T15:04:05Z"

// epochStart is the cursor for a channel that has never been scanned.
var epochStart = time.Unix(0, 0).UTC()

// Cursors maps a channel name to the publish time of the most recent video
// already processed for it.
type Cursors map[string]time.Time

// Get returns the cursor for a channel, or the epoch start if unseen.
func (c Cursors) Get(name string) time.Time {
	if t, ok := c[name]; ok {
		return t
	}
	return epochStart
}

// Set advances the cursor for a channel. Cursors never move backwards.
func (c Cursors) Set(name string, t time.Time) {
	if t.After(c.Get(name)) {
		c[name] = t
	}
}

// CursorStore persists the per-channel cursors in a text file, one
// "name,timestamp" line per channel.
type CursorStore struct {
	path string
}

func NewCursorStore(path string) *CursorStore {
	return &CursorStore{path: path}
}

// Load reads the whole cursor mapping. A missing file yields an empty
// mapping without error. On any other failure it returns an empty mapping
// together with the error, so a run can continue from scratch.
func (s *CursorStore) Load() (Cursors, error) {
	cursors := Cursors{}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return cursors, nil
		}
		return cursors, fmt.Errorf("read cursor store: %w", err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name, stamp, found := strings.Cut(line, ",")
		if !found {
			return Cursors{}, fmt.Errorf("malformed cursor line %q", line)
		}
		t, err := time.Parse(timeLayout, strings.TrimSpace(stamp))
		if err != nil {
			return Cursors{}, fmt.Errorf("parse cursor for %q: %w", name, err)
		}
		cursors[strings.TrimSpace(name)] = t
	}

	return cursors, nil
}

// Save overwrites the persisted store atomically. It is called once per run,
// after all channels have completed.
func (s *CursorStore) Save(cursors Cursors) error {
	names := make([]string, 0, len(cursors))
	for name := range cursors {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "%s,%s\n", name, cursors[name].UTC().Format(timeLayout))
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cursor directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".cursors-*")
	if err != nil {
		return fmt.Errorf("create temp cursor file: %w", err)
	}
	if _, err := tmp.WriteString(b.String()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write cursor store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close cursor store: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace cursor store: %w", err)
	}

	return nil
}
