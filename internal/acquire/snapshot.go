package acquire

import (
	"context"
	"os"
	"strings"
	"time"
)

// Snapshot captures the set of filenames present in dir. It is taken
// immediately before triggering a browser download and later diffed against
// the directory to detect the new artifact.
func Snapshot(dir string) (map[string]struct{}, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	names := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		names[e.Name()] = struct{}{}
	}
	return names, nil
}

// Poller detects a completed browser download by repeatedly diffing the
// download directory against a prior snapshot. There is no DOM or filesystem
// push signal for a finished download, so a bounded poll is the only option.
type Poller struct {
	// Interval is how often the directory is re-listed
	Interval time.Duration

	// Timeout bounds the overall wait
	Timeout time.Duration
}

// AwaitDownload waits until a filename absent from before and ending in .pdf
// appears in dir, and returns it. In-progress Chrome downloads carry a
// .crdownload suffix and are ignored until renamed. Returns ErrDownloadTimeout
// once Timeout elapses without a new PDF.
func (p Poller) AwaitDownload(ctx context.Context, dir string, before map[string]struct{}) (string, error) {
	interval := p.Interval
	if interval <= 0 {
		interval = time.Second
	}

	deadline := time.Now().Add(p.Timeout)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		entries, err := os.ReadDir(dir)
		if err == nil {
			for _, e := range entries {
				name := e.Name()
				if _, existed := before[name]; existed {
					continue
				}
				if strings.HasSuffix(strings.ToLower(name), ".pdf") {
					return name, nil
				}
			}
		}

		if time.Now().After(deadline) {
			return "", ErrDownloadTimeout
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}
	}
}
