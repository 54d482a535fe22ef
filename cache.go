package holdings

import (
	"log"
	"os"
	"path/filepath"
	"time"
)

// DefaultMaxAge is the freshness window applied when the caller does not
// supply one. The upstream feeds are rate-limited; a day-old snapshot is
// good enough for a diversification view.
const DefaultMaxAge = 24 * time.Hour

// SnapshotCache holds the single most recent snapshot. It is owned by the
// loader and injected, so tests run against an in-memory fake.
type SnapshotCache interface {
	// Get returns the cached snapshot if it is younger than maxAge.
	// Corrupted or unreadable state reports absence, never an error: a
	// broken cache must not block fetching fresh data.
	Get(maxAge time.Duration) (*PortfolioSnapshot, bool)
	// Put overwrites the single slot with the snapshot, stamped now.
	Put(s *PortfolioSnapshot) error
}

// FileCache persists the snapshot as one JSON file.
type FileCache struct {
	path string
}

func NewFileCache(path string) *FileCache { return &FileCache{path: path} }

func (c *FileCache) Get(maxAge time.Duration) (*PortfolioSnapshot, bool) {
	content, err := os.ReadFile(c.path)
	if err != nil {
		return nil, false
	}
	cachedAt, snapshot, err := decodeSnapshotEntry(content)
	if err != nil {
		log.Printf("warning: discarding unreadable snapshot cache %q: %v", c.path, err)
		return nil, false
	}
	if maxAge <= 0 || time.Since(cachedAt) >= maxAge {
		return nil, false
	}
	return snapshot, true
}

// Put writes the entry to a temporary file in the same directory and renames
// it over the slot, so a crash mid-write can never leave a half-written
// entry where Get would find it.
func (c *FileCache) Put(s *PortfolioSnapshot) error {
	content, err := encodeSnapshotEntry(time.Now(), s)
	if err != nil {
		return err
	}
	dir := filepath.Dir(c.path)
	tmp, err := os.CreateTemp(dir, ".snapshot-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}

// MemCache is an in-process single-slot cache. The tool itself uses the
// file cache; this one serves tests and embedding callers that manage their
// own persistence.
type MemCache struct {
	cachedAt time.Time
	snapshot *PortfolioSnapshot
}

func (c *MemCache) Get(maxAge time.Duration) (*PortfolioSnapshot, bool) {
	if c.snapshot == nil || maxAge <= 0 || time.Since(c.cachedAt) >= maxAge {
		return nil, false
	}
	return c.snapshot, true
}

func (c *MemCache) Put(s *PortfolioSnapshot) error {
	c.cachedAt = time.Now()
	c.snapshot = s
	return nil
}
