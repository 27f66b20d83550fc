// Package catalog keeps the most recent pipeline result in memory for a
// short time so that request handlers do not hit the spreadsheet every time.
package catalog

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/padraicbc/racecal/models"
)

// DefaultTTL is how long a fetched race list is served before refetching.
const DefaultTTL = 60 * time.Second

// SourceFunc produces a fresh race list, typically one pipeline run.
type SourceFunc func(ctx context.Context) ([]models.Race, error)

// Catalog caches the output of a SourceFunc. Cached slices are shared
// between callers and must be treated as read-only.
type Catalog struct {
	source SourceFunc
	ttl    time.Duration
	now    func() time.Time
	log    *zap.Logger

	group singleflight.Group

	mu        sync.RWMutex
	races     []models.Race
	fetchedAt time.Time
}

// New creates a Catalog. A non-positive ttl falls back to DefaultTTL.
func New(source SourceFunc, ttl time.Duration, logger *zap.Logger) *Catalog {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{source: source, ttl: ttl, now: time.Now, log: logger}
}

// Races returns the cached list while it is fresh and reloads it otherwise.
// Concurrent reloads are collapsed into one source call. Failed reloads are
// not cached.
func (c *Catalog) Races(ctx context.Context) ([]models.Race, error) {
	c.mu.RLock()
	races, fetchedAt := c.races, c.fetchedAt
	c.mu.RUnlock()

	if races != nil && c.now().Sub(fetchedAt) < c.ttl {
		return races, nil
	}
	return c.load(ctx)
}

// Refresh reloads the list regardless of its age.
func (c *Catalog) Refresh(ctx context.Context) ([]models.Race, error) {
	return c.load(ctx)
}

// FetchedAt reports when the cached list was loaded; zero if never.
func (c *Catalog) FetchedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fetchedAt
}

func (c *Catalog) load(ctx context.Context) ([]models.Race, error) {
	v, err, shared := c.group.Do("races", func() (interface{}, error) {
		// Detached so one caller giving up does not fail the others.
		races, err := c.source(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		if races == nil {
			races = []models.Race{}
		}

		c.mu.Lock()
		c.races, c.fetchedAt = races, c.now()
		c.mu.Unlock()

		c.log.Info("race catalog loaded", zap.Int("races", len(races)))
		return races, nil
	})
	if err != nil {
		c.log.Error("race catalog load failed", zap.Error(err), zap.Bool("shared", shared))
		return nil, err
	}
	return v.([]models.Race), nil
}
