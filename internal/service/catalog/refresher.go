// internal/service/catalog/refresher.go
package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"almatiq-service/internal/client/square"
	domain "almatiq-service/internal/domain/catalog"

	"go.uber.org/zap"
)

// fallbackServices keeps booking creation possible when the catalog is
// unreachable. These entries have no ids, so they cannot resolve prices
// during aggregation.
var fallbackServices = []string{
	"Combined Recovery",
	"VR Meditation Immersion",
	"Focused Recovery",
	"Full / Multi-Area Recovery",
	"AI Couples Recovery Experience",
}

// PlatformSource is the slice of the platform client the refresher uses.
type PlatformSource interface {
	ListCatalogItems(ctx context.Context) ([]domain.Item, error)
	ListLocations(ctx context.Context) ([]square.Location, error)
}

// Notifier receives a signal whenever the catalog snapshot changes.
type Notifier interface {
	NotifyRefresh(event string)
}

// Refresher owns the current catalog snapshot. The snapshot is rebuilt
// at startup, on an interval, and on demand; consumers read it as a
// value and never see partial updates.
type Refresher struct {
	source   PlatformSource
	notifier Notifier
	logger   *zap.Logger

	mu       sync.RWMutex
	snapshot domain.Snapshot
}

func NewRefresher(source PlatformSource, notifier Notifier, logger *zap.Logger) *Refresher {
	return &Refresher{
		source:   source,
		notifier: notifier,
		logger:   logger,
		snapshot: fallbackSnapshot(),
	}
}

// Snapshot returns the current catalog value. The maps and slices inside
// are shared and must be treated as read-only.
func (r *Refresher) Snapshot() domain.Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot
}

// Services returns the selection list: the sorted catalog entries, or
// the built-in fallback names when the catalog has never loaded.
func (r *Refresher) Services() []domain.Variation {
	return r.Snapshot().List
}

// Refresh rebuilds the snapshot from the platform. The catalog and
// location fetches run concurrently and fail independently: a location
// failure keeps the previous location, a catalog failure keeps the
// previous index (or the fallback list on first load) and is returned
// so on-demand callers can surface it.
func (r *Refresher) Refresh(ctx context.Context) error {
	var (
		wg      sync.WaitGroup
		items   []domain.Item
		locs    []square.Location
		itemErr error
		locErr  error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		items, itemErr = r.source.ListCatalogItems(ctx)
	}()
	go func() {
		defer wg.Done()
		locs, locErr = r.source.ListLocations(ctx)
	}()
	wg.Wait()

	r.mu.Lock()
	if locErr != nil {
		r.logger.Warn("location discovery failed", zap.Error(locErr))
	} else if id := activeLocation(locs); id != "" {
		r.snapshot.LocationID = id
	}

	if itemErr != nil {
		r.logger.Warn("catalog fetch failed, keeping previous snapshot", zap.Error(itemErr))
		r.mu.Unlock()
		return fmt.Errorf("refreshing catalog: %w", itemErr)
	}

	index, list := BuildIndex(items)
	r.snapshot.Index = index
	r.snapshot.List = list
	r.snapshot.Fallback = false
	count := len(list)
	r.mu.Unlock()

	r.logger.Info("catalog refreshed",
		zap.Int("variations", count),
		zap.String("location_id", r.Snapshot().LocationID),
	)
	if r.notifier != nil {
		r.notifier.NotifyRefresh("catalog.refreshed")
	}
	return nil
}

// Run refreshes on the given interval until ctx is cancelled.
func (r *Refresher) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.Refresh(ctx); err != nil {
				r.logger.Warn("scheduled catalog refresh failed", zap.Error(err))
			}
		}
	}
}

// activeLocation picks the first ACTIVE location, else the first one.
func activeLocation(locs []square.Location) string {
	if len(locs) == 0 {
		return ""
	}
	for _, l := range locs {
		if l.Status == "ACTIVE" {
			return l.ID
		}
	}
	return locs[0].ID
}

func fallbackSnapshot() domain.Snapshot {
	list := make([]domain.Variation, 0, len(fallbackServices))
	for _, name := range fallbackServices {
		list = append(list, domain.Variation{Name: name})
	}
	return domain.Snapshot{
		Index:    map[string]domain.Variation{},
		List:     list,
		Fallback: true,
	}
}
