package main

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"lg/canteen-go-api/internal/food"
)

// menuLoader fetches the full catalog from storage.
type menuLoader func(ctx context.Context) ([]food.Menu, error)

// menuCache holds the catalog in memory for ttl. The catalog changes rarely
// (admin edits, seed runs) and every read endpoint needs all of it.
type menuCache struct {
	ttl  time.Duration
	load menuLoader
	now  func() time.Time

	mu        sync.Mutex
	menus     []food.Menu
	index     map[string]food.Menu
	fetchedAt time.Time
}

func newMenuCache(ttl time.Duration, load menuLoader) *menuCache {
	return &menuCache{ttl: ttl, load: load, now: time.Now}
}

// get returns the cached catalog, reloading it once stale. If a reload fails
// and an older copy exists, the stale copy is served.
func (mc *menuCache) get(ctx context.Context) ([]food.Menu, map[string]food.Menu, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if mc.menus != nil && mc.now().Sub(mc.fetchedAt) < mc.ttl {
		return mc.menus, mc.index, nil
	}

	menus, err := mc.load(ctx)
	if err != nil {
		if mc.menus != nil {
			log.Warn().Err(err).Time("fetched_at", mc.fetchedAt).Msg("menu reload failed, serving stale catalog")
			return mc.menus, mc.index, nil
		}
		return nil, nil, err
	}
	if menus == nil {
		menus = []food.Menu{}
	}
	mc.menus = menus
	mc.index = food.Index(menus)
	mc.fetchedAt = mc.now()
	log.Debug().Int("count", len(menus)).Msg("menu catalog loaded")
	return mc.menus, mc.index, nil
}
