package jobs

import (
	"context"
	"log"
	"time"

	"github.com/dryack/gRetireSim/core/statistics"
)

const (
	syncLockKey  = "sync_job_lock"
	lockTTL      = 16 * time.Minute // Slightly longer than our sync interval
	syncInterval = 15 * time.Minute
)

// SyncJob periodically copies cached simulation results into Postgres so
// they survive cache eviction.
type SyncJob struct {
	cache statistics.Cache
	db    statistics.Database
}

func NewSyncJob(cache statistics.Cache, db statistics.Database) *SyncJob {
	return &SyncJob{
		cache: cache,
		db:    db,
	}
}

func (j *SyncJob) Start(ctx context.Context) {
	ticker := time.NewTicker(syncInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if j.shouldRunSync(ctx) {
				j.syncCacheAndDB(ctx)
			} else {
				log.Println("Skipping sync job run.")
			}
		}
	}
}

func (j *SyncJob) shouldRunSync(ctx context.Context) bool {
	// Try to acquire the lock
	err := j.cache.SetGeneral(ctx, syncLockKey, time.Now().Unix(), lockTTL)
	if err != nil {
		log.Printf("Error acquiring lock: %v", err)
		return false
	}

	// If we get here, we've successfully acquired the lock
	return true
}

func (j *SyncJob) syncCacheAndDB(ctx context.Context) {
	log.Println("Starting cache to DB sync...")

	keys, err := j.cache.Keys(ctx)
	if err != nil {
		log.Printf("Error listing cached scenarios: %v", err)
		return
	}

	synced := 0
	for _, key := range keys {
		result, err := j.cache.Get(ctx, key)
		if err != nil {
			log.Printf("Error reading cached scenario %q: %v", key, err)
			continue
		}
		if err := j.db.Set(ctx, key, result); err != nil {
			log.Printf("Error syncing scenario %q: %v", key, err)
			continue
		}
		synced++
	}

	log.Printf("Cache to DB sync completed, %d of %d scenarios synced", synced, len(keys))
}
