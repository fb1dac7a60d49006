// evictor.go houses the eviction loop for Cache.  Every tick it scans the
// map and removes:
//
//   - sessions idle longer than idleTTL
//   - least-recently-used sessions while the map exceeds maxEntries
//
// A session with a webhook call in flight is never evicted; stopping its
// loop would drop the outcome.
package visitor

import (
	"sort"
	"time"

	"github.com/yanizio/leadmodal/internal/metrics"
)

func (c *Cache) evictLoop(every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-c.stop:
			return
		case now := <-t.C:
			c.Evict(now)
		}
	}
}

// Evict runs one idle pass and one LRU pass at now and returns how many
// sessions were removed.
func (c *Cache) Evict(now time.Time) int {
	removed := 0
	count := 0

	// ----------------------------------------------------------------
	// Idle eviction pass
	// ----------------------------------------------------------------
	c.m.Range(func(key, value any) bool {
		s := value.(*Session)
		if idle := s.idleFor(now); idle > c.idleTTL && c.remove(key.(string), s) {
			c.log.Infow("visitor evicted", "visitor", key, "idle", idle.Truncate(time.Second))
			removed++
			return true
		}
		count++
		return true
	})

	// ----------------------------------------------------------------
	// LRU eviction pass
	// ----------------------------------------------------------------
	if count <= c.maxEntries {
		return removed
	}
	type kv struct {
		id string
		s  *Session
		at int64
	}
	var all []kv
	c.m.Range(func(key, value any) bool {
		s := value.(*Session)
		all = append(all, kv{id: key.(string), s: s, at: s.lastSeen.Load()})
		return true
	})
	sort.Slice(all, func(i, j int) bool { return all[i].at < all[j].at })

	excess := len(all) - c.maxEntries
	for _, e := range all {
		if excess <= 0 {
			break
		}
		if c.remove(e.id, e.s) {
			c.log.Infow("visitor evicted (LRU pressure)", "visitor", e.id)
			removed++
			excess--
		}
	}
	return removed
}

// remove drops s unless it is mid-submission.
func (c *Cache) remove(id string, s *Session) bool {
	if !s.retire() {
		return false
	}
	deleted := c.m.CompareAndDelete(id, s)
	s.Close()
	if !deleted {
		return false
	}
	metrics.VisitorEvictTotal.Inc()
	metrics.ActiveVisitors.Dec()
	return true
}
