package application

import (
	"sync"
	"time"

	"github.com/example/trainee-timetable/internal/scheduler"
)

// viewCache stores recently computed calendar views so repeated reads of the
// same period skip the layout work while the timetable is unchanged.
type viewCache[V any] struct {
	mu         sync.RWMutex
	now        func() time.Time
	ttl        time.Duration
	maxEntries int
	clone      func(V) V
	entries    map[string]viewCacheEntry[V]
}

type viewCacheEntry[V any] struct {
	view      V
	expiresAt time.Time
}

func newViewCache[V any](ttl time.Duration, maxEntries int, now func() time.Time, clone func(V) V) *viewCache[V] {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	if maxEntries <= 0 {
		maxEntries = 64
	}
	if now == nil {
		now = time.Now
	}
	return &viewCache[V]{
		now:        now,
		ttl:        ttl,
		maxEntries: maxEntries,
		clone:      clone,
		entries:    make(map[string]viewCacheEntry[V]),
	}
}

func (c *viewCache[V]) Get(key string) (V, bool) {
	var zero V
	if c == nil {
		return zero, false
	}
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return zero, false
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return zero, false
	}
	return c.clone(entry.view), true
}

func (c *viewCache[V]) Store(key string, view V) {
	if c == nil {
		return
	}
	cloned := c.clone(view)
	expiry := c.now().Add(c.ttl)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.cleanupLocked()
	if len(c.entries) >= c.maxEntries {
		c.evictOneLocked()
	}
	c.entries[key] = viewCacheEntry[V]{view: cloned, expiresAt: expiry}
}

func (c *viewCache[V]) Invalidate() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.entries = make(map[string]viewCacheEntry[V])
	c.mu.Unlock()
}

func (c *viewCache[V]) cleanupLocked() {
	now := c.now()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}

func (c *viewCache[V]) evictOneLocked() {
	for key := range c.entries {
		delete(c.entries, key)
		return
	}
}

func cloneWeekView(v scheduler.WeekView) scheduler.WeekView {
	out := v
	for i, col := range v.Days {
		if col.Holiday != nil {
			h := *col.Holiday
			out.Days[i].Holiday = &h
		}
	}
	out.Slots = make([]scheduler.SlotRow, len(v.Slots))
	for i, row := range v.Slots {
		out.Slots[i] = row
		for d, cell := range row.Cells {
			out.Slots[i].Cells[d] = append([]scheduler.SessionEntry(nil), cell...)
		}
	}
	return out
}

func cloneMonthView(v scheduler.MonthView) scheduler.MonthView {
	out := v
	out.Weeks = make([]scheduler.MonthWeek, len(v.Weeks))
	for i, week := range v.Weeks {
		out.Weeks[i].Week = week.Week
		for d, day := range week.Days {
			if day == nil {
				continue
			}
			copied := *day
			if day.Holiday != nil {
				h := *day.Holiday
				copied.Holiday = &h
			}
			copied.Bookings = append([]scheduler.BookingEntry(nil), day.Bookings...)
			out.Weeks[i].Days[d] = &copied
		}
	}
	return out
}
