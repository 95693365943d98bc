// Package presence tracks live member locations in process memory. The map
// is fed by two paths, the websocket channel and the HTTP push endpoint, and
// both converge on Update so a reader sees the same record shape either way.
package presence

import (
	"math"
	"sync"
	"time"
)

const (
	// BaseLatitude and BaseLongitude form the center of operations used
	// for the active/inactive geofence.
	BaseLatitude  = 45.1
	BaseLongitude = 15.2

	// ActiveRadiusKM is inclusive: exactly 10 km is still active.
	ActiveRadiusKM = 10.0

	// StalenessWindow is the only time-based expiry in the system.
	// Entries older than this are evicted during List.
	StalenessWindow = 60 * time.Second

	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Entry is one live presence record.
type Entry struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Tracker owns the presence map. All mutation and the evict-on-read scan run
// under one mutex so a concurrent refresh can never interleave with an
// eviction of the same key.
type Tracker struct {
	mu      sync.Mutex
	entries map[string]Entry
	now     func() time.Time
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		entries: make(map[string]Entry),
		now:     time.Now,
	}
}

// Update upserts the entry for the given key (websocket connection id or
// "http:<user_id>") and returns the derived record.
func (t *Tracker) Update(key, userID, username, fullName string, lat, lon float64) Entry {
	entry := Entry{
		UserID:    userID,
		Username:  username,
		FullName:  fullName,
		Latitude:  lat,
		Longitude: lon,
		Status:    StatusForDistance(DistanceKM(BaseLatitude, BaseLongitude, lat, lon)),
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	entry.Timestamp = t.now()
	t.entries[key] = entry
	return entry
}

// Remove drops the entry for a key, used on disconnect.
func (t *Tracker) Remove(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, key)
}

// List returns all fresh entries and evicts stale ones in the same critical
// section. There is no eviction timer; eviction piggybacks on reads.
func (t *Tracker) List() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()

	cutoff := t.now().Add(-StalenessWindow)
	fresh := make([]Entry, 0, len(t.entries))
	for key, entry := range t.entries {
		if entry.Timestamp.Before(cutoff) {
			delete(t.entries, key)
			continue
		}
		fresh = append(fresh, entry)
	}
	return fresh
}

// StatusForDistance derives the presence status from the distance to the
// base coordinate. The boundary is inclusive.
func StatusForDistance(km float64) string {
	if km <= ActiveRadiusKM {
		return StatusActive
	}
	return StatusInactive
}

// DistanceKM returns the great-circle distance between two coordinates using
// the haversine formula.
func DistanceKM(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKM = 6371.0

	rad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := rad(lat2 - lat1)
	dLon := rad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKM * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
