package metrics

import (
	"sync"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	HTTPRequests    uint64
	AuthAttempts    map[string]uint64 // key: kind/status
	Searches        map[string]uint64
	SearchCacheHits uint64
	SearchCacheMiss uint64
	Summaries       map[string]uint64
	Chats           map[string]uint64
	UpstreamCalls   map[string]uint64
	UpstreamTotalNs map[string]int64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	mu   sync.Mutex
	snap Snapshot
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{snap: Snapshot{
		AuthAttempts:    make(map[string]uint64),
		Searches:        make(map[string]uint64),
		Summaries:       make(map[string]uint64),
		Chats:           make(map[string]uint64),
		UpstreamCalls:   make(map[string]uint64),
		UpstreamTotalNs: make(map[string]int64),
	}}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Snapshot{
		HTTPRequests:    m.snap.HTTPRequests,
		AuthAttempts:    copyCounts(m.snap.AuthAttempts),
		Searches:        copyCounts(m.snap.Searches),
		SearchCacheHits: m.snap.SearchCacheHits,
		SearchCacheMiss: m.snap.SearchCacheMiss,
		Summaries:       copyCounts(m.snap.Summaries),
		Chats:           copyCounts(m.snap.Chats),
		UpstreamCalls:   copyCounts(m.snap.UpstreamCalls),
		UpstreamTotalNs: copyCounts(m.snap.UpstreamTotalNs),
	}
}

// ObserveHTTPRequest counts a served request.
func (m *InMemoryRecorder) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	m.mu.Lock()
	m.snap.HTTPRequests++
	m.mu.Unlock()
}

// IncAuthAttempt increments the auth counter for kind/status.
func (m *InMemoryRecorder) IncAuthAttempt(kind, status string) {
	m.mu.Lock()
	m.snap.AuthAttempts[kind+"/"+status]++
	m.mu.Unlock()
}

// IncSearch increments the search counter.
func (m *InMemoryRecorder) IncSearch(status string) {
	m.mu.Lock()
	m.snap.Searches[status]++
	m.mu.Unlock()
}

// IncSearchCache increments the cache hit or miss counter.
func (m *InMemoryRecorder) IncSearchCache(hit bool) {
	m.mu.Lock()
	if hit {
		m.snap.SearchCacheHits++
	} else {
		m.snap.SearchCacheMiss++
	}
	m.mu.Unlock()
}

// IncSummary increments the summary outcome counter.
func (m *InMemoryRecorder) IncSummary(outcome string) {
	m.mu.Lock()
	m.snap.Summaries[outcome]++
	m.mu.Unlock()
}

// IncChat increments the chat counter.
func (m *InMemoryRecorder) IncChat(status string) {
	m.mu.Lock()
	m.snap.Chats[status]++
	m.mu.Unlock()
}

// ObserveUpstreamDuration records an upstream call duration.
func (m *InMemoryRecorder) ObserveUpstreamDuration(upstream string, duration time.Duration) {
	m.mu.Lock()
	m.snap.UpstreamCalls[upstream]++
	m.snap.UpstreamTotalNs[upstream] += duration.Nanoseconds()
	m.mu.Unlock()
}

func copyCounts[V uint64 | int64](src map[string]V) map[string]V {
	dst := make(map[string]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
