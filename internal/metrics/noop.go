package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// ObserveHTTPRequest is a no-op.
func (n *NoopRecorder) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {}

// IncAuthAttempt is a no-op.
func (n *NoopRecorder) IncAuthAttempt(kind, status string) {}

// IncSearch is a no-op.
func (n *NoopRecorder) IncSearch(status string) {}

// IncSearchCache is a no-op.
func (n *NoopRecorder) IncSearchCache(hit bool) {}

// IncSummary is a no-op.
func (n *NoopRecorder) IncSummary(outcome string) {}

// IncChat is a no-op.
func (n *NoopRecorder) IncChat(status string) {}

// ObserveUpstreamDuration is a no-op.
func (n *NoopRecorder) ObserveUpstreamDuration(upstream string, duration time.Duration) {}
