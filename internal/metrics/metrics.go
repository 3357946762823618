// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Outcome labels shared by the counters.
const (
	StatusSuccess  = "success"
	StatusFailure  = "failure"
	StatusRejected = "rejected"

	SummaryGenerated = "generated"
	SummaryFallback  = "fallback"

	UpstreamArxiv = "arxiv"
	UpstreamLLM   = "llm"
)

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus or keep them in memory.
type Recorder interface {
	// HTTP metrics
	ObserveHTTPRequest(method, route string, status int, duration time.Duration)

	// Auth metrics; kind is "register", "login" or "api_key".
	IncAuthAttempt(kind, status string)

	// Search and chat metrics
	IncSearch(status string)
	IncSearchCache(hit bool)
	IncSummary(outcome string)
	IncChat(status string)

	// Upstream latency; upstream is "arxiv" or "llm".
	ObserveUpstreamDuration(upstream string, duration time.Duration)
}
