package testutil

import (
	"context"
	"sync"

	"github.com/paperdesk/paperdesk/internal/llm"
	"github.com/paperdesk/paperdesk/internal/model"
)

// FakeIndex is a PaperIndex returning fixed papers.
type FakeIndex struct {
	mu       sync.Mutex
	Papers   []model.Paper
	Err      error
	Calls    int
	LastTerm string
}

// Search records the call and returns a copy of Papers or Err.
func (f *FakeIndex) Search(_ context.Context, query string, maxResults int) ([]model.Paper, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls++
	f.LastTerm = query
	if f.Err != nil {
		return nil, f.Err
	}
	papers := append([]model.Paper(nil), f.Papers...)
	if len(papers) > maxResults {
		papers = papers[:maxResults]
	}
	return papers, nil
}

// Category returns the fixed category.
func (f *FakeIndex) Category() string {
	return "cs.*"
}

// SearchCalls returns the number of Search calls.
func (f *FakeIndex) SearchCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Calls
}

// FakeCompleter is a Completer driven by a function.
type FakeCompleter struct {
	mu    sync.Mutex
	Fn    func(apiKey string, messages []llm.Message) (string, error)
	calls [][]llm.Message
	keys  []string
}

// Complete records the call and delegates to Fn.
func (f *FakeCompleter) Complete(_ context.Context, apiKey string, messages []llm.Message) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, append([]llm.Message(nil), messages...))
	f.keys = append(f.keys, apiKey)
	fn := f.Fn
	f.mu.Unlock()

	if fn == nil {
		return "", nil
	}
	return fn(apiKey, messages)
}

// Calls returns the recorded message lists.
func (f *FakeCompleter) Calls() [][]llm.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]llm.Message(nil), f.calls...)
}

// Keys returns the api keys seen, one per call.
func (f *FakeCompleter) Keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.keys...)
}
