package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/paperdesk/paperdesk/internal/llm"
)

const (
	// SummaryUnavailable is used when a paper has no abstract to fall back on.
	SummaryUnavailable = "Summary unavailable"

	fallbackSummaryRunes = 200
	summaryPrompt        = "Summarize this research paper abstract in 2-3 sentences: %s"
)

var errBlankSummary = errors.New("provider returned a blank summary")

// Summary is the outcome of summarizing one abstract. Err is set when the
// provider call failed and Text holds the fallback.
type Summary struct {
	Text      string
	Generated bool
	Err       error
}

// FallbackSummary returns the first 200 characters of abstract followed by
// "...", or SummaryUnavailable when abstract is empty.
func FallbackSummary(abstract string) string {
	if abstract == "" {
		return SummaryUnavailable
	}
	if utf8.RuneCountInString(abstract) <= fallbackSummaryRunes {
		return abstract + "..."
	}
	return string([]rune(abstract)[:fallbackSummaryRunes]) + "..."
}

// summarize asks the provider for a short summary of abstract. It never
// fails; provider errors produce the fallback text.
func summarize(ctx context.Context, completer Completer, apiKey, abstract string) Summary {
	if strings.TrimSpace(abstract) == "" {
		return Summary{Text: SummaryUnavailable}
	}

	text, err := completer.Complete(ctx, apiKey, []llm.Message{
		{Role: llm.RoleUser, Content: fmt.Sprintf(summaryPrompt, abstract)},
	})
	if err == nil && strings.TrimSpace(text) == "" {
		err = errBlankSummary
	}
	if err != nil {
		return Summary{Text: FallbackSummary(abstract), Err: err}
	}

	return Summary{Text: text, Generated: true}
}
