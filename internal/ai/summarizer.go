package ai

import (
	"context"
	"fmt"
	"strings"
)

// maxArticleRunes bounds the article text sent to the completion service.
const maxArticleRunes = 12000

// Summary is a successful summarization and the model tier that produced it.
type Summary struct {
	Text  string
	Model string
}

// TierError records one failed tier attempt, keeping enough context to
// diagnose the run from the audit log alone.
type TierError struct {
	Model string
	Err   error
}

func (e TierError) Error() string {
	return fmt.Sprintf("%s: %v", e.Model, e.Err)
}

// Summarizer tries an ordered list of model tiers and returns the first
// success. All tiers failing degrades to an absent summary; the entry is
// kept either way.
type Summarizer struct {
	client        CompletionClient
	models        []string
	keywordLength int
	summaryLength int
}

// NewSummarizer creates a tiered summarizer. Models are tried in order:
// the primary tier first, then the higher-capability fallback.
func NewSummarizer(client CompletionClient, models []string, keywordLength, summaryLength int) *Summarizer {
	return &Summarizer{
		client:        client,
		models:        models,
		keywordLength: keywordLength,
		summaryLength: summaryLength,
	}
}

// Summarize produces a summary of article in the requested language, or nil
// when every tier fails. The returned tier errors cover each failed attempt
// in order.
func (s *Summarizer) Summarize(ctx context.Context, article, language string) (*Summary, []TierError) {
	var tierErrs []TierError

	prompt, err := buildPrompt(truncateText(article, maxArticleRunes), language,
		s.keywordLength, s.summaryLength)
	if err != nil {
		// A broken template fails every tier the same way.
		for _, model := range s.models {
			tierErrs = append(tierErrs, TierError{Model: model, Err: err})
		}
		return nil, tierErrs
	}

	for _, model := range s.models {
		text, err := s.client.Complete(ctx, model, prompt)
		if err != nil {
			tierErrs = append(tierErrs, TierError{Model: model, Err: err})
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			tierErrs = append(tierErrs, TierError{Model: model, Err: fmt.Errorf("empty completion")})
			continue
		}
		return &Summary{Text: text, Model: model}, tierErrs
	}
	return nil, tierErrs
}
