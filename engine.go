// Package scribe aggregates syndicated feeds per configured subscription,
// deduplicates new items against a bounded persisted archive, filters them,
// summarizes them through a tiered completion service, and rewrites the
// archive document.
package scribe

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/mmcdole/gofeed"

	"github.com/matthewjhunter/scribe/internal/ai"
	"github.com/matthewjhunter/scribe/internal/archive"
	"github.com/matthewjhunter/scribe/internal/config"
	"github.com/matthewjhunter/scribe/internal/feeds"
	"github.com/matthewjhunter/scribe/internal/runlog"
	"github.com/matthewjhunter/scribe/internal/sanitize"
)

// FeedFetcher retrieves and parses one source feed.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) (*gofeed.Feed, error)
}

// EntrySummarizer produces a summary through ordered model tiers, or nil
// when every tier fails.
type EntrySummarizer interface {
	Summarize(ctx context.Context, article, language string) (*ai.Summary, []ai.TierError)
}

// Engine drives the whole pipeline. All configuration is explicit; there
// are no package-level settings.
type Engine struct {
	cfg        *config.Config
	store      archive.Store
	fetcher    FeedFetcher
	summarizer EntrySummarizer // nil means archive without summaries
	canon      *feeds.Canonicalizer
}

// NewEngine builds an engine from a validated configuration. Configuration
// errors are fatal here, before any fetch happens.
func NewEngine(cfg *config.Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var store archive.Store
	switch cfg.Global.Storage {
	case "sqlite":
		s, err := archive.NewSQLiteStore(filepath.Join(cfg.Global.Base, "archive.db"))
		if err != nil {
			return nil, fmt.Errorf("open archive database: %w", err)
		}
		store = s
	default:
		s, err := archive.NewXMLStore(cfg.Global.Base, nil)
		if err != nil {
			return nil, fmt.Errorf("open archive store: %w", err)
		}
		store = s
	}

	summarizer, err := newSummarizer(cfg)
	if err != nil {
		store.Close()
		return nil, err
	}

	return &Engine{
		cfg:        cfg,
		store:      store,
		fetcher:    feeds.NewFetcher(),
		summarizer: summarizer,
		canon:      feeds.NewCanonicalizer(cfg.Global.ForumDomains),
	}, nil
}

func newSummarizer(cfg *config.Config) (EntrySummarizer, error) {
	models := []string{cfg.Global.Model}
	if cfg.Global.FallbackModel != "" && cfg.Global.FallbackModel != cfg.Global.Model {
		models = append(models, cfg.Global.FallbackModel)
	}

	switch cfg.Global.Provider {
	case "ollama":
		baseURL := cfg.Global.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		client, err := ai.NewOllamaClient(baseURL)
		if err != nil {
			return nil, fmt.Errorf("create ollama client: %w", err)
		}
		return ai.NewSummarizer(client, models, cfg.Global.KeywordLength, cfg.Global.SummaryLength), nil
	default:
		if cfg.Global.APIKey == "" {
			log.Printf("scribe: OPENAI_API_KEY not set, entries will be archived without summaries")
			return nil, nil
		}
		client := ai.NewOpenAIClient(cfg.Global.APIKey, cfg.Global.BaseURL)
		return ai.NewSummarizer(client, models, cfg.Global.KeywordLength, cfg.Global.SummaryLength), nil
	}
}

// Run processes every subscription in configuration order. Errors scoped to
// an entry, source, or subscription are logged and absorbed; Run itself only
// fails on setup-level problems.
func (e *Engine) Run(ctx context.Context) (*RunResult, error) {
	result := &RunResult{}
	for i := range e.cfg.Subscriptions {
		sub := &e.cfg.Subscriptions[i]
		result.Subscriptions = append(result.Subscriptions, e.processSubscription(ctx, sub))
	}
	return result, nil
}

// processSubscription drives one subscription end to end: load archive,
// truncate to the retention bound, then per source and per entry
// normalize, dedupe, filter, summarize, append, and finally render and
// persist the merged archive.
func (e *Engine) processSubscription(ctx context.Context, sub *config.Subscription) SubscriptionResult {
	res := SubscriptionResult{Name: sub.Name, URL: sub.URL}
	logger := runlog.New(filepath.Join(e.cfg.Global.Base, sub.Name+".log"))

	existing, err := e.store.Load(sub.Name)
	if err != nil {
		// Archive trouble never kills the subscription; start from empty.
		log.Printf("scribe: load archive for %s: %v", sub.Name, err)
		existing = nil
	}
	logger.Start(len(existing))
	res.Existing = len(existing)

	existing = archive.Truncate(existing, e.cfg.Global.MaxEntries)

	seen := make(map[string]bool, len(existing))
	for _, entry := range existing {
		seen[e.canon.Canonical(entry.Link)] = true
	}

	info := archive.FeedInfo{Title: sub.Name}
	language := e.cfg.Language(sub)
	attempts := 0
	var appended []archive.Entry

	for _, sourceURL := range sub.URLs() {
		res.Sources++
		logger.Printf("Fetching from %s", sourceURL)

		feed, err := e.fetcher.Fetch(ctx, sourceURL)
		if err != nil {
			logger.Printf("Feed error: %v", err)
			res.SourceErrs++
			continue
		}
		if feed.Title != "" {
			info = archive.FeedInfo{Title: feed.Title, Link: feed.Link, Description: feed.Description}
		}

		for _, item := range feed.Items {
			if len(appended) >= e.cfg.Global.MaxEntries {
				logger.Printf("Skip: [%s](%s)", item.Title, item.Link)
				break
			}

			entry := feeds.Normalize(item)
			key := e.canon.Canonical(entry.Link)
			if seen[key] {
				logger.Printf("Duplicate: [%s](%s)", entry.Title, entry.Link)
				res.Duplicates++
				continue
			}

			if !sub.Rule.Match(entry.Title, entry.Body, entry.Link) {
				logger.Printf("Filter: [%s](%s)", entry.Title, entry.Link)
				res.Filtered++
				continue
			}

			entry.Cleaned = sanitize.Text(entry.Body)

			if e.summarizer != nil && attempts < sub.MaxItems {
				attempts++
				summary, tierErrs := e.summarizer.Summarize(ctx, entry.Cleaned, language)
				for _, te := range tierErrs {
					logger.Printf("Summary failed (%s): %v", te.Model, te.Err)
				}
				if summary != nil {
					entry.Summary = summary.Text
					res.Summarized++
					logger.Printf("Summarized using %s", summary.Model)
				} else {
					logger.Printf("Summarization failed, appending without summary")
				}
			}

			appended = append(appended, entry)
			seen[key] = true
			logger.Printf("Append: [%s](%s)", entry.Title, entry.Link)
		}
	}

	logger.Printf("Appended entries: %d", len(appended))
	res.Appended = len(appended)
	res.Entries = entriesFromInternal(appended)

	if err := e.store.Persist(sub.Name, info, existing, appended); err != nil {
		logger.Printf("Render error, skipping %s: %v", sub.Name, err)
		log.Printf("scribe: render error for %s: %v", sub.Name, err)
	} else {
		res.Persisted = true
	}
	logger.Finish()

	return res
}

// Close releases the archive backend.
func (e *Engine) Close() error {
	return e.store.Close()
}

// --- internal type conversion helpers ---

func entryFromInternal(e archive.Entry) Entry {
	return Entry{
		Title:     e.Title,
		Link:      e.Link,
		Body:      e.Body,
		Cleaned:   e.Cleaned,
		Summary:   e.Summary,
		Published: e.Published,
	}
}

func entriesFromInternal(entries []archive.Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = entryFromInternal(e)
	}
	return out
}
