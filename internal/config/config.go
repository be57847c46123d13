// Package config loads the scribe configuration: one [global] section plus
// one [[subscription]] table per output feed.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matthewjhunter/scribe/internal/feeds"
	"github.com/matthewjhunter/scribe/internal/filter"
)

// DefaultMaxEntries bounds a persisted archive. Truncating old entries caps
// file size; 1000 is high enough that entries still present in the source
// feed are never pushed out, which would reorder the archive.
const DefaultMaxEntries = 1000

type Config struct {
	Global        Global         `toml:"global"`
	Subscriptions []Subscription `toml:"subscription"`
}

type Global struct {
	Base          string   `toml:"base"`
	KeywordLength int      `toml:"keyword_length"`
	SummaryLength int      `toml:"summary_length"`
	Language      string   `toml:"language"`
	Provider      string   `toml:"provider"`
	Model         string   `toml:"model"`
	FallbackModel string   `toml:"fallback_model"`
	BaseURL       string   `toml:"base_url"`
	Storage       string   `toml:"storage"`
	MaxEntries    int      `toml:"max_entries"`
	ForumDomains  []string `toml:"forum_domains"`

	// APIKey comes from the OPENAI_API_KEY environment variable, never
	// from the config file.
	APIKey string `toml:"-"`
}

type Subscription struct {
	Name        string `toml:"name"`
	URL         string `toml:"url"`
	FilterApply string `toml:"filter_apply"`
	FilterType  string `toml:"filter_type"`
	FilterRule  string `toml:"filter_rule"`
	MaxItems    int    `toml:"max_items"`
	Language    string `toml:"language"`

	// Rule is the validated form of the filter triple, set by Validate.
	Rule *filter.Rule `toml:"-"`
}

// URLs splits the comma-separated source list, in configured order.
// Surrounding whitespace and quoting characters are stripped.
func (s *Subscription) URLs() []string {
	var urls []string
	for _, u := range strings.Split(s.URL, ",") {
		u = strings.Trim(strings.TrimSpace(u), `"'`)
		if u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

// Default returns a config with sensible defaults and no subscriptions.
func Default() *Config {
	cfg := &Config{}
	cfg.Global.Base = "rss"
	cfg.Global.KeywordLength = 5
	cfg.Global.SummaryLength = 200
	cfg.Global.Language = "en"
	cfg.Global.Provider = "openai"
	cfg.Global.Model = "gpt-3.5-turbo-16k-0613"
	cfg.Global.FallbackModel = "gpt-4-0613"
	cfg.Global.Storage = "xml"
	cfg.Global.MaxEntries = DefaultMaxEntries
	cfg.Global.ForumDomains = feeds.DefaultForumDomains
	return cfg
}

// Load reads and validates the config file at path. Validation failures are
// fatal configuration errors; they surface here, before any fetch.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.Global.APIKey = os.Getenv("OPENAI_API_KEY")
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the global section and every subscription, compiling
// filter rules as it goes.
func (c *Config) Validate() error {
	if c.Global.Base == "" {
		return fmt.Errorf("global base directory must be set")
	}
	if c.Global.MaxEntries <= 0 {
		c.Global.MaxEntries = DefaultMaxEntries
	}
	switch c.Global.Provider {
	case "openai", "ollama":
	default:
		return fmt.Errorf("unsupported provider %q (valid: openai, ollama)", c.Global.Provider)
	}
	switch c.Global.Storage {
	case "xml", "sqlite":
	default:
		return fmt.Errorf("unsupported storage %q (valid: xml, sqlite)", c.Global.Storage)
	}
	if c.Global.KeywordLength <= 0 || c.Global.SummaryLength <= 0 {
		return fmt.Errorf("keyword_length and summary_length must be positive")
	}

	seen := make(map[string]bool, len(c.Subscriptions))
	for i := range c.Subscriptions {
		sub := &c.Subscriptions[i]
		if sub.Name == "" {
			return fmt.Errorf("subscription %d: name must be set", i)
		}
		if seen[sub.Name] {
			return fmt.Errorf("subscription %q: duplicate name", sub.Name)
		}
		seen[sub.Name] = true
		if len(sub.URLs()) == 0 {
			return fmt.Errorf("subscription %q: url must list at least one source", sub.Name)
		}
		if sub.MaxItems < 0 {
			return fmt.Errorf("subscription %q: max_items must not be negative", sub.Name)
		}

		rule, err := filter.Parse(sub.FilterApply, sub.FilterType, sub.FilterRule)
		if err != nil {
			return fmt.Errorf("subscription %q: %w", sub.Name, err)
		}
		sub.Rule = rule
	}
	return nil
}

// Language returns the summary language for a subscription, falling back
// to the global setting.
func (c *Config) Language(sub *Subscription) string {
	if sub.Language != "" {
		return sub.Language
	}
	return c.Global.Language
}
