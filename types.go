package scribe

import "time"

// Entry is one normalized, possibly-summarized item produced by a run.
type Entry struct {
	Title     string     `json:"title"`
	Link      string     `json:"link"`
	Body      string     `json:"body,omitempty"`
	Cleaned   string     `json:"cleaned,omitempty"`
	Summary   string     `json:"summary,omitempty"`
	Published *time.Time `json:"published,omitempty"`
}

// SubscriptionResult summarizes one subscription's run and carries the
// {url, name} descriptor downstream index/readme generation consumes.
type SubscriptionResult struct {
	Name       string  `json:"name"`
	URL        string  `json:"url"`
	Existing   int     `json:"existing"`
	Appended   int     `json:"appended"`
	Summarized int     `json:"summarized"`
	Filtered   int     `json:"filtered"`
	Duplicates int     `json:"duplicates"`
	Sources    int     `json:"sources"`
	SourceErrs int     `json:"source_errors"`
	Persisted  bool    `json:"persisted"`
	Entries    []Entry `json:"entries,omitempty"`
}

// RunResult collects per-subscription results for a whole run.
type RunResult struct {
	Subscriptions []SubscriptionResult `json:"subscriptions"`
}
