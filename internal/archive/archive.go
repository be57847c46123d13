package archive

import "time"

// Entry is one normalized, possibly-summarized feed item. Identity for
// deduplication is the canonical form of Link; everything else is payload.
// An Entry is mutated only while its run is processing it and is immutable
// once appended to an archive.
type Entry struct {
	Title     string
	Link      string
	Body      string // raw extracted text (content value, description, or title)
	Cleaned   string // sanitized plain text, input to summarization
	Summary   string // empty means no summary was produced
	Published *time.Time
}

// FeedInfo is the channel-level descriptor written at the head of a
// persisted archive document.
type FeedInfo struct {
	Title       string
	Link        string
	Description string
}

// Store persists per-subscription archives.
//
// Load returns the archive in stored order. A missing or unreadable archive
// loads as empty rather than failing the run; backends reserve the error
// return for infrastructure problems.
//
// Persist rewrites the subscription's archive as Merge(existing, appended).
// A Persist failure is scoped to that subscription only.
type Store interface {
	Load(subscription string) ([]Entry, error)
	Persist(subscription string, info FeedInfo, existing, appended []Entry) error
	Close() error
}

// Truncate bounds an archive to its first limit entries, preserving order.
// Entries are kept in stored order, so the bound caps file growth without
// disturbing the relative order of what remains.
func Truncate(entries []Entry, limit int) []Entry {
	if limit >= 0 && len(entries) > limit {
		return entries[:limit]
	}
	return entries
}

// Merge appends the run's new entries after the existing archive.
func Merge(existing, appended []Entry) []Entry {
	merged := make([]Entry, 0, len(existing)+len(appended))
	merged = append(merged, existing...)
	merged = append(merged, appended...)
	return merged
}

// MemStore is an in-memory Store for tests and dry runs.
type MemStore struct {
	Archives map[string][]Entry
	Infos    map[string]FeedInfo
}

func NewMemStore() *MemStore {
	return &MemStore{
		Archives: make(map[string][]Entry),
		Infos:    make(map[string]FeedInfo),
	}
}

func (m *MemStore) Load(subscription string) ([]Entry, error) {
	entries := m.Archives[subscription]
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out, nil
}

func (m *MemStore) Persist(subscription string, info FeedInfo, existing, appended []Entry) error {
	m.Archives[subscription] = Merge(existing, appended)
	m.Infos[subscription] = info
	return nil
}

func (m *MemStore) Close() error { return nil }
