package archive

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mmcdole/gofeed"
)

// XMLStore keeps one RSS document per subscription at <base>/<name>.xml.
// The document is the same shape the fetcher parses, so the next run reads
// it back with gofeed to reconstruct the archive.
type XMLStore struct {
	base     string
	renderer Renderer
	parser   *gofeed.Parser
}

// NewXMLStore creates a file-backed store rooted at base, creating the
// directory if needed.
func NewXMLStore(base string, renderer Renderer) (*XMLStore, error) {
	if renderer == nil {
		r, err := NewTemplateRenderer("")
		if err != nil {
			return nil, err
		}
		renderer = r
	}
	if err := os.MkdirAll(base, 0755); err != nil {
		return nil, fmt.Errorf("create archive directory: %w", err)
	}
	return &XMLStore{
		base:     base,
		renderer: renderer,
		parser:   gofeed.NewParser(),
	}, nil
}

func (s *XMLStore) path(subscription string) string {
	return filepath.Join(s.base, subscription+".xml")
}

// Load reads the previously persisted archive. A missing or unparsable
// document loads as an empty archive; a fresh subscription starts from
// nothing rather than aborting the run.
func (s *XMLStore) Load(subscription string) ([]Entry, error) {
	data, err := os.ReadFile(s.path(subscription))
	if err != nil {
		return nil, nil
	}
	feed, err := s.parser.ParseString(string(data))
	if err != nil {
		return nil, nil
	}

	entries := make([]Entry, 0, len(feed.Items))
	for _, item := range feed.Items {
		entries = append(entries, Entry{
			Title:     item.Title,
			Link:      item.Link,
			Summary:   item.Description,
			Published: item.PublishedParsed,
		})
	}
	return entries, nil
}

// Persist renders the merged archive and writes it atomically: the document
// lands under a temporary name in the same directory and is renamed over
// the previous archive, so a failed render or write never corrupts it.
func (s *XMLStore) Persist(subscription string, info FeedInfo, existing, appended []Entry) error {
	data, err := s.renderer.Render(info, Merge(existing, appended))
	if err != nil {
		return err
	}

	target := s.path(subscription)
	tmp, err := os.CreateTemp(s.base, subscription+".xml.tmp*")
	if err != nil {
		return fmt.Errorf("create temp archive: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close archive: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace archive: %w", err)
	}
	return nil
}

func (s *XMLStore) Close() error { return nil }
