package feeds

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
)

// Fetcher downloads and parses one source feed. A non-success status or a
// malformed document is an error scoped to that source; the caller skips the
// source and continues the subscription.
type Fetcher struct {
	parser *gofeed.Parser
	client *http.Client
}

// NewFetcher creates a feed fetcher.
func NewFetcher() *Fetcher {
	parser := gofeed.NewParser()
	parser.UserAgent = "Scribe/1.0"
	return &Fetcher{
		parser: parser,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch retrieves and parses the feed at url.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*gofeed.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", "Scribe/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed %s returned status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read feed %s: %w", url, err)
	}

	parsed, err := f.parser.ParseString(string(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed %s: %w", url, err)
	}

	return parsed, nil
}
