package feeds

import (
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
)

func TestNormalizeExplicitFields(t *testing.T) {
	now := time.Now()
	entry := Normalize(&gofeed.Item{
		Title:           "Hello",
		Link:            "https://example.com/1",
		Content:         "<p>full content</p>",
		Description:     "short description",
		PublishedParsed: &now,
	})

	if entry.Title != "Hello" {
		t.Errorf("title=%q, want Hello", entry.Title)
	}
	if entry.Body != "<p>full content</p>" {
		t.Errorf("body should prefer content, got %q", entry.Body)
	}
	if entry.Published == nil || !entry.Published.Equal(now) {
		t.Error("published date not carried over")
	}
}

func TestNormalizeBodyFallsBackToDescription(t *testing.T) {
	entry := Normalize(&gofeed.Item{
		Title:       "Hello",
		Link:        "https://example.com/1",
		Description: "short description",
	})
	if entry.Body != "short description" {
		t.Errorf("body=%q, want description fallback", entry.Body)
	}
}

func TestNormalizeBodyFallsBackToTitle(t *testing.T) {
	entry := Normalize(&gofeed.Item{
		Title: "Hello",
		Link:  "https://example.com/1",
	})
	if entry.Body != "Hello" {
		t.Errorf("body=%q, want the title as last resort", entry.Body)
	}
}

func TestNormalizeTitleFromBody(t *testing.T) {
	body := strings.Repeat("Lorem ipsum ", 7)[:80] // 80 chars, no title
	entry := Normalize(&gofeed.Item{
		Link:        "https://example.com/1",
		Description: body,
	})

	if len([]rune(entry.Title)) != 50 {
		t.Fatalf("title length=%d, want 50", len([]rune(entry.Title)))
	}
	if !strings.HasPrefix(body, entry.Title) {
		t.Errorf("title %q is not a prefix of the body", entry.Title)
	}
}

func TestNormalizeTitleFallsBackToLink(t *testing.T) {
	entry := Normalize(&gofeed.Item{Link: "https://example.com/1"})
	if entry.Title != "https://example.com/1" {
		t.Errorf("title=%q, want the link", entry.Title)
	}
	if entry.Body != "https://example.com/1" {
		t.Errorf("body=%q, want the derived title", entry.Body)
	}
}

func TestNormalizeUpdatedDateFallback(t *testing.T) {
	updated := time.Now()
	entry := Normalize(&gofeed.Item{
		Title:         "Hello",
		Link:          "https://example.com/1",
		UpdatedParsed: &updated,
	})
	if entry.Published == nil || !entry.Published.Equal(updated) {
		t.Error("expected updated date as published fallback")
	}
}

func TestCanonicalStripsRecognizedFragment(t *testing.T) {
	c := NewCanonicalizer([]string{"example-forum.test"})

	got := c.Canonical("https://example-forum.test/thread/42#comment-7")
	if got != "https://example-forum.test/thread/42" {
		t.Errorf("canonical=%q, want fragment stripped", got)
	}
}

func TestCanonicalLeavesOtherDomains(t *testing.T) {
	c := NewCanonicalizer([]string{"example-forum.test"})

	link := "https://example.com/post#section-2"
	if got := c.Canonical(link); got != link {
		t.Errorf("canonical=%q, want unchanged link on unrecognized domain", got)
	}
}

func TestCanonicalNoFragment(t *testing.T) {
	c := NewCanonicalizer([]string{"example-forum.test"})

	link := "https://example-forum.test/thread/42"
	if got := c.Canonical(link); got != link {
		t.Errorf("canonical=%q, want unchanged link without fragment", got)
	}
}

func TestCanonicalIgnoresWWW(t *testing.T) {
	c := NewCanonicalizer([]string{"v2ex.com"})

	got := c.Canonical("https://www.v2ex.com/t/1000#reply12")
	if got != "https://www.v2ex.com/t/1000" {
		t.Errorf("canonical=%q, want fragment stripped for www host", got)
	}
}

func TestCanonicalUnparsableLink(t *testing.T) {
	c := NewCanonicalizer([]string{"example-forum.test"})

	link := "://not a url#x"
	if got := c.Canonical(link); got != link {
		t.Errorf("canonical=%q, want unparsable link unchanged", got)
	}
}
