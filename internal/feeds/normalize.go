package feeds

import (
	"net/url"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/matthewjhunter/scribe/internal/archive"
)

// titleRuneLimit bounds the fallback title derived from an entry's body.
const titleRuneLimit = 50

// Normalize derives a usable entry from a raw feed item. Every item yields
// an entry: the body falls back content -> description -> title, and the
// title falls back title -> first 50 characters of body -> link, so the
// title is never empty for any item that has a link.
func Normalize(item *gofeed.Item) archive.Entry {
	body := item.Content
	if body == "" {
		body = item.Description
	}
	if body == "" {
		body = item.Title
	}

	title := item.Title
	if title == "" {
		title = truncateRunes(strings.TrimSpace(body), titleRuneLimit)
	}
	if title == "" {
		title = item.Link
	}
	if body == "" {
		body = title
	}

	published := item.PublishedParsed
	if published == nil {
		published = item.UpdatedParsed
	}

	return archive.Entry{
		Title:     title,
		Link:      item.Link,
		Body:      body,
		Published: published,
	}
}

func truncateRunes(s string, limit int) string {
	r := []rune(s)
	if len(r) > limit {
		r = r[:limit]
	}
	return string(r)
}

// Canonicalizer strips navigation-only fragment identifiers from links on
// recognized forum domains, where the fragment is only an in-page comment
// anchor. The canonical form is used for identity only; the fetched link is
// what gets archived.
type Canonicalizer struct {
	domains map[string]bool
}

// DefaultForumDomains lists the domains known to use comment-anchor
// fragments in their feed links.
var DefaultForumDomains = []string{"v2ex.com"}

// NewCanonicalizer builds a canonicalizer for the given domains. A leading
// "www." on either side is ignored when matching hosts.
func NewCanonicalizer(domains []string) *Canonicalizer {
	set := make(map[string]bool, len(domains))
	for _, d := range domains {
		set[strings.TrimPrefix(strings.ToLower(d), "www.")] = true
	}
	return &Canonicalizer{domains: set}
}

// Canonical returns the dedup identity for link. Links on unrecognized
// domains, without fragments, or that fail to parse are returned unchanged.
func (c *Canonicalizer) Canonical(link string) string {
	u, err := url.Parse(link)
	if err != nil || u.Fragment == "" {
		return link
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if !c.domains[host] {
		return link
	}
	u.Fragment = ""
	u.RawFragment = ""
	return u.String()
}
