// Package sanitize reduces feed item HTML to the plain text that gets
// filtered and summarized.
package sanitize

import (
	"bytes"
	stdhtml "html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

// strippedElements are removed together with their content. Everything
// else keeps its text.
var strippedElements = map[string]bool{
	"script": true,
	"style":  true,
	"img":    true,
	"a":      true,
	"video":  true,
	"audio":  true,
	"iframe": true,
	"input":  true,
}

var strict = bluemonday.StrictPolicy()

// Text strips presentation-only markup from htmlContent and returns the
// remaining text with whitespace collapsed.
func Text(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return collapse(stdhtml.UnescapeString(strict.Sanitize(htmlContent)))
	}
	dropStripped(doc)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return collapse(stdhtml.UnescapeString(strict.Sanitize(htmlContent)))
	}

	// The strict policy flattens the remaining markup to escaped text.
	return collapse(stdhtml.UnescapeString(strict.Sanitize(buf.String())))
}

func dropStripped(n *html.Node) {
	child := n.FirstChild
	for child != nil {
		next := child.NextSibling
		if child.Type == html.ElementNode && strippedElements[child.Data] {
			n.RemoveChild(child)
		} else {
			dropStripped(child)
		}
		child = next
	}
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
