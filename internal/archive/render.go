package archive

import (
	"bytes"
	_ "embed"
	"encoding/xml"
	"fmt"
	"text/template"
	"time"
)

//go:embed feed.tmpl
var defaultFeedTemplate string

// Renderer turns an archive into the bytes of its persisted document.
// The default implementation renders RSS 2.0 through a text template; tests
// substitute failing renderers to exercise the skip-on-render-error path.
type Renderer interface {
	Render(info FeedInfo, entries []Entry) ([]byte, error)
}

type renderItem struct {
	Title       string
	Link        string
	Description string
	PubDate     string
}

type renderDoc struct {
	Feed  FeedInfo
	Items []renderItem
}

// TemplateRenderer renders the archive document from a text/template. The
// template receives the already-escaped channel descriptor and item list.
type TemplateRenderer struct {
	tmpl *template.Template
}

// NewTemplateRenderer parses the given template text, or the embedded
// default RSS 2.0 template when text is empty.
func NewTemplateRenderer(text string) (*TemplateRenderer, error) {
	if text == "" {
		text = defaultFeedTemplate
	}
	tmpl, err := template.New("feed").Funcs(template.FuncMap{
		"xml": escapeXML,
	}).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse feed template: %w", err)
	}
	return &TemplateRenderer{tmpl: tmpl}, nil
}

func (r *TemplateRenderer) Render(info FeedInfo, entries []Entry) ([]byte, error) {
	doc := renderDoc{Feed: info, Items: make([]renderItem, len(entries))}
	for i, e := range entries {
		item := renderItem{
			Title:       e.Title,
			Link:        e.Link,
			Description: e.Summary,
		}
		if item.Description == "" {
			item.Description = e.Body
		}
		if e.Published != nil {
			item.PubDate = e.Published.Format(time.RFC1123Z)
		}
		doc.Items[i] = item
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, doc); err != nil {
		return nil, fmt.Errorf("render feed document: %w", err)
	}
	return buf.Bytes(), nil
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		return ""
	}
	return buf.String()
}
