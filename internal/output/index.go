package output

import (
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"strings"
	"time"
)

//go:embed templates/index.html
var indexTemplate string

// FeedDescriptor is the {url, name} pair handed to index and readme
// generation for each subscription.
type FeedDescriptor struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

type indexData struct {
	UpdateTime string
	Feeds      []FeedDescriptor
}

// WriteIndex renders the subscription index page.
func WriteIndex(path string, updateTime time.Time, feeds []FeedDescriptor) error {
	tmpl, err := template.New("index").Parse(indexTemplate)
	if err != nil {
		return fmt.Errorf("parse index template: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer f.Close()

	return tmpl.Execute(f, indexData{
		UpdateTime: updateTime.Format("2006-01-02 15:04:05"),
		Feeds:      feeds,
	})
}

// AppendReadme replaces the trailing feed-link bullet list of a readme with
// the current links. Everything above the list is left untouched.
func AppendReadme(path string, links []string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read readme: %w", err)
	}

	lines := strings.Split(string(data), "\n")
	for len(lines) > 0 {
		last := strings.TrimSpace(lines[len(lines)-1])
		if last == "" || strings.HasPrefix(last, "- ") {
			lines = lines[:len(lines)-1]
			continue
		}
		break
	}

	lines = append(lines, "")
	lines = append(lines, links...)

	out := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(out), 0644); err != nil {
		return fmt.Errorf("write readme: %w", err)
	}
	return nil
}
