package ai

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"
)

// Embedded instruction templates. The zh template carries localized
// wording and formatting; every other language uses the generic template
// with the language name substituted in.
//
//go:embed prompts/summary.txt
var genericPrompt string

//go:embed prompts/summary_zh.txt
var chinesePrompt string

type promptData struct {
	Article       string
	Language      string
	KeywordLength int
	SummaryLength int
}

// buildPrompt renders the summarization instruction for an article. The
// keyword-count and summary-length budgets are part of the instruction
// contract; the caller's configuration decides them.
func buildPrompt(article, language string, keywordLength, summaryLength int) (string, error) {
	text := genericPrompt
	if language == "zh" {
		text = chinesePrompt
	}

	tmpl, err := template.New("summary").Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse prompt template: %w", err)
	}

	var buf strings.Builder
	err = tmpl.Execute(&buf, promptData{
		Article:       article,
		Language:      language,
		KeywordLength: keywordLength,
		SummaryLength: summaryLength,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render prompt template: %w", err)
	}
	return buf.String(), nil
}

// truncateText truncates text to maxLen runes.
func truncateText(text string, maxLen int) string {
	r := []rune(text)
	if len(r) <= maxLen {
		return text
	}
	return string(r[:maxLen]) + "..."
}
