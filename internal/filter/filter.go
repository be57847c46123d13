// Package filter evaluates per-subscription inclusion rules against entry
// fields. Rules are parsed and validated once at configuration load, not
// per entry.
package filter

import (
	"fmt"
	"regexp"
)

// Field selects which entry text the rule applies to.
type Field string

const (
	FieldTitle   Field = "title"
	FieldArticle Field = "article"
	FieldLink    Field = "link"
)

// Mode selects how the pattern decides inclusion. The include/exclude
// keyword modes share regex semantics with their regex-* spellings; the
// split exists for configuration compatibility.
type Mode string

const (
	ModeInclude       Mode = "include"
	ModeExclude       Mode = "exclude"
	ModeRegexMatch    Mode = "regex-match"
	ModeRegexNotMatch Mode = "regex-not-match"
)

// Rule is a validated filter. A nil *Rule admits every entry.
type Rule struct {
	Apply   Field
	Mode    Mode
	Pattern *regexp.Regexp
}

// Parse validates the (apply, type, rule) configuration triple. All three
// empty means no filtering and yields a nil rule; a partially specified
// triple or an unsupported value is a configuration error, surfaced before
// any entry is processed.
func Parse(apply, mode, rule string) (*Rule, error) {
	if apply == "" && mode == "" && rule == "" {
		return nil, nil
	}
	if apply == "" || mode == "" || rule == "" {
		return nil, fmt.Errorf("filter_apply, filter_type and filter_rule must be set together")
	}

	switch Field(apply) {
	case FieldTitle, FieldArticle, FieldLink:
	default:
		return nil, fmt.Errorf("unsupported filter_apply %q", apply)
	}

	switch Mode(mode) {
	case ModeInclude, ModeExclude, ModeRegexMatch, ModeRegexNotMatch:
	default:
		return nil, fmt.Errorf("unsupported filter_type %q", mode)
	}

	pattern, err := regexp.Compile(rule)
	if err != nil {
		return nil, fmt.Errorf("invalid filter_rule %q: %w", rule, err)
	}

	return &Rule{Apply: Field(apply), Mode: Mode(mode), Pattern: pattern}, nil
}

// Match reports whether an entry with the given fields passes the rule.
func (r *Rule) Match(title, article, link string) bool {
	if r == nil {
		return true
	}

	var text string
	switch r.Apply {
	case FieldTitle:
		text = title
	case FieldArticle:
		text = article
	case FieldLink:
		text = link
	}

	matched := r.Pattern.MatchString(text)
	switch r.Mode {
	case ModeInclude, ModeRegexMatch:
		return matched
	case ModeExclude, ModeRegexNotMatch:
		return !matched
	}
	return true
}
