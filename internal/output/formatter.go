package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

type Format string

const (
	FormatJSON  Format = "json"
	FormatText  Format = "text"
	FormatHuman Format = "human"
)

type Formatter struct {
	format Format
	out    io.Writer
	err    io.Writer
}

// NewFormatter creates a new output formatter
func NewFormatter(format Format) *Formatter {
	return &Formatter{
		format: format,
		out:    os.Stdout,
		err:    os.Stderr,
	}
}

// NewFormatterWithWriters creates a formatter with custom output writers for testability
func NewFormatterWithWriters(format Format, out, errW io.Writer) *Formatter {
	return &Formatter{
		format: format,
		out:    out,
		err:    errW,
	}
}

// SubscriptionResult summarizes one subscription's run.
type SubscriptionResult struct {
	Name       string `json:"name"`
	URL        string `json:"url"`
	Existing   int    `json:"existing"`
	Appended   int    `json:"appended"`
	Summarized int    `json:"summarized"`
	Filtered   int    `json:"filtered"`
	Duplicates int    `json:"duplicates"`
	Sources    int    `json:"sources"`
	SourceErrs int    `json:"source_errors"`
	Persisted  bool   `json:"persisted"`
}

// RunResult summarizes a whole run across subscriptions.
type RunResult struct {
	Subscriptions []SubscriptionResult `json:"subscriptions"`
}

// OutputRunResult outputs the run result in the configured format
func (f *Formatter) OutputRunResult(result *RunResult) error {
	switch f.format {
	case FormatJSON:
		return json.NewEncoder(f.out).Encode(result)
	case FormatText:
		for _, s := range result.Subscriptions {
			fmt.Fprintf(f.out, "name=%s\tappended=%d\tsummarized=%d\tfiltered=%d\tduplicates=%d\tsource_errors=%d\tpersisted=%t\n",
				s.Name, s.Appended, s.Summarized, s.Filtered, s.Duplicates, s.SourceErrs, s.Persisted)
		}
		return nil
	case FormatHuman:
		if len(result.Subscriptions) == 0 {
			fmt.Fprintln(f.out, "No subscriptions configured")
			return nil
		}
		for _, s := range result.Subscriptions {
			fmt.Fprintf(f.out, "%s: %d new entries (%d summarized, %d filtered, %d duplicates)\n",
				s.Name, s.Appended, s.Summarized, s.Filtered, s.Duplicates)
			if s.SourceErrs > 0 {
				fmt.Fprintf(f.out, "  %d of %d sources failed\n", s.SourceErrs, s.Sources)
			}
			if !s.Persisted {
				fmt.Fprintf(f.out, "  archive not written (render error)\n")
			}
		}
		return nil
	}
	return fmt.Errorf("unknown format: %s", f.format)
}

// Error outputs an error message to stderr
func (f *Formatter) Error(format string, args ...interface{}) {
	fmt.Fprintf(f.err, format+"\n", args...)
}

// Warning outputs a warning message to stderr
func (f *Formatter) Warning(format string, args ...interface{}) {
	fmt.Fprintf(f.err, "Warning: "+format+"\n", args...)
}
