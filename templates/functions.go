package templates

import (
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/quarto-acronyms/fixture-runner/filter"
	"github.com/quarto-acronyms/fixture-runner/types"
)

// IndentPrefix turns a line into part of an indented markdown code block
const IndentPrefix = "    "

// GetTemplateFunc returns the template functions used by the markdown report
func GetTemplateFunc() template.FuncMap {
	return template.FuncMap{
		"seconds": func(d time.Duration) string {
			return fmt.Sprintf("%.1f", d.Seconds())
		},
		"slug":        Slug,
		"indent":      Indent,
		"resultEmoji": resultEmoji,
		"checkEmoji": func(ok bool) string {
			if ok {
				return ":white_check_mark:"
			}
			return ":x:"
		},
		"statusText": func(status types.TestStatus) string {
			return strings.ToUpper(string(status))
		},
	}
}

// Slug returns the anchor GitHub generates for a heading
func Slug(heading string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(heading), " ", "-"))
}

// Indent prefixes every line of text so markdown shows it verbatim
func Indent(text string) string {
	lines := filter.SplitLines(text)
	for i, line := range lines {
		lines[i] = IndentPrefix + line
	}
	return strings.Join(lines, "\n")
}

func resultEmoji(success bool) string {
	if success {
		return ":white_check_mark: PASS"
	}
	return ":x: FAIL"
}
