package answer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/a-h/wabot/format"
)

type Options struct {
	// MaxOutput is the number of section positions considered for output.
	MaxOutput int
	// FullOutput ignores MaxOutput.
	FullOutput bool
	// Shortest renders a single line from the first two sections with text.
	Shortest bool
}

var whitespace = regexp.MustCompile(`\s+`)

// Render returns the lines to say for a successful answer.
func Render(a Answer, opts Options, styler format.Styler) (lines []string) {
	if opts.Shortest {
		if line, ok := shortest(a); ok {
			return []string{line}
		}
		return nil
	}
	for i, s := range a.Sections {
		if !opts.FullOutput && i >= opts.MaxOutput {
			break
		}
		if len(s.Fragments) == 0 {
			continue
		}
		lines = append(lines, clean(fmt.Sprintf("%s :: %s", styler.Heading(s.Title), strings.Join(s.Fragments, " | "))))
	}
	return lines
}

func shortest(a Answer) (line string, ok bool) {
	var texts []string
	for _, s := range a.Sections {
		if len(s.Fragments) == 0 {
			continue
		}
		texts = append(texts, strings.Join(s.Fragments, " | "))
		if len(texts) == 2 {
			break
		}
	}
	if len(texts) == 0 {
		return "", false
	}
	return clean(strings.Join(texts, " :: ")), true
}

func clean(s string) string {
	return strings.ReplaceAll(whitespace.ReplaceAllString(s, " "), ": | ", ": ")
}
