package schema

import (
	"regexp"
	"strings"
)

var (
	fenceOpenRe   = regexp.MustCompile("^```[a-zA-Z]*[ \t]*\r?\n")
	fenceCloseRe  = regexp.MustCompile("\r?\n```[ \t]*$")
	trailingComma = regexp.MustCompile(`,(\s*[}\]])`)
)

// Clean repairs the defects generative models most often introduce around
// otherwise valid JSON: markdown code fences, trailing commas before a
// closing brace or bracket, and raw control bytes. Line feeds, carriage
// returns and tabs are kept.
func Clean(text string) string {
	text = strings.TrimSpace(text)
	text = fenceOpenRe.ReplaceAllString(text, "")
	text = fenceCloseRe.ReplaceAllString(text, "")
	text = trailingComma.ReplaceAllString(text, "$1")

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r < 32 && r != '\n' && r != '\r' && r != '\t' {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
