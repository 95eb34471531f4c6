// Package textproc cleans up raw transcription output before it is injected.
package textproc

import (
	"regexp"
	"strings"
)

var (
	multiSpace       = regexp.MustCompile(` +`)
	spaceBeforePunct = regexp.MustCompile(`\s+([.,!?;:])`)
	punctNoSpace     = regexp.MustCompile(`([.,!?;:])([^\s])`)
	spaceBeforeClose = regexp.MustCompile(`\s+([)\]"'])`)
	spaceAfterOpen   = regexp.MustCompile(`([(\["'])\s+`)
)

// Normalize fixes spacing and punctuation in transcribed text. The steps are
// order-sensitive. Quote characters are handled symmetrically without any
// open/close pairing: a lone " is stripped of adjacent space on both sides,
// which can look odd inside properly paired quotes. That is intentional.
func Normalize(text string) string {
	if text == "" {
		return text
	}

	text = strings.TrimSpace(text)
	text = multiSpace.ReplaceAllString(text, " ")
	text = spaceBeforePunct.ReplaceAllString(text, "$1")

	// One space after punctuation unless at end of string. Applied until
	// stable: Go has no lookahead, so consecutive punctuation ("a.!b")
	// needs a second pass.
	for {
		next := punctNoSpace.ReplaceAllString(text, "$1 $2")
		if next == text {
			break
		}
		text = next
	}

	text = multiSpace.ReplaceAllString(text, " ")
	text = spaceBeforeClose.ReplaceAllString(text, "$1")
	text = spaceAfterOpen.ReplaceAllString(text, "$1")

	return text
}
