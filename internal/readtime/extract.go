package readtime

import (
	"strings"

	"golang.org/x/net/html"
)

// ExtractText strips markup from rawHTML and returns the human-readable
// text. Text from adjacent elements is joined with a single space so word
// boundaries survive tag removal. Script and style contents are skipped and
// HTML entities are decoded. Extraction never fails: malformed markup
// degrades to best-effort text, and plain text without tags passes through
// unchanged.
func ExtractText(rawHTML string) string {
	if rawHTML == "" {
		return ""
	}

	z := html.NewTokenizer(strings.NewReader(rawHTML))

	var parts []string
	rawDepth := 0 // nesting depth inside script/style elements

	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or a tokenizer error mid-stream; either way,
			// return what we have.
			return strings.Join(parts, " ")
		case html.StartTagToken:
			name, _ := z.TagName()
			if isRawTextTag(string(name)) {
				rawDepth++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if isRawTextTag(string(name)) && rawDepth > 0 {
				rawDepth--
			}
		case html.TextToken:
			if rawDepth > 0 {
				continue
			}
			// z.Text returns the text with entities already decoded.
			if text := strings.TrimSpace(string(z.Text())); text != "" {
				parts = append(parts, text)
			}
		}
	}
}

// isRawTextTag reports whether the element's text content is code rather
// than readable prose.
func isRawTextTag(name string) bool {
	return name == "script" || name == "style"
}
