package rewrite

import (
	"strings"

	"golang.org/x/net/html"
)

// plainText reduces an HTML fragment to its visible text. Tags are dropped,
// script and style contents are skipped entirely, entities are unescaped, and
// runs of whitespace collapse to single spaces. Input without markup passes
// through with only whitespace normalization.
func plainText(fragment string) string {
	tok := html.NewTokenizer(strings.NewReader(fragment))

	var b strings.Builder
	skipDepth := 0

	for {
		switch tok.Next() {
		case html.ErrorToken:
			// Tokenizer reports io.EOF as an error token; either way we
			// return what was collected.
			return strings.Join(strings.Fields(b.String()), " ")
		case html.StartTagToken:
			name, _ := tok.TagName()
			if skipped(string(name)) {
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := tok.TagName()
			if skipped(string(name)) && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth == 0 {
				b.Write(tok.Text())
				b.WriteByte(' ')
			}
		}
	}
}

// skipped reports whether a tag's contents carry no visible text.
func skipped(tag string) bool {
	return tag == "script" || tag == "style"
}
