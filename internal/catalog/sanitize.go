package catalog

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Tags accepted by the messaging platform's HTML parse mode. Anything else in
// a product description would make the whole send fail, so unsupported tags
// are unwrapped at load time and only their text survives.
var allowedTags = map[string]bool{
	"b": true, "strong": true,
	"i": true, "em": true,
	"u": true, "ins": true,
	"s": true, "strike": true, "del": true,
	"a":          true,
	"code":       true,
	"pre":        true,
	"span":       true,
	"tg-spoiler": true,
	"blockquote": true,
}

// SanitizeMarkup strips markup the platform rejects while keeping the
// supported inline tags intact. Plain text passes through untouched.
func SanitizeMarkup(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}

	// Unwrap one disallowed element per pass; replacing a node invalidates
	// selections over its subtree, so restart the scan after each rewrite.
	for {
		replaced := false
		doc.Find("*").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			name := goquery.NodeName(sel)
			if name == "html" || name == "head" || name == "body" || allowedTags[name] {
				return true
			}
			inner, err := sel.Html()
			if err != nil {
				sel.Remove()
			} else {
				sel.ReplaceWithHtml(inner)
			}
			replaced = true
			return false
		})
		if !replaced {
			break
		}
	}

	out, err := doc.Find("body").Html()
	if err != nil {
		return s
	}
	return out
}
