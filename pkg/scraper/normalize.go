package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// NormalizeLabel trims a table label, drops one trailing colon (ASCII or full-width)
// and collapses internal whitespace runs into single spaces.
func NormalizeLabel(raw string) string {
	text := strings.TrimSpace(raw)
	if t, ok := strings.CutSuffix(text, ":"); ok {
		text = t
	} else {
		text = strings.TrimSuffix(text, "：")
	}
	return strings.Join(strings.Fields(text), " ")
}

// cellText joins the trimmed, non-empty text nodes below sel with sep.
// With sep "\n" every <br> or block boundary ends up on its own line.
func cellText(sel *goquery.Selection, sep string) string {
	return strings.Join(textFragments(sel), sep)
}

func textFragments(sel *goquery.Selection) []string {
	var out []string
	sel.Contents().Each(func(_ int, s *goquery.Selection) {
		switch goquery.NodeName(s) {
		case "#text":
			if t := strings.TrimSpace(s.Text()); t != "" {
				out = append(out, t)
			}
		case "#comment", "script", "style":
			// not rendered
		default:
			out = append(out, textFragments(s)...)
		}
	})
	return out
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// joinLines appends next to existing, separated by a newline only when both are non-empty
func joinLines(existing, next string) string {
	if existing != "" && next != "" {
		return strings.TrimSpace(existing + "\n" + next)
	}
	return strings.TrimSpace(existing + next)
}
