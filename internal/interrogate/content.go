package interrogate

import (
	"strings"

	"golang.org/x/net/html"
)

// Extracted page content is truncated to this many characters before being
// wrapped in an evidence record.
const maxContentChars = 2000

// ExtractContent extracts visible text from raw HTML: script, style,
// noscript and iframe subtrees are skipped, whitespace is collapsed, and
// the result is truncated to maxContentChars.
func ExtractContent(rawHTML string) string {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	text := strings.Join(strings.Fields(buf.String()), " ")
	if len(text) > maxContentChars {
		text = text[:maxContentChars]
	}
	return text
}
