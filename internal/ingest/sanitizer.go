package ingest

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// SanitizeHTML reduces raw markup to the visible text of the page: script,
// style and noscript subtrees are dropped, the remaining text nodes are
// flattened to one line each, lines are trimmed and empty lines removed.
func SanitizeHTML(markup string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", err
	}

	// Removal must happen before text flattening so script and style bodies
	// never leak into the visible text stream.
	doc.Find("script, style, noscript").Remove()

	var lines []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			for _, line := range strings.Split(n.Data, "\n") {
				if line = strings.TrimSpace(line); line != "" {
					lines = append(lines, line)
				}
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}

	return strings.Join(lines, "\n"), nil
}

// CleanLines trims every line of s, drops lines that become empty and joins
// the survivors with a single newline.
func CleanLines(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
