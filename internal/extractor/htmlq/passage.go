package htmlq

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/lintahlo/potential-backend/internal/textutil"
)

// The viewer renders the passage in the block immediately after an empty
// spacer div. The spacer's class is the only stable landmark in the layout.
const passageMarkerClass = "my-6"

// extractPassage walks the document for the empty marker div and returns the
// normalized paragraph text of its next sibling block. Pages without the
// marker (question-only items) yield "".
func extractPassage(doc string) string {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return ""
	}

	marker := findMarkerDiv(root)
	if marker == nil {
		return ""
	}

	for sib := marker.NextSibling; sib != nil; sib = sib.NextSibling {
		if sib.Type != html.ElementNode {
			continue
		}
		var b strings.Builder
		collectParagraphText(&b, sib)
		if text := textutil.Normalize(b.String()); text != "" {
			return text
		}
		// First element sibling only; an empty block means no passage.
		return ""
	}
	return ""
}

// findMarkerDiv locates the first childless div carrying the marker class.
func findMarkerDiv(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && strings.EqualFold(n.Data, "div") &&
		hasClass(n, passageMarkerClass) && n.FirstChild == nil {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findMarkerDiv(c); found != nil {
			return found
		}
	}
	return nil
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

// collectParagraphText gathers the text of every <p> descendant, separating
// paragraphs with a space. Figure markup inside the block is skipped; only
// its caption paragraphs survive.
func collectParagraphText(b *strings.Builder, n *html.Node) {
	if n.Type == html.ElementNode && strings.EqualFold(n.Data, "p") {
		collectText(b, n)
		b.WriteString(" ")
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectParagraphText(b, c)
	}
}

func collectText(b *strings.Builder, n *html.Node) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(b, c)
	}
}
