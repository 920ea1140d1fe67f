// Package ingest scrapes quote listing pages and loads them into the store.
package ingest

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"golang.org/x/net/html"

	"github.com/rpggio/quotedesk/internal/domain/quote"
)

// Page is one parsed listing page.
type Page struct {
	Quotes []quote.Input
	// NextPath is the href of the "next" pager link, empty on the last page.
	NextPath string
}

// ParsePage extracts every div.quote block and the next-page link.
func ParsePage(r io.Reader) (*Page, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}

	page := &Page{Quotes: []quote.Input{}}
	for n := range doc.Descendants() {
		switch {
		case isElement(n, "div", "quote"):
			page.Quotes = append(page.Quotes, parseQuote(n))
		case isElement(n, "li", "next"):
			if a := firstElement(n, "a", ""); a != nil {
				page.NextPath = attr(a, "href")
			}
		}
	}
	return page, nil
}

func parseQuote(n *html.Node) quote.Input {
	in := quote.Input{Tags: []string{}}
	if text := firstElement(n, "span", "text"); text != nil {
		in.Text = textContent(text)
	}
	if author := firstElement(n, "small", "author"); author != nil {
		in.Author = textContent(author)
	}
	for d := range n.Descendants() {
		if isElement(d, "a", "tag") {
			in.Tags = append(in.Tags, textContent(d))
		}
	}
	return in
}

func firstElement(n *html.Node, tag, class string) *html.Node {
	for d := range n.Descendants() {
		if isElement(d, tag, class) {
			return d
		}
	}
	return nil
}

// isElement matches tag and, when class is set, one of the node's classes.
func isElement(n *html.Node, tag, class string) bool {
	if n.Type != html.ElementNode || n.Data != tag {
		return false
	}
	if class == "" {
		return true
	}
	return slices.Contains(strings.Fields(attr(n, "class")), class)
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var b strings.Builder
	for d := range n.Descendants() {
		if d.Type == html.TextNode {
			b.WriteString(d.Data)
		}
	}
	return strings.TrimSpace(b.String())
}
