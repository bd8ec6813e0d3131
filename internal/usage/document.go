package usage

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// Node is the slice of a parsed HTML tree the extractors rely on.
type Node interface {
	// Find returns the descendants matching selector in document order.
	Find(selector string) ([]Node, error)
	// Text returns the concatenated text of the node and its descendants.
	Text() string
	Attr(name string) (string, bool)
}

// ParseDocument parses an HTML page into a goquery-backed Node.
func ParseDocument(html string) (Node, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &MarkupError{Err: err}
	}
	return selectionNode{sel: doc.Selection}, nil
}

type selectionNode struct {
	sel *goquery.Selection
}

func (n selectionNode) Find(selector string) ([]Node, error) {
	// goquery silently matches nothing for a selector it cannot compile.
	if _, err := cascadia.Compile(selector); err != nil {
		return nil, &MarkupError{Selector: selector, Err: err}
	}
	found := n.sel.Find(selector)
	out := make([]Node, 0, found.Length())
	found.Each(func(_ int, el *goquery.Selection) {
		out = append(out, selectionNode{sel: el})
	})
	return out, nil
}

func (n selectionNode) Text() string {
	return n.sel.Text()
}

func (n selectionNode) Attr(name string) (string, bool) {
	return n.sel.Attr(name)
}

func findFirst(n Node, selector string) (Node, bool, error) {
	nodes, err := n.Find(selector)
	if err != nil {
		return nil, false, err
	}
	if len(nodes) == 0 {
		return nil, false, nil
	}
	return nodes[0], true, nil
}
