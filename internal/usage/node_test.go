package usage

// fakeNode is an in-memory Node; children are keyed by the exact selector
// the extractors query.
type fakeNode struct {
	text     string
	attrs    map[string]string
	children map[string][]*fakeNode
	findErr  error
}

func (n *fakeNode) Find(selector string) ([]Node, error) {
	if n.findErr != nil {
		return nil, n.findErr
	}
	out := make([]Node, 0, len(n.children[selector]))
	for _, c := range n.children[selector] {
		out = append(out, c)
	}
	return out, nil
}

func (n *fakeNode) Text() string {
	return n.text
}

func (n *fakeNode) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

func fakeSection(id, remaining, total string) *fakeNode {
	s := &fakeNode{
		text:     remaining + " " + total,
		children: map[string][]*fakeNode{},
	}
	if id != "" {
		s.attrs = map[string]string{"id": id}
	}
	if remaining != "" {
		s.children[remainingSelector] = []*fakeNode{{text: remaining}}
	}
	if total != "" {
		s.children[totalSelector] = []*fakeNode{{text: total}}
	}
	return s
}

func fakePage(title string, sections ...*fakeNode) *fakeNode {
	doc := &fakeNode{
		text:     title,
		children: map[string][]*fakeNode{},
	}
	if title != "" {
		doc.children[titleSelector] = []*fakeNode{{text: title}}
	}
	doc.children[sectionSelector] = sections
	return doc
}
