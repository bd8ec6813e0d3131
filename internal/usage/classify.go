package usage

type PageKind int

const (
	PageUsable PageKind = iota
	PageAuthRequired
)

func (k PageKind) String() string {
	switch k {
	case PageUsable:
		return "usable"
	case PageAuthRequired:
		return "auth required"
	default:
		return "unknown"
	}
}

// Classify tells the usage page apart from the redirect wall by its visible
// text; both are served with HTTP 200.
func Classify(doc Node) (PageKind, error) {
	text, err := bodyText(doc)
	if err != nil {
		return PageUsable, err
	}
	if matchesAnyRule(fold(text), authPhrases) {
		return PageAuthRequired, nil
	}
	return PageUsable, nil
}

func bodyText(doc Node) (string, error) {
	body, ok, err := findFirst(doc, "body")
	if err != nil {
		return "", err
	}
	if !ok {
		return doc.Text(), nil
	}
	return body.Text(), nil
}
