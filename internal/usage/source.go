package usage

import "context"

// Source returns the raw HTML of the usage page.
type Source interface {
	Name() string
	Fetch(context.Context) (string, error)
	Close() error
}
