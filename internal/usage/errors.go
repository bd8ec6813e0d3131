package usage

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrAuthRequired    = errors.New("authentication required")
	ErrNotFound        = errors.New("data not found")
	ErrMalformedMarkup = errors.New("malformed markup")
	ErrInvalidNumber   = errors.New("invalid number")
	ErrTransport       = errors.New("transport failure")
)

// AuthRequiredError is returned when the fetched page is a redirect or login
// wall instead of the usage page. The site answers those with HTTP 200, so
// only the page content tells them apart.
type AuthRequiredError struct{}

func (e *AuthRequiredError) Error() string {
	return strings.Join([]string{
		"authentication required. The website requires:",
		"  - access from the mobile network of your plan, OR",
		"  - a valid login session (pass its cookies with --cookie)",
		"",
		"To test locally, use: --file <saved-html-file>",
	}, "\n")
}

func (e *AuthRequiredError) Is(target error) bool {
	return target == ErrAuthRequired
}

// NotFoundError reports an expected element that is missing from the page.
type NotFoundError struct {
	Field  string
	Detail string
}

func (e *NotFoundError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("data not found in HTML: %s", e.Detail)
	}
	return fmt.Sprintf("data not found in HTML: %s not found", e.Field)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// MarkupError reports a document that could not be parsed or a selector that
// could not be compiled.
type MarkupError struct {
	Selector string
	Err      error
}

func (e *MarkupError) Error() string {
	if e.Selector == "" {
		return fmt.Sprintf("failed to parse HTML: %v", e.Err)
	}
	return fmt.Sprintf("invalid selector %q: %v", e.Selector, e.Err)
}

func (e *MarkupError) Unwrap() error {
	return e.Err
}

func (e *MarkupError) Is(target error) bool {
	return target == ErrMalformedMarkup
}

// NumberError carries the literal page text that failed to parse, never the
// comma-substituted form.
type NumberError struct {
	Text string
	Err  error
}

func (e *NumberError) Error() string {
	return fmt.Sprintf("invalid number value %q: %v", e.Text, e.Err)
}

func (e *NumberError) Unwrap() error {
	return e.Err
}

func (e *NumberError) Is(target error) bool {
	return target == ErrInvalidNumber
}

// TransportError wraps failures of a page source. It never originates in the
// parser.
type TransportError struct {
	Source     string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to fetch data from %s: HTTP %d: %v", e.Source, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("failed to fetch data from %s: %v", e.Source, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}
