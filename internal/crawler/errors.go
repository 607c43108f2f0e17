package crawler

import (
	"errors"
	"fmt"
)

// ErrNoMoreProducts is returned for a page that holds no product cards. It marks the end of
// the catalog rather than a failure.
var ErrNoMoreProducts = errors.New("no more products")

// ErrInvalidLayout is returned when a Layout names a line position it can never hold.
var ErrInvalidLayout = errors.New("invalid layout")

// FetchError reports a page that could not be downloaded. StatusCode is 0 when the request
// never got a response.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// LayoutMismatchError reports a card whose text does not split into the expected segments.
type LayoutMismatchError struct {
	Card int
	Got  int
	Want int
}

func (e *LayoutMismatchError) Error() string {
	return fmt.Sprintf("card %d: got %d text segments, want %d", e.Card, e.Got, e.Want)
}
