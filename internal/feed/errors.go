package feed

import "errors"

var (
	// ErrClosed is returned by every operation after Close. Responses that
	// arrive after Close are dropped, not applied.
	ErrClosed = errors.New("feed closed")
	// ErrLoadInFlight is returned when a page load is already running;
	// the second call is suppressed, not queued.
	ErrLoadInFlight = errors.New("load already in flight")
	// ErrNoMore is returned by LoadMore when the store reported no further
	// pages.
	ErrNoMore = errors.New("no more pages")
)
