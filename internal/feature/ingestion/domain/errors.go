// Package domain defines domain-level errors for the ingestion feature.
package domain

import "errors"

// Error kinds the ingestion pipeline reacts to.
// ErrNoData is a terminal, expected outcome; everything else is retryable.
var (
	// ErrNoData indicates that the provider has no price records for a symbol.
	// Returned for delisted or mistyped symbols; distinct from transport failures.
	ErrNoData = errors.New("no price data for symbol")

	// ErrNotEnoughData indicates that fewer than two closing prices were available,
	// so no 24h change can be computed.
	ErrNotEnoughData = errors.New("not enough closing prices to compute metrics")

	// ErrZeroBaseline indicates that the previous closing price is zero,
	// which would make the 24h percent change undefined.
	ErrZeroBaseline = errors.New("previous closing price is zero")
)
