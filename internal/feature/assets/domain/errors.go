// Package domain defines domain-level errors for the assets feature.
package domain

import "errors"

// Domain errors for asset queries.
// These errors represent business logic failures and should be handled appropriately by upper layers.
var (
	// ErrAssetNotFound indicates that no asset exists for the given symbol.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrMetricNotFound indicates that the asset exists but has no ingested metric yet.
	ErrMetricNotFound = errors.New("metrics not available")
)
