// Package dto defines data transfer objects for the assets HTTP API.
package dto

// MetricResponse はメトリクスのレスポンスDTOです。
type MetricResponse struct {
	LatestPrice      float64 `json:"latest_price"`       // 最新価格
	ChangePercent24h float64 `json:"change_percent_24h"` // 24時間変化率
	AveragePrice7d   float64 `json:"average_price_7d"`   // 7日平均価格
}

// AssetItem represents an asset and its metrics in the list response.
// Metrics is null for assets that have not been ingested yet.
type AssetItem struct {
	Symbol  string          `json:"symbol"`
	Name    string          `json:"name"`
	Metrics *MetricResponse `json:"metrics"`
}

// MetricDetail is the response for a single-symbol metric lookup.
type MetricDetail struct {
	Symbol           string  `json:"symbol"`
	LatestPrice      float64 `json:"latest_price"`
	ChangePercent24h float64 `json:"change_percent_24h"`
	AveragePrice7d   float64 `json:"average_price_7d"`
}

// CompareResponse holds two metric sets side by side.
type CompareResponse struct {
	Asset1 MetricResponse `json:"asset1"`
	Asset2 MetricResponse `json:"asset2"`
}

// MessageResponse is a generic success message payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is a generic error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}
