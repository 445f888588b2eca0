// Package dto defines data transfer objects for the price feed API responses.
package dto

// DailySeriesResponse represents the JSON response from the daily_series endpoint.
// On failure the API answers status "error" with a code and message; code 404
// means the symbol has no data at all.
type DailySeriesResponse struct {
	Status  string `json:"status"`
	Code    int    `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Symbol  string `json:"symbol"`
	Values  []struct {
		Datetime string `json:"datetime"`
		Close    string `json:"close"`
	} `json:"values"`
}
