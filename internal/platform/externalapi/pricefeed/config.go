// Package pricefeed provides a client for the external daily price history API.
package pricefeed

import (
	"os"
	"time"
)

// Config holds configuration for the price feed API client.
type Config struct {
	APIKey  string        // API key for authentication
	BaseURL string        // Base URL for the API (e.g., "https://api.pricefeed.example.com")
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig loads price feed configuration from environment variables.
func LoadConfig() Config {
	return Config{
		APIKey:  os.Getenv("PRICE_FEED_API_KEY"),
		BaseURL: os.Getenv("PRICE_FEED_BASE_URL"),
		Timeout: 10 * time.Second,
	}
}
