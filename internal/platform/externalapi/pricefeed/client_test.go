package pricefeed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"findata_backend/internal/feature/ingestion/domain"
)

func testConfig(baseURL string) Config {
	return Config{
		APIKey:  "test-key",
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
	}
}

func testWindow() (time.Time, time.Time) {
	end := time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)
	return end.AddDate(0, 0, -15), end
}

// TestClient_GetDailySeries_Success は正常応答が日付昇順で返ることを検証します。
func TestClient_GetDailySeries_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/daily_series", r.URL.Path)

		q := r.URL.Query()
		assert.Equal(t, "BTC-USD", q.Get("symbol"))
		assert.Equal(t, "1day", q.Get("interval"))
		assert.Equal(t, "2024-01-01", q.Get("start_date"))
		assert.Equal(t, "2024-01-16", q.Get("end_date"))
		assert.Equal(t, "test-key", q.Get("apikey"))

		w.Header().Set("Content-Type", "application/json")
		// プロバイダーは新しい順で返す
		_, _ = w.Write([]byte(`{
			"status": "ok",
			"symbol": "BTC-USD",
			"values": [
				{"datetime": "2024-01-15", "close": "47000.0"},
				{"datetime": "2024-01-14", "close": "48000.0"},
				{"datetime": "2024-01-13 00:00:00", "close": "49000.0"}
			]
		}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), srv.Client())
	start, end := testWindow()

	prices, err := client.GetDailySeries(context.Background(), "BTC-USD", start, end)
	require.NoError(t, err)
	require.Len(t, prices, 3)

	assert.Equal(t, 49000.0, prices[0].Close)
	assert.Equal(t, 48000.0, prices[1].Close)
	assert.Equal(t, 47000.0, prices[2].Close)
	assert.True(t, prices[0].Date.Before(prices[1].Date), "prices should be ascending by date")
	assert.True(t, prices[1].Date.Before(prices[2].Date), "prices should be ascending by date")
}

// TestClient_GetDailySeries_NoData はプロバイダーのデータなし応答がErrNoDataになることを検証します。
func TestClient_GetDailySeries_NoData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{
			name: "error code 404",
			body: `{"status": "error", "code": 404, "message": "symbol not found"}`,
		},
		{
			name: "empty values",
			body: `{"status": "ok", "symbol": "BTC-USD", "values": []}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient(testConfig(srv.URL), srv.Client())
			start, end := testWindow()

			_, err := client.GetDailySeries(context.Background(), "UNKNOWN", start, end)
			assert.ErrorIs(t, err, domain.ErrNoData)
			assert.Contains(t, err.Error(), "UNKNOWN")
		})
	}
}

// TestClient_GetDailySeries_ProviderError はデータなし以外のプロバイダーエラーが
// ErrNoDataにならず通常のエラーで返ることを検証します。
func TestClient_GetDailySeries_ProviderError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status": "error", "code": 429, "message": "rate limit exceeded"}`))
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), srv.Client())
	start, end := testWindow()

	_, err := client.GetDailySeries(context.Background(), "BTC-USD", start, end)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNoData)
	assert.Contains(t, err.Error(), "rate limit exceeded")
}

func TestClient_GetDailySeries_HTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), srv.Client())
	start, end := testWindow()

	_, err := client.GetDailySeries(context.Background(), "BTC-USD", start, end)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNoData)
	assert.Contains(t, err.Error(), "500")
}

func TestClient_GetDailySeries_MalformedBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "invalid json", body: `{invalid`},
		{name: "unparseable close", body: `{"status":"ok","values":[{"datetime":"2024-01-15","close":"not-a-number"}]}`},
		{name: "unparseable datetime", body: `{"status":"ok","values":[{"datetime":"Jan 15","close":"47000"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient(testConfig(srv.URL), srv.Client())
			start, end := testWindow()

			_, err := client.GetDailySeries(context.Background(), "BTC-USD", start, end)
			assert.Error(t, err)
		})
	}
}
