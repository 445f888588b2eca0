package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"findata_backend/internal/feature/assets/domain"
	"findata_backend/internal/feature/assets/domain/entity"
	"findata_backend/internal/feature/assets/transport/http/dto"
)

type mockMetricUsecase struct {
	getMetricFunc func(ctx context.Context, symbol string) (entity.Metric, error)
	compareFunc   func(ctx context.Context, symbolA, symbolB string) (entity.Metric, entity.Metric, error)
}

func (m *mockMetricUsecase) GetMetric(ctx context.Context, symbol string) (entity.Metric, error) {
	return m.getMetricFunc(ctx, symbol)
}

func (m *mockMetricUsecase) Compare(ctx context.Context, symbolA, symbolB string) (entity.Metric, entity.Metric, error) {
	return m.compareFunc(ctx, symbolA, symbolB)
}

func setupMetricRouter(uc MetricUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewMetricHandler(uc)
	r.GET("/metrics/:symbol", h.Get)
	r.GET("/compare", h.Compare)
	return r
}

func TestMetricHandler_Get(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		r := setupMetricRouter(&mockMetricUsecase{
			getMetricFunc: func(ctx context.Context, symbol string) (entity.Metric, error) {
				assert.Equal(t, "BTC-USD", symbol)
				return entity.Metric{LatestPrice: 47000, ChangePercent24h: -2.08, AveragePrice7d: 48785.71}, nil
			},
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/metrics/BTC-USD", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var got dto.MetricDetail
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "BTC-USD", got.Symbol)
		assert.Equal(t, 47000.0, got.LatestPrice)
		assert.Equal(t, -2.08, got.ChangePercent24h)
		assert.Equal(t, 48785.71, got.AveragePrice7d)
	})

	t.Run("unknown asset returns 404", func(t *testing.T) {
		r := setupMetricRouter(&mockMetricUsecase{
			getMetricFunc: func(ctx context.Context, symbol string) (entity.Metric, error) {
				return entity.Metric{}, fmt.Errorf("%w: %s", domain.ErrAssetNotFound, symbol)
			},
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/metrics/UNKNOWN", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusNotFound, w.Code)

		var got dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Contains(t, got.Error, "UNKNOWN")
	})

	t.Run("missing metric returns 404", func(t *testing.T) {
		r := setupMetricRouter(&mockMetricUsecase{
			getMetricFunc: func(ctx context.Context, symbol string) (entity.Metric, error) {
				return entity.Metric{}, fmt.Errorf("%w: %s", domain.ErrMetricNotFound, symbol)
			},
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/metrics/TSLA", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unexpected error returns generic 500", func(t *testing.T) {
		r := setupMetricRouter(&mockMetricUsecase{
			getMetricFunc: func(ctx context.Context, symbol string) (entity.Metric, error) {
				return entity.Metric{}, errors.New("db down")
			},
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/metrics/BTC-USD", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusInternalServerError, w.Code)
		// 内部エラーの詳細はレスポンスに含めない
		assert.JSONEq(t, `{"error": "Internal Server Error"}`, w.Body.String())
	})
}

func TestMetricHandler_Compare(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		r := setupMetricRouter(&mockMetricUsecase{
			compareFunc: func(ctx context.Context, symbolA, symbolB string) (entity.Metric, entity.Metric, error) {
				assert.Equal(t, "BTC-USD", symbolA)
				assert.Equal(t, "ETH-USD", symbolB)
				return entity.Metric{LatestPrice: 47000, ChangePercent24h: -2.08, AveragePrice7d: 48785.71},
					entity.Metric{LatestPrice: 3000, ChangePercent24h: 1.5, AveragePrice7d: 2950}, nil
			},
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/compare?asset1=BTC-USD&asset2=ETH-USD", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var got dto.CompareResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, 47000.0, got.Asset1.LatestPrice)
		assert.Equal(t, 3000.0, got.Asset2.LatestPrice)
	})

	t.Run("missing query parameters return 400", func(t *testing.T) {
		tests := []struct {
			name string
			path string
		}{
			{name: "no parameters", path: "/compare"},
			{name: "asset2 missing", path: "/compare?asset1=BTC-USD"},
			{name: "asset1 missing", path: "/compare?asset2=ETH-USD"},
		}

		r := setupMetricRouter(&mockMetricUsecase{
			compareFunc: func(ctx context.Context, symbolA, symbolB string) (entity.Metric, entity.Metric, error) {
				t.Fatal("usecase should not be called when parameters are missing")
				return entity.Metric{}, entity.Metric{}, nil
			},
		})

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				w := httptest.NewRecorder()
				req := httptest.NewRequest(http.MethodGet, tt.path, nil)
				r.ServeHTTP(w, req)

				assert.Equal(t, http.StatusBadRequest, w.Code)
			})
		}
	})

	t.Run("missing symbol is named in 404", func(t *testing.T) {
		r := setupMetricRouter(&mockMetricUsecase{
			compareFunc: func(ctx context.Context, symbolA, symbolB string) (entity.Metric, entity.Metric, error) {
				return entity.Metric{}, entity.Metric{}, fmt.Errorf("%w: %s", domain.ErrAssetNotFound, symbolB)
			},
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/compare?asset1=BTC-USD&asset2=UNKNOWN", nil)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusNotFound, w.Code)

		var got dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Contains(t, got.Error, "UNKNOWN", "error should name the missing symbol")
	})
}
