package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"findata_backend/internal/feature/assets/domain"
	"findata_backend/internal/feature/assets/domain/entity"
	"findata_backend/internal/feature/assets/transport/http/dto"
)

// MetricUsecase はメトリクス参照のユースケースインターフェースを定義します。
type MetricUsecase interface {
	GetMetric(ctx context.Context, symbol string) (entity.Metric, error)
	Compare(ctx context.Context, symbolA, symbolB string) (entity.Metric, entity.Metric, error)
}

// MetricHandler はメトリクス参照のHTTPリクエストを処理します。
type MetricHandler struct {
	uc MetricUsecase
}

// NewMetricHandler は新しい MetricHandler を作成します。
func NewMetricHandler(uc MetricUsecase) *MetricHandler {
	return &MetricHandler{uc: uc}
}

// Get は1シンボルのメトリクスを返すAPIです。
// 資産が未登録、またはメトリクスが未取り込みの場合は404を返します。
//
// エンドポイント: GET /metrics/:symbol
func (h *MetricHandler) Get(c *gin.Context) {
	symbol := c.Param("symbol")

	metric, err := h.uc.GetMetric(c.Request.Context(), symbol)
	if err != nil {
		h.writeError(c, symbol, err)
		return
	}

	c.JSON(http.StatusOK, dto.MetricDetail{
		Symbol:           symbol,
		LatestPrice:      metric.LatestPrice,
		ChangePercent24h: metric.ChangePercent24h,
		AveragePrice7d:   metric.AveragePrice7d,
	})
}

// Compare は2シンボルのメトリクスを並べて返すAPIです。
// どちらかのシンボルが欠けている場合、404のエラーメッセージにはそのシンボル名が含まれます。
//
// エンドポイント: GET /compare?asset1=BTC-USD&asset2=ETH-USD
func (h *MetricHandler) Compare(c *gin.Context) {
	asset1 := c.Query("asset1")
	asset2 := c.Query("asset2")
	if asset1 == "" || asset2 == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "asset1 and asset2 query parameters are required"})
		return
	}

	m1, m2, err := h.uc.Compare(c.Request.Context(), asset1, asset2)
	if err != nil {
		h.writeError(c, "", err)
		return
	}

	c.JSON(http.StatusOK, dto.CompareResponse{
		Asset1: dto.MetricResponse{
			LatestPrice:      m1.LatestPrice,
			ChangePercent24h: m1.ChangePercent24h,
			AveragePrice7d:   m1.AveragePrice7d,
		},
		Asset2: dto.MetricResponse{
			LatestPrice:      m2.LatestPrice,
			ChangePercent24h: m2.ChangePercent24h,
			AveragePrice7d:   m2.AveragePrice7d,
		},
	})
}

// writeError はドメインエラーを404に、それ以外を500にマッピングします。
// ドメインエラーのメッセージには対象シンボル名が含まれています。
func (h *MetricHandler) writeError(c *gin.Context, symbol string, err error) {
	if errors.Is(err, domain.ErrAssetNotFound) || errors.Is(err, domain.ErrMetricNotFound) {
		slog.Warn("metric lookup failed", "symbol", symbol, "error", err)
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
		return
	}
	slog.Error("metric lookup failed", "symbol", symbol, "error", err)
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal Server Error"})
}
