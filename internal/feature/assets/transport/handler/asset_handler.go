// Package handler はassetsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"findata_backend/internal/feature/assets/domain/entity"
	"findata_backend/internal/feature/assets/transport/http/dto"
)

// AssetUsecase は資産データ操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type AssetUsecase interface {
	ListAssets(ctx context.Context) ([]entity.AssetWithMetric, error)
	ClearAll(ctx context.Context) error
}

// AssetHandler は資産一覧とデータベースクリアのHTTPリクエストを処理します。
type AssetHandler struct {
	uc AssetUsecase
}

// NewAssetHandler は新しい AssetHandler を作成します。
func NewAssetHandler(uc AssetUsecase) *AssetHandler {
	return &AssetHandler{uc: uc}
}

// List は全資産とメトリクスの一覧を返すAPIです。
// メトリクス未取り込みの資産ではmetricsはnullになります。
//
// エンドポイント: GET /assets
func (h *AssetHandler) List(c *gin.Context) {
	assets, err := h.uc.ListAssets(c.Request.Context())
	if err != nil {
		slog.Error("failed to list assets", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal Server Error"})
		return
	}

	out := make([]dto.AssetItem, 0, len(assets))
	for _, a := range assets {
		item := dto.AssetItem{Symbol: a.Asset.Symbol, Name: a.Asset.Name}
		if a.Metric != nil {
			item.Metrics = &dto.MetricResponse{
				LatestPrice:      a.Metric.LatestPrice,
				ChangePercent24h: a.Metric.ChangePercent24h,
				AveragePrice7d:   a.Metric.AveragePrice7d,
			}
		}
		out = append(out, item)
	}
	c.JSON(http.StatusOK, out)
}

// Clear は全資産と全メトリクスを削除するAPIです。
//
// エンドポイント: DELETE /clear_db
func (h *AssetHandler) Clear(c *gin.Context) {
	if err := h.uc.ClearAll(c.Request.Context()); err != nil {
		slog.Error("failed to clear database", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to clear database."})
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Database cleared successfully."})
}
