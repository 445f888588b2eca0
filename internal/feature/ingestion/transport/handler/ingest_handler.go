// Package handler はingestionフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"findata_backend/internal/feature/ingestion/usecase"
)

// IngestUsecase は取り込みバッチのユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type IngestUsecase interface {
	IngestAll(ctx context.Context, symbols []string) []usecase.SymbolResult
}

// IngestHandler は取り込みバッチ起動のHTTPリクエストを処理します。
type IngestHandler struct {
	uc IngestUsecase
}

// NewIngestHandler は新しい IngestHandler を作成します。
func NewIngestHandler(uc IngestUsecase) *IngestHandler {
	return &IngestHandler{uc: uc}
}

// ingestResponse は取り込みAPIのレスポンスです。
type ingestResponse struct {
	Message string `json:"message"`
}

// Ingest はデフォルトのシンボルセットで取り込みバッチを1回実行するAPIです。
// シンボル単位の失敗はパイプライン内で完結するため、バッチが最後まで走れば200を返します。
//
// エンドポイント: POST /ingest
func (h *IngestHandler) Ingest(c *gin.Context) {
	results := h.uc.IngestAll(c.Request.Context(), usecase.DefaultSymbols)
	for _, r := range results {
		slog.Info("ingestion result", "symbol", r.Symbol, "state", string(r.State), "attempts", r.Attempts)
	}
	c.JSON(http.StatusOK, ingestResponse{Message: "Market data ingestion triggered"})
}
