// Package handler はsummaryフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SummaryUsecase はサマリー生成のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type SummaryUsecase interface {
	GenerateSummary(ctx context.Context) (string, error)
}

// SummaryHandler はサマリー生成のHTTPリクエストを処理します。
type SummaryHandler struct {
	uc SummaryUsecase
}

// NewSummaryHandler は新しい SummaryHandler を作成します。
func NewSummaryHandler(uc SummaryUsecase) *SummaryHandler {
	return &SummaryHandler{uc: uc}
}

// summaryResponse はサマリーAPIのレスポンスです。
type summaryResponse struct {
	Summary string `json:"summary"`
}

// errorResponse はサマリーAPIのエラーレスポンスです。
type errorResponse struct {
	Error string `json:"error"`
}

// Get は全資産のメトリクスから自然言語のダイジェストを返すAPIです。
// メトリクスが1件もない場合は固定の案内文を返します。
//
// エンドポイント: GET /summary
func (h *SummaryHandler) Get(c *gin.Context) {
	summary, err := h.uc.GenerateSummary(c.Request.Context())
	if err != nil {
		slog.Error("failed to generate summary", "error", err)
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
		return
	}
	c.JSON(http.StatusOK, summaryResponse{Summary: summary})
}
