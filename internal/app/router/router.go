// Package router はアプリケーションのHTTPルートを定義します。
package router

import (
	"github.com/gin-gonic/gin"

	assethandler "findata_backend/internal/feature/assets/transport/handler"
	ingesthandler "findata_backend/internal/feature/ingestion/transport/handler"
	summaryhandler "findata_backend/internal/feature/summary/transport/handler"
	platformhandler "findata_backend/internal/platform/http/handler"
)

// NewRouter は全エンドポイントを登録したginルーターを生成します。
func NewRouter(assets *assethandler.AssetHandler, metrics *assethandler.MetricHandler,
	ingest *ingesthandler.IngestHandler, summary *summaryhandler.SummaryHandler) *gin.Engine {
	r := gin.Default()

	// 導通確認用
	r.GET("/healthz", platformhandler.Health)

	// 資産一覧とメトリクス参照
	r.GET("/assets", assets.List)
	r.GET("/metrics/:symbol", metrics.Get)
	r.GET("/compare", metrics.Compare)

	// サマリー生成
	r.GET("/summary", summary.Get)

	// 取り込みバッチ起動とデータベースクリア
	r.POST("/ingest", ingest.Ingest)
	r.DELETE("/clear_db", assets.Clear)

	return r
}
