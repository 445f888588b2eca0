package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"findata_backend/internal/app/router"
	assetadapters "findata_backend/internal/feature/assets/adapters"
	assethandler "findata_backend/internal/feature/assets/transport/handler"
	assetusecase "findata_backend/internal/feature/assets/usecase"
	ingesthandler "findata_backend/internal/feature/ingestion/transport/handler"
	ingestusecase "findata_backend/internal/feature/ingestion/usecase"
	"findata_backend/internal/feature/summary/adapters/gemini"
	summaryhandler "findata_backend/internal/feature/summary/transport/handler"
	summaryusecase "findata_backend/internal/feature/summary/usecase"
	"findata_backend/internal/platform/cache"
	infradb "findata_backend/internal/platform/db"
	"findata_backend/internal/platform/externalapi/pricefeed"
	platformhttp "findata_backend/internal/platform/http"
	infraredis "findata_backend/internal/platform/redis"
	"findata_backend/internal/shared/ratelimiter"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	assetRepo := assetadapters.NewAssetRepository(db)

	// Redisキャッシュでラップ
	cachedRepo := cache.NewCachingAssetRepository(rdb, 5*time.Minute, assetRepo, "assets")

	// 外部プロバイダー
	pfCfg := pricefeed.LoadConfig()
	priceSource := pricefeed.NewClient(pfCfg, platformhttp.NewHTTPClient(pfCfg.Timeout))

	// Summarizer（認証情報がない環境でも起動自体は継続する）
	var summarizer summaryusecase.Summarizer
	if g, err := gemini.NewGeminiSummarizer(context.Background()); err != nil {
		log.Println("[WARN] Gemini unavailable. /summary will return errors:", err)
	} else {
		summarizer = g
	}

	// Usecase
	assetUC := assetusecase.NewAssetUsecase(cachedRepo)
	ingestUC := ingestusecase.NewIngestUsecase(priceSource, cachedRepo,
		ratelimiter.NewRateLimiter(8, time.Minute))
	summaryUC := summaryusecase.NewSummaryUsecase(cachedRepo, summarizer)

	// Handler
	assetH := assethandler.NewAssetHandler(assetUC)
	metricH := assethandler.NewMetricHandler(assetUC)
	ingestH := ingesthandler.NewIngestHandler(ingestUC)
	summaryH := summaryhandler.NewSummaryHandler(summaryUC)

	// ルータ生成
	r := router.NewRouter(assetH, metricH, ingestH, summaryH)

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
