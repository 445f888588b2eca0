package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	assetadapters "findata_backend/internal/feature/assets/adapters"
	ingestusecase "findata_backend/internal/feature/ingestion/usecase"
	"findata_backend/internal/platform/cache"
	infradb "findata_backend/internal/platform/db"
	"findata_backend/internal/platform/externalapi/pricefeed"
	platformhttp "findata_backend/internal/platform/http"
	infraredis "findata_backend/internal/platform/redis"
	"findata_backend/internal/shared/ratelimiter"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("[INFO] .env not found; using system environment variables")
	}

	db := infradb.OpenDB()

	// サーバーと同じRedisを使っている場合、取り込み後のキャッシュを無効化するためラップする
	rdb, err := infraredis.NewRedisClient()
	if err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache invalidation.")
		rdb = nil
	}

	assetRepo := assetadapters.NewAssetRepository(db)
	store := cache.NewCachingAssetRepository(rdb, 5*time.Minute, assetRepo, "assets")

	pfCfg := pricefeed.LoadConfig()
	priceSource := pricefeed.NewClient(pfCfg, platformhttp.NewHTTPClient(pfCfg.Timeout))

	uc := ingestusecase.NewIngestUsecase(priceSource, store,
		ratelimiter.NewRateLimiter(8, time.Minute))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// 引数でシンボルを指定できる。未指定ならデフォルトのシンボルセットを使う
	symbols := os.Args[1:]
	if len(symbols) == 0 {
		symbols = ingestusecase.DefaultSymbols
	}

	failed := 0
	for _, r := range uc.IngestAll(ctx, symbols) {
		log.Printf("%s: %s (attempts=%d)", r.Symbol, r.State, r.Attempts)
		if r.State == ingestusecase.StateFailed {
			failed++
		}
	}
	if failed > 0 {
		log.Printf("ingest finished with %d failed symbol(s)", failed)
		os.Exit(1)
	}
	log.Println("ingest ok")
}
