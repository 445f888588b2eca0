package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	assetentity "findata_backend/internal/feature/assets/domain/entity"
	"findata_backend/internal/feature/ingestion/domain"
	"findata_backend/internal/feature/ingestion/domain/entity"
	"findata_backend/internal/shared/ratelimiter"
)

const (
	// maxAttempts はシンボルごとの試行回数の上限です（初回を含む）。
	maxAttempts = 3
	// historyWindowDays は取得する履歴ウィンドウの日数です。週末や休場日を
	// またいでも7営業日分の終値が揃うよう、余裕を持たせています。
	historyWindowDays = 15
	// defaultRetryBackoff は再試行の間の固定待機時間です。
	defaultRetryBackoff = 2 * time.Second
)

// DefaultSymbols はシンボル指定なしで取り込みを起動したときの対象です。
var DefaultSymbols = []string{"BTC-USD", "ETH-USD", "TSLA"}

// PriceSource は外部プロバイダーから終値系列を取得するインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type PriceSource interface {
	// GetDailySeries は指定期間の日次終値を日付昇順で返します。
	// データが存在しないシンボルでは domain.ErrNoData を返します。
	GetDailySeries(ctx context.Context, symbol string, start, end time.Time) ([]entity.ClosingPrice, error)
}

// AssetStore は資産とメトリクスの永続化レイヤーを抽象化します。
type AssetStore interface {
	// UpsertAsset は未登録のシンボルを作成し、登録済みなら既存の資産をそのまま返します。
	UpsertAsset(ctx context.Context, symbol, name string) (assetentity.Asset, error)
	// UpsertMetric は資産のメトリクス行を作成または上書きします。
	UpsertMetric(ctx context.Context, assetID uint, snapshot assetentity.MetricSnapshot) error
}

// SymbolState はバッチ内の1シンボルの終了状態です。
type SymbolState string

const (
	// StateDone はメトリクスがストレージに反映されたことを示します。
	StateDone SymbolState = "DONE"
	// StateSkipped はプロバイダーにデータがなく、エラーではない終了を示します。
	StateSkipped SymbolState = "SKIPPED"
	// StateFailed は再試行を使い切って失敗したことを示します。
	StateFailed SymbolState = "FAILED"
)

// SymbolResult は1シンボルの取り込み結果です。
type SymbolResult struct {
	Symbol   string
	State    SymbolState
	Attempts int
	Err      error
}

// IngestUsecase は外部プロバイダーからデータを取得し、メトリクスを計算して
// データベースに永続化するユースケースを定義します。
type IngestUsecase struct {
	source       PriceSource
	store        AssetStore
	rateLimiter  ratelimiter.RateLimiterInterface
	retryBackoff time.Duration
}

// NewIngestUsecase は新しい IngestUsecase を作成します。
func NewIngestUsecase(source PriceSource, store AssetStore, rateLimiter ratelimiter.RateLimiterInterface) *IngestUsecase {
	return &IngestUsecase{
		source:       source,
		store:        store,
		rateLimiter:  rateLimiter,
		retryBackoff: defaultRetryBackoff,
	}
}

// ingestOne は1シンボル分の fetch → compute → persist を1回実行します。
// 再試行の単位はこの関数全体です。
func (iu *IngestUsecase) ingestOne(ctx context.Context, symbol string) error {
	// タイムゾーンのずれを許容するため、終了日は明日に設定
	end := time.Now().AddDate(0, 0, 1)
	start := end.AddDate(0, 0, -historyWindowDays)

	prices, err := iu.source.GetDailySeries(ctx, symbol, start, end)
	if err != nil {
		return err
	}

	snapshot, err := ComputeMetrics(prices, AverageWindowDays)
	if err != nil {
		return err
	}

	asset, err := iu.store.UpsertAsset(ctx, symbol, symbol)
	if err != nil {
		return err
	}
	return iu.store.UpsertMetric(ctx, asset.ID, snapshot)
}

// IngestAll は全シンボルを順番に処理し、シンボルごとの終了状態を返します。
// 1つのシンボルの失敗が残りのシンボルの処理を中断することはありません。
// 再試行可能なエラーはこの層で完結し、呼び出し元にはエラーとして伝播しません。
func (iu *IngestUsecase) IngestAll(ctx context.Context, symbols []string) []SymbolResult {
	results := make([]SymbolResult, 0, len(symbols))
	for _, s := range symbols {
		results = append(results, iu.ingestWithRetry(ctx, s))
	}
	return results
}

// ingestWithRetry は1シンボルを最大 maxAttempts 回試行し、終了状態を返します。
func (iu *IngestUsecase) ingestWithRetry(ctx context.Context, symbol string) SymbolResult {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		iu.rateLimiter.WaitIfNeeded()

		err := iu.ingestOne(ctx, symbol)
		if err == nil {
			slog.Info("symbol ingested", "symbol", symbol, "attempt", attempt)
			return SymbolResult{Symbol: symbol, State: StateDone, Attempts: attempt}
		}
		if errors.Is(err, domain.ErrNoData) {
			// データなしは想定内の結果であり、再試行しない
			slog.Warn("no data for symbol, skipping", "symbol", symbol)
			return SymbolResult{Symbol: symbol, State: StateSkipped, Attempts: attempt}
		}

		lastErr = err
		slog.Error("failed to ingest symbol", "symbol", symbol, "attempt", attempt, "error", err)
		if attempt < maxAttempts && iu.retryBackoff > 0 {
			time.Sleep(iu.retryBackoff)
		}
	}

	slog.Warn("giving up on symbol after retries", "symbol", symbol, "attempts", maxAttempts)
	return SymbolResult{Symbol: symbol, State: StateFailed, Attempts: maxAttempts, Err: lastErr}
}
