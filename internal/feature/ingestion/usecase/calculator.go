// Package usecase は市場データ取り込みのビジネスロジックを実装します。
package usecase

import (
	"fmt"
	"math"

	assetentity "findata_backend/internal/feature/assets/domain/entity"
	"findata_backend/internal/feature/ingestion/domain"
	"findata_backend/internal/feature/ingestion/domain/entity"
)

const (
	// AverageWindowDays は平均価格の計算に使う直近の終値件数です。
	AverageWindowDays = 7
)

// ComputeMetrics は日付昇順の終値系列から派生メトリクスを計算します。
//
//   - 最新価格: 系列の最後の終値
//   - 24時間変化率: 直近2件の終値から (last - prev) / prev * 100（小数点以下2桁に丸め）
//   - 平均価格: 直近 min(windowDays, len(prices)) 件の終値の算術平均（小数点以下2桁に丸め）
//
// 純粋関数であり、I/Oも再試行も行いません。終値が2件未満、または直前の終値が
// ゼロの場合はドメインエラーを返します。
func ComputeMetrics(prices []entity.ClosingPrice, windowDays int) (assetentity.MetricSnapshot, error) {
	if windowDays <= 0 {
		windowDays = AverageWindowDays
	}
	if len(prices) < 2 {
		return assetentity.MetricSnapshot{}, fmt.Errorf("compute metrics: %w", domain.ErrNotEnoughData)
	}

	last := prices[len(prices)-1].Close
	prev := prices[len(prices)-2].Close
	if prev == 0 {
		return assetentity.MetricSnapshot{}, fmt.Errorf("compute metrics: %w", domain.ErrZeroBaseline)
	}

	window := windowDays
	if len(prices) < window {
		window = len(prices)
	}
	var sum float64
	for _, p := range prices[len(prices)-window:] {
		sum += p.Close
	}

	return assetentity.MetricSnapshot{
		LatestPrice:      last,
		ChangePercent24h: round2((last - prev) / prev * 100),
		AveragePrice7d:   round2(sum / float64(window)),
	}, nil
}

// round2 は小数点以下2桁に丸めます。
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
