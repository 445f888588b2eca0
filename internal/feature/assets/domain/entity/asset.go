// Package entity は資産と派生メトリクスのドメインエンティティを定義します。
package entity

import "time"

// Asset は追跡対象の金融シンボル（暗号資産ペアまたは株式ティッカー）を表します。
// symbolはグローバルに一意で、作成後は変更されません。
type Asset struct {
	ID          uint
	Symbol      string
	Name        string
	LastUpdated time.Time
}

// Metric はAssetごとに高々1件存在する最新の派生メトリクスです。
// 履歴は保持せず、取り込みのたびに上書きされます。
type Metric struct {
	ID               uint
	AssetID          uint
	LatestPrice      float64
	ChangePercent24h float64
	AveragePrice7d   float64
	ObservedAt       time.Time
}

// MetricSnapshot は永続化前の計算済みメトリクス値です。
type MetricSnapshot struct {
	LatestPrice      float64
	ChangePercent24h float64
	AveragePrice7d   float64
}

// AssetWithMetric は一覧表示用の資産とメトリクスの組です。
// まだ取り込まれていない資産ではMetricはnilになります。
type AssetWithMetric struct {
	Asset  Asset
	Metric *Metric
}

// SummaryRow はサマリー生成用の射影行です（メトリクスを持つ資産のみ）。
type SummaryRow struct {
	Symbol           string
	ChangePercent24h float64
	AveragePrice7d   float64
}
