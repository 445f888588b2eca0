// Package usecase は資産とメトリクスの読み取り系ビジネスロジックを実装します。
package usecase

import (
	"context"

	"findata_backend/internal/feature/assets/domain/entity"
)

// AssetRepository は資産とメトリクスの永続化レイヤーを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type AssetRepository interface {
	// FindMetricBySymbol はシンボルのメトリクスを検索します。
	FindMetricBySymbol(ctx context.Context, symbol string) (entity.Metric, error)
	// ListWithMetrics は全資産とそのメトリクス（未取り込みならnil）を返します。
	ListWithMetrics(ctx context.Context) ([]entity.AssetWithMetric, error)
	// SummaryRows はメトリクスを持つ資産のサマリー用射影を返します。
	SummaryRows(ctx context.Context) ([]entity.SummaryRow, error)
	// ClearAll は全メトリクス行と全資産行を削除します。
	ClearAll(ctx context.Context) error
}

// assetUsecase は資産データ操作のユースケースを定義します。
type assetUsecase struct {
	repo AssetRepository
}

// NewAssetUsecase はassetUsecaseの新しいインスタンスを生成します。
func NewAssetUsecase(repo AssetRepository) *assetUsecase {
	return &assetUsecase{repo: repo}
}

// ListAssets は全資産とメトリクスの一覧を返します。
func (au *assetUsecase) ListAssets(ctx context.Context) ([]entity.AssetWithMetric, error) {
	return au.repo.ListWithMetrics(ctx)
}

// GetMetric は1シンボルのメトリクスを返します。資産が未登録、または
// メトリクスが未取り込みの場合はドメインエラーを返します。
func (au *assetUsecase) GetMetric(ctx context.Context, symbol string) (entity.Metric, error) {
	return au.repo.FindMetricBySymbol(ctx, symbol)
}

// Compare は2シンボルのメトリクスを並べて返します。どちらかが欠けている場合、
// エラーメッセージには欠けているシンボル名が含まれます。
func (au *assetUsecase) Compare(ctx context.Context, symbolA, symbolB string) (entity.Metric, entity.Metric, error) {
	a, err := au.repo.FindMetricBySymbol(ctx, symbolA)
	if err != nil {
		return entity.Metric{}, entity.Metric{}, err
	}
	b, err := au.repo.FindMetricBySymbol(ctx, symbolB)
	if err != nil {
		return entity.Metric{}, entity.Metric{}, err
	}
	return a, b, nil
}

// SummaryRows はサマリー生成用の射影行を返します。メトリクスを持つ資産が
// なければ空のスライスを返します。
func (au *assetUsecase) SummaryRows(ctx context.Context) ([]entity.SummaryRow, error) {
	return au.repo.SummaryRows(ctx)
}

// ClearAll はデータベース上の全資産と全メトリクスを削除します。
func (au *assetUsecase) ClearAll(ctx context.Context) error {
	return au.repo.ClearAll(ctx)
}
