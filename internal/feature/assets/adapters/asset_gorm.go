package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"findata_backend/internal/feature/assets/domain"
	"findata_backend/internal/feature/assets/domain/entity"
	"findata_backend/internal/feature/assets/usecase"
	ingestusecase "findata_backend/internal/feature/ingestion/usecase"
)

type assetGorm struct {
	db *gorm.DB
}

var (
	_ usecase.AssetRepository  = (*assetGorm)(nil)
	_ ingestusecase.AssetStore = (*assetGorm)(nil)
)

func NewAssetRepository(db *gorm.DB) *assetGorm {
	return &assetGorm{db: db}
}

type AssetModel struct {
	ID          uint      `gorm:"primaryKey"`
	Symbol      string    `gorm:"size:32;not null;uniqueIndex"`
	Name        string    `gorm:"size:64;not null"`
	LastUpdated time.Time `gorm:"not null"`

	Metric *MetricModel `gorm:"foreignKey:AssetID"`
}

func (AssetModel) TableName() string {
	return "assets"
}

type MetricModel struct {
	ID          uint    `gorm:"primaryKey"`
	AssetID     uint    `gorm:"not null;uniqueIndex"`
	LatestPrice float64 `gorm:"not null"`
	// 数字を含むフィールドはgormの命名規則が揺れるため、列名を明示する
	ChangePercent24h float64   `gorm:"column:change_percent_24h;not null"`
	AveragePrice7d   float64   `gorm:"column:average_price_7d;not null"`
	ObservedAt       time.Time `gorm:"not null"`
}

func (MetricModel) TableName() string {
	return "metrics"
}

func toAsset(m AssetModel) entity.Asset {
	return entity.Asset{
		ID:          m.ID,
		Symbol:      m.Symbol,
		Name:        m.Name,
		LastUpdated: m.LastUpdated,
	}
}

func toMetric(m MetricModel) entity.Metric {
	return entity.Metric{
		ID:               m.ID,
		AssetID:          m.AssetID,
		LatestPrice:      m.LatestPrice,
		ChangePercent24h: m.ChangePercent24h,
		AveragePrice7d:   m.AveragePrice7d,
		ObservedAt:       m.ObservedAt,
	}
}

// UpsertAsset は未登録のシンボルを作成し、登録済みならそのまま返します。
// 既存行のname/last_updatedは更新しません（作成時の値を維持する仕様）。
func (r *assetGorm) UpsertAsset(ctx context.Context, symbol, name string) (entity.Asset, error) {
	m := AssetModel{Symbol: symbol, Name: name, LastUpdated: time.Now()}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}},
		DoNothing: true,
	}).Create(&m).Error; err != nil {
		return entity.Asset{}, err
	}

	// 競合時はCreateがIDを埋めないため、確定した行を読み直す
	var row AssetModel
	if err := r.db.WithContext(ctx).Where("symbol = ?", symbol).Take(&row).Error; err != nil {
		return entity.Asset{}, err
	}
	return toAsset(row), nil
}

// UpsertMetric は資産のメトリクス行を作成または上書きします。
// asset_idのユニークインデックスとON CONFLICTにより、同一シンボルの並行
// 取り込みでも重複行は発生しません。
func (r *assetGorm) UpsertMetric(ctx context.Context, assetID uint, snapshot entity.MetricSnapshot) error {
	m := MetricModel{
		AssetID:          assetID,
		LatestPrice:      snapshot.LatestPrice,
		ChangePercent24h: snapshot.ChangePercent24h,
		AveragePrice7d:   snapshot.AveragePrice7d,
		ObservedAt:       time.Now(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "asset_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"latest_price", "change_percent_24h", "average_price_7d", "observed_at"}),
	}).Create(&m).Error
}

func (r *assetGorm) FindBySymbol(ctx context.Context, symbol string) (entity.Asset, error) {
	var row AssetModel
	err := r.db.WithContext(ctx).Where("symbol = ?", symbol).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.Asset{}, fmt.Errorf("%w: %s", domain.ErrAssetNotFound, symbol)
	}
	if err != nil {
		return entity.Asset{}, err
	}
	return toAsset(row), nil
}

// FindMetricBySymbol はシンボルのメトリクスを返します。資産が未登録なら
// ErrAssetNotFound、メトリクス未取り込みなら ErrMetricNotFound を返します。
func (r *assetGorm) FindMetricBySymbol(ctx context.Context, symbol string) (entity.Metric, error) {
	asset, err := r.FindBySymbol(ctx, symbol)
	if err != nil {
		return entity.Metric{}, err
	}

	var row MetricModel
	err = r.db.WithContext(ctx).Where("asset_id = ?", asset.ID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.Metric{}, fmt.Errorf("%w: %s", domain.ErrMetricNotFound, symbol)
	}
	if err != nil {
		return entity.Metric{}, err
	}
	return toMetric(row), nil
}

// ListWithMetrics は全資産をID順で返します。メトリクス未取り込みの資産では
// Metricはnilです。
func (r *assetGorm) ListWithMetrics(ctx context.Context) ([]entity.AssetWithMetric, error) {
	var rows []AssetModel
	if err := r.db.WithContext(ctx).Preload("Metric").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]entity.AssetWithMetric, 0, len(rows))
	for _, m := range rows {
		item := entity.AssetWithMetric{Asset: toAsset(m)}
		if m.Metric != nil {
			metric := toMetric(*m.Metric)
			item.Metric = &metric
		}
		out = append(out, item)
	}
	return out, nil
}

// summaryRowModel はSummaryRows用の射影です。列名を明示してスキャンします。
type summaryRowModel struct {
	Symbol           string  `gorm:"column:symbol"`
	ChangePercent24h float64 `gorm:"column:change_percent_24h"`
	AveragePrice7d   float64 `gorm:"column:average_price_7d"`
}

// SummaryRows はメトリクスを持つ資産のみを内部結合で射影します。
func (r *assetGorm) SummaryRows(ctx context.Context) ([]entity.SummaryRow, error) {
	var rows []summaryRowModel
	err := r.db.WithContext(ctx).
		Model(&AssetModel{}).
		Select("assets.symbol, metrics.change_percent_24h, metrics.average_price_7d").
		Joins("INNER JOIN metrics ON metrics.asset_id = assets.id").
		Order("assets.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]entity.SummaryRow, 0, len(rows))
	for _, m := range rows {
		out = append(out, entity.SummaryRow{
			Symbol:           m.Symbol,
			ChangePercent24h: m.ChangePercent24h,
			AveragePrice7d:   m.AveragePrice7d,
		})
	}
	return out, nil
}

// ClearAll は全メトリクス行と全資産行を1トランザクションで削除します。
// 外部キー制約のため、メトリクスを先に削除します。
func (r *assetGorm) ClearAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&MetricModel{}).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&AssetModel{}).Error
	})
}
