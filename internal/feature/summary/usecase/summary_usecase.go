// Package usecase はメトリクスの自然言語サマリー生成のビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"findata_backend/internal/feature/assets/domain/entity"
)

const (
	// NoDataMessage はサマリー対象のメトリクスが1件もないときの応答文です。
	NoDataMessage = "No data available to summarize."
	// summaryPromptTemplate はサマリー生成のプロンプトテンプレートです。
	summaryPromptTemplate = "Write a short natural-language market digest for investors based on the following facts. Do not invent numbers. %s"
)

// SummaryRowSource はサマリー用の射影行を供給するインターフェースです。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type SummaryRowSource interface {
	SummaryRows(ctx context.Context) ([]entity.SummaryRow, error)
}

// Summarizer はプロンプトから自然言語テキストを生成するインターフェースです。
type Summarizer interface {
	Summarize(ctx context.Context, prompt string) (string, error)
}

// summaryUsecase はサマリー生成のユースケースを定義します。
type summaryUsecase struct {
	rows       SummaryRowSource
	summarizer Summarizer
}

// NewSummaryUsecase はsummaryUsecaseの新しいインスタンスを生成します。
func NewSummaryUsecase(rows SummaryRowSource, summarizer Summarizer) *summaryUsecase {
	return &summaryUsecase{rows: rows, summarizer: summarizer}
}

// GenerateSummary は全資産のメトリクスから自然言語のダイジェストを生成します。
// メトリクスを持つ資産が1件もない場合はSummarizerを呼ばず、固定文を返します。
func (su *summaryUsecase) GenerateSummary(ctx context.Context) (string, error) {
	rows, err := su.rows.SummaryRows(ctx)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		slog.Info("no metrics to summarize")
		return NoDataMessage, nil
	}
	if su.summarizer == nil {
		return "", errors.New("summarizer is not configured")
	}

	prompt := fmt.Sprintf(summaryPromptTemplate, formatSummaryInput(rows))
	out, err := su.summarizer.Summarize(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("summary generation failed: %w", err)
	}
	return out, nil
}

// formatSummaryInput はメトリクス行を1資産1文のテキストに整形します。
func formatSummaryInput(rows []entity.SummaryRow) string {
	sentences := make([]string, 0, len(rows))
	for _, r := range rows {
		sentences = append(sentences, fmt.Sprintf(
			"%s had a %.2f%% change in the last 24 hours, with a weekly average price of $%.2f.",
			r.Symbol, r.ChangePercent24h, r.AveragePrice7d,
		))
	}
	return strings.Join(sentences, " ")
}
