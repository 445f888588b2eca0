package pricefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"findata_backend/internal/feature/ingestion/domain"
	"findata_backend/internal/feature/ingestion/domain/entity"
	"findata_backend/internal/feature/ingestion/usecase"
	"findata_backend/internal/platform/externalapi/pricefeed/dto"
)

// noDataCode はプロバイダーが「シンボルのデータなし」を示すエラーコードです。
const noDataCode = 404

// Client は外部の価格履歴APIから日次終値を取得するPriceSource実装です。
type Client struct {
	cfg    Config
	client *http.Client
}

// ClientがPriceSourceを実装していることをコンパイル時に検証します。
var _ usecase.PriceSource = (*Client)(nil)

// NewClient は指定された設定とHTTPクライアントでClientの新しいインスタンスを生成します。
func NewClient(cfg Config, client *http.Client) *Client {
	return &Client{cfg: cfg, client: client}
}

// GetDailySeries は指定期間の日次終値を取得し、日付昇順で返します。
// プロバイダーにデータが存在しないシンボルでは domain.ErrNoData を返します。
// それ以外の通信・パース失敗は再試行可能なエラーとして通常のエラーで返します。
func (p *Client) GetDailySeries(ctx context.Context, symbol string, start, end time.Time) ([]entity.ClosingPrice, error) {
	q := url.Values{}
	// クエリパラメータを追加
	q.Set("symbol", symbol)
	q.Set("interval", "1day")
	q.Set("start_date", start.Format("2006-01-02"))
	q.Set("end_date", end.Format("2006-01-02"))
	q.Set("apikey", p.cfg.APIKey)

	// URLを生成
	u := fmt.Sprintf("%s/daily_series?%s", p.cfg.BaseURL, q.Encode())

	// リクエストオブジェクトを作成
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	// リクエストを実行
	res, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("pricefeed http %d", res.StatusCode)
	}

	// JSONレスポンスをDTOにデコード
	var body dto.DailySeriesResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.Status == "error" {
		if body.Code == noDataCode {
			return nil, fmt.Errorf("%w: %s", domain.ErrNoData, symbol)
		}
		return nil, fmt.Errorf("pricefeed: %s", body.Message)
	}
	if len(body.Values) == 0 {
		// 正常応答でも値が空ならデータなしとして扱う
		return nil, fmt.Errorf("%w: %s", domain.ErrNoData, symbol)
	}

	prices := make([]entity.ClosingPrice, 0, len(body.Values))
	for _, v := range body.Values {
		// タイムスタンプをパース
		tm, err := time.Parse("2006-01-02 15:04:05", v.Datetime)
		if err != nil {
			tm, err = time.Parse("2006-01-02", v.Datetime)
			if err != nil {
				return nil, fmt.Errorf("parse time %q: %w", v.Datetime, err)
			}
		}
		// 終値をパース
		c, err := strconv.ParseFloat(v.Close, 64)
		if err != nil {
			return nil, fmt.Errorf("parse close %q: %w", v.Close, err)
		}

		prices = append(prices, entity.ClosingPrice{Date: tm, Close: c})
	}

	// プロバイダーは新しい順で返すため、日付昇順に並べ替える
	for i, j := 0, len(prices)-1; i < j; i, j = i+1, j-1 {
		prices[i], prices[j] = prices[j], prices[i]
	}
	return prices, nil
}
