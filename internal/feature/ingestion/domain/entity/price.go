// Package entity は取り込みフィーチャーのドメインエンティティを定義します。
package entity

import "time"

// ClosingPrice は1営業日分の終値です。
type ClosingPrice struct {
	Date  time.Time
	Close float64
}
