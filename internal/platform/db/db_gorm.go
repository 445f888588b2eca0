// Package db はgormによるデータベース接続の初期化を提供します。
package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"findata_backend/internal/feature/assets/adapters"
)

// OpenDB は環境変数の設定に従ってデータベースを開き、スキーマを移行します。
// DB_DRIVER=postgres でPostgreSQLに接続し、未指定ならローカルのSQLiteファイルを使います。
func OpenDB() *gorm.DB {
	dial := dialector()

	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(dial, &gorm.Config{})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	// マイグレーション（Asset, Metric）
	if err := db.AutoMigrate(
		&adapters.AssetModel{},
		&adapters.MetricModel{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}

// dialector は環境変数から接続先を決定します。
func dialector() gorm.Dialector {
	if os.Getenv("DB_DRIVER") == "postgres" {
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			os.Getenv("DB_HOST"), os.Getenv("DB_PORT"),
			os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), os.Getenv("DB_NAME"))
		return postgres.Open(dsn)
	}

	path := os.Getenv("DB_PATH")
	if path == "" {
		path = "financial_data.db"
	}
	return sqlite.Open(path)
}
