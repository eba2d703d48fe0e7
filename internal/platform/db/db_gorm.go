package db

import (
	"log"
	"os"
	"time"

	gpostgres "gorm.io/driver/postgres"
	gsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"budget_backend/internal/platform/kvstore"
)

// OpenDB はキー・バリューストア用のデータベース接続を開きます。
// DATABASE_URLが設定されていればPostgreSQLへ、なければ組み込みのSQLiteファイルへ接続します。
func OpenDB() *gorm.DB {
	var (
		db  *gorm.DB
		err error
	)

	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		deadline := time.Now().Add(60 * time.Second)
		for {
			db, err = gorm.Open(gpostgres.Open(dsn), &gorm.Config{})
			if err == nil {
				break
			}
			if time.Now().After(deadline) {
				log.Fatalf("DB connect failed after 60s: %v", err)
			}
			log.Printf("DB connect failed, retrying...: %v", err)
			time.Sleep(3 * time.Second)
		}
	} else {
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = "budget.db"
		}
		db, err = gorm.Open(gsqlite.Open(path), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to open sqlite database: %v", err)
		}
	}

	// kv_entriesテーブルのマイグレーション
	if err := db.AutoMigrate(&kvstore.Entry{}); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}
