package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"budget_backend/internal/app/di"
	"budget_backend/internal/app/router"
	accountadapters "budget_backend/internal/feature/account/adapters"
	accounthandler "budget_backend/internal/feature/account/transport/handler"
	accountusecase "budget_backend/internal/feature/account/usecase"
	advisorhandler "budget_backend/internal/feature/advisor/transport/handler"
	advisorusecase "budget_backend/internal/feature/advisor/usecase"
	ledgeradapters "budget_backend/internal/feature/ledger/adapters"
	ledgerhandler "budget_backend/internal/feature/ledger/transport/handler"
	ledgerusecase "budget_backend/internal/feature/ledger/usecase"
	platformdb "budget_backend/internal/platform/db"
	jwtmw "budget_backend/internal/platform/jwt"
	platformredis "budget_backend/internal/platform/redis"
	"budget_backend/internal/platform/session"
	"budget_backend/internal/shared/ratelimiter"
)

func main() {
	// .env（存在すれば）を読み込む
	if err := godotenv.Load(); err != nil {
		log.Println("[WARN] No .env file loaded:", err)
	}

	// db
	db := platformdb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Falling back to database storage.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Key-Value Store（Redisがあれば優先、なければDB）
	store := di.NewKVStore(rdb, db)

	// Repository
	userRepo := accountadapters.NewUserKV(store)
	settingsRepo := accountadapters.NewSettingsKV(store)
	txRepo := ledgeradapters.NewTransactionsKV(store)
	sessionRepo := session.NewSessionKV(store)

	// JWT_SECRETチェック（開発中の注意喚起）
	secret := os.Getenv(jwtmw.EnvKeyJWTSecret)
	if secret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}
	tokenGen := jwtmw.NewGenerator(secret, 24*time.Hour)

	// Usecase
	authUC := accountusecase.NewAuthUsecase(userRepo, settingsRepo, sessionRepo, tokenGen, txRepo)
	subsUC := accountusecase.NewSubscriptionUsecase(userRepo, settingsRepo)
	adminUC := accountusecase.NewAdminUsecase(userRepo, settingsRepo, txRepo)
	ledgerUC := ledgerusecase.NewLedgerUsecase(txRepo)

	// AIアドバイザー（認証情報が無ければ縮退動作で起動する）
	ctx := context.Background()
	advisorUC := advisorusecase.NewAdvisorUsecase(
		di.NewTextGenerator(ctx),
		di.NewMerchantDetector(ctx),
		subsUC,
		ledgerUC,
		ratelimiter.NewDailyAllowance(),
	)

	// Handler
	authH := accounthandler.NewAuthHandler(authUC)
	subsH := accounthandler.NewSubscriptionHandler(subsUC)
	adminH := accounthandler.NewAdminHandler(adminUC)
	ledgerH := ledgerhandler.NewLedgerHandler(ledgerUC)
	advisorH := advisorhandler.NewAdvisorHandler(advisorUC)

	// ルータ生成
	r := router.NewRouter(authH, subsH, adminH, ledgerH, advisorH)

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
