package router

import (
	accounthandler "budget_backend/internal/feature/account/transport/handler"
	advisorhandler "budget_backend/internal/feature/advisor/transport/handler"
	ledgerhandler "budget_backend/internal/feature/ledger/transport/handler"
	"budget_backend/internal/platform/http/handler"
	jwtmw "budget_backend/internal/platform/jwt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(auth *accounthandler.AuthHandler, subs *accounthandler.SubscriptionHandler,
	admin *accounthandler.AdminHandler, ledger *ledgerhandler.LedgerHandler,
	advisor *advisorhandler.AdvisorHandler) *gin.Engine {
	r := gin.Default()

	// ブラウザのSPAフロントエンドからの呼び出しを許可
	r.Use(cors.Default())

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	// 新規ユーザー登録
	r.POST("/register", auth.Register)
	// ログイン（JWT 発行）
	r.POST("/login", auth.Login)

	// 認証必須のルート
	// r.Group("/") でルートグループを作成
	authed := r.Group("/")
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに JWT が必要になる
	authed.Use(jwtmw.AuthRequired())
	{
		// アカウント
		authed.POST("/logout", auth.Logout)
		authed.GET("/me", auth.Me)
		authed.PUT("/me", auth.UpdateMe)
		authed.DELETE("/me", auth.DeleteMe)

		// サブスクリプション・設定
		authed.GET("/settings", subs.GetSettings)
		authed.PUT("/settings", subs.UpdateSettings)
		authed.GET("/settings/trial-days", subs.TrialDays)
		authed.POST("/subscription/activate", subs.Activate)

		// 家計簿
		authed.GET("/transactions", ledger.List)
		authed.POST("/transactions", ledger.Add)
		authed.DELETE("/transactions/:id", ledger.Delete)
		authed.POST("/transactions/import", ledger.Import)
		authed.GET("/transactions/export", ledger.Export)
		authed.GET("/summary", ledger.Summary)

		// AIアドバイザー
		authed.POST("/advisor/advice", advisor.Advise)
		authed.POST("/advisor/receipt", advisor.ScanReceipt)
		authed.POST("/advisor/voice", advisor.ParseVoice)

		// 管理者専用のルート
		adm := authed.Group("/admin")
		adm.Use(jwtmw.RequireAdmin())
		{
			adm.GET("/users", admin.ListUsers)
			adm.PUT("/users/:id/subscription", admin.UpdateSubscription)
			adm.PUT("/users/:id/password", admin.ResetPassword)
			adm.POST("/users/:id/extend-trial", admin.ExtendTrial)
			adm.DELETE("/users/:id", admin.DeleteUser)
		}
	}

	return r
}
