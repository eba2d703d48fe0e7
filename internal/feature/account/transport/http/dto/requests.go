// Package dto はaccountフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// RegisterReq は/registerエンドポイントのリクエストボディを表します。
type RegisterReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginReq は/loginエンドポイントのリクエストボディを表します。
// パスワード長は検証しません（センチネルIDの固定パスワードが短いため）。
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateMeReq は/meエンドポイントの部分更新リクエストです。nilのフィールドは変更されません。
type UpdateMeReq struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

// SettingsPatchReq は/settingsエンドポイントの部分更新リクエストです。
type SettingsPatchReq struct {
	Username           *string `json:"username"`
	Plan               *string `json:"plan"`
	AIEnabled          *bool   `json:"aiEnabled"`
	Currency           *string `json:"currency"`
	Language           *string `json:"language"`
	SubscriptionStatus *string `json:"subscriptionStatus"`
}

// AdminSubscriptionReq は管理コンソールのプラン・状態強制設定リクエストです。
type AdminSubscriptionReq struct {
	Plan   string `json:"plan" binding:"required"`
	Status string `json:"status" binding:"required"`
}

// AdminPasswordReq は管理コンソールのパスワード上書きリクエストです。
type AdminPasswordReq struct {
	Password string `json:"password" binding:"required"`
}

// AdminExtendTrialReq は管理コンソールの試用延長リクエストです。
type AdminExtendTrialReq struct {
	Days int `json:"days" binding:"required,min=1"`
}
