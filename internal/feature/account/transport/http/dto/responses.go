package dto

import (
	"time"

	"budget_backend/internal/feature/account/domain/entity"
)

// UserRes はAPIレスポンス用のユーザー表現です。パスワードは含まれません。
type UserRes struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewUserRes はエンティティからUserResを生成します。
func NewUserRes(u *entity.User) UserRes {
	return UserRes{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// LoginRes はログイン成功時のレスポンスです。
type LoginRes struct {
	Token string  `json:"token"`
	User  UserRes `json:"user"`
}

// TrialDaysRes は残り試用日数のレスポンスです。
type TrialDaysRes struct {
	TrialDaysLeft int `json:"trialDaysLeft"`
}
