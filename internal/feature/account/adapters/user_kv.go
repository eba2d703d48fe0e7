// Package adapters はaccountフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"budget_backend/internal/feature/account/domain"
	"budget_backend/internal/feature/account/domain/entity"
	"budget_backend/internal/feature/account/usecase"
	"budget_backend/internal/platform/kvstore"
)

// userKV はUserRepositoryインターフェースのキー・バリューストア実装です。
// 全ユーザーレコードをusersキー配下のJSON配列として保持します。
type userKV struct {
	store kvstore.Store
}

// userKVがUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*userKV)(nil)

// NewUserKV は指定されたストアでuserKVの新しいインスタンスを生成します。
func NewUserKV(store kvstore.Store) *userKV {
	return &userKV{store: store}
}

// All はusersキーの全レコードを返します。キーが未作成の場合は空スライスを返します。
func (r *userKV) All(ctx context.Context) ([]entity.User, error) {
	data, err := r.store.Get(ctx, kvstore.KeyUsers)
	if err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return []entity.User{}, nil
		}
		return nil, err
	}
	var users []entity.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// Save はユーザーコレクション全体を置き換えます。
func (r *userKV) Save(ctx context.Context, users []entity.User) error {
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("failed to encode users: %w", err)
	}
	return r.store.Set(ctx, kvstore.KeyUsers, data)
}

// FindByID はIDでユーザーを取得します。存在しない場合はdomain.ErrUserNotFoundを返します。
func (r *userKV) FindByID(ctx context.Context, id string) (*entity.User, error) {
	users, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// Create は新規ユーザーの3キー（users配列・設定・空の取引コレクション）を
// 単一のアトミック書き込みで作成します。
func (r *userKV) Create(ctx context.Context, u *entity.User, initial entity.Settings) error {
	users, err := r.All(ctx)
	if err != nil {
		return err
	}
	users = append(users, *u)

	usersJSON, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("failed to encode users: %w", err)
	}
	settingsJSON, err := json.Marshal(initial)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	return r.store.SetMulti(ctx, map[string][]byte{
		kvstore.KeyUsers:              usersJSON,
		kvstore.SettingsKey(u.ID):     settingsJSON,
		kvstore.TransactionsKey(u.ID): []byte("[]"),
	})
}
