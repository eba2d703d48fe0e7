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

// settingsKV はSettingsRepositoryインターフェースのキー・バリューストア実装です。
// 各ユーザーの設定をsettings_<userId>キー配下のJSONオブジェクトとして保持します。
type settingsKV struct {
	store kvstore.Store
}

// settingsKVがSettingsRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.SettingsRepository = (*settingsKV)(nil)

// NewSettingsKV は指定されたストアでsettingsKVの新しいインスタンスを生成します。
func NewSettingsKV(store kvstore.Store) *settingsKV {
	return &settingsKV{store: store}
}

// Find はユーザーIDの設定を取得します。未作成の場合はdomain.ErrSettingsNotFoundを返します。
func (r *settingsKV) Find(ctx context.Context, userID string) (*entity.Settings, error) {
	data, err := r.store.Get(ctx, kvstore.SettingsKey(userID))
	if err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return nil, domain.ErrSettingsNotFound
		}
		return nil, err
	}
	var s entity.Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	return &s, nil
}

// Save はユーザーIDの設定を書き込みます。
func (r *settingsKV) Save(ctx context.Context, userID string, s *entity.Settings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	return r.store.Set(ctx, kvstore.SettingsKey(userID), data)
}

// Delete はユーザーIDの設定を削除します。
func (r *settingsKV) Delete(ctx context.Context, userID string) error {
	return r.store.Delete(ctx, kvstore.SettingsKey(userID))
}
