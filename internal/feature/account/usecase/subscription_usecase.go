package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"budget_backend/internal/feature/account/domain"
	"budget_backend/internal/feature/account/domain/entity"
)

// SettingsPatch は設定レコードへ部分適用する更新内容です。nilのフィールドは変更されません。
type SettingsPatch struct {
	Username           *string
	Plan               *entity.PlanID
	AIEnabled          *bool
	Currency           *string
	Language           *string
	SubscriptionStatus *entity.SubscriptionStatus
}

// subscriptionUsecase は設定・サブスクリプション状態のビジネスロジックを実装します。
type subscriptionUsecase struct {
	users    UserRepository
	settings SettingsRepository
}

// NewSubscriptionUsecase はsubscriptionUsecaseの新しいインスタンスを生成します。
func NewSubscriptionUsecase(users UserRepository, settings SettingsRepository) *subscriptionUsecase {
	return &subscriptionUsecase{users: users, settings: settings}
}

// Settings はPrincipalの設定を返します。未作成の場合は種別ごとの既定値で遅延生成します
// （通常 → trial/base、デモ → active、管理者 → active/ultra）。
// 読み取りのたびにtrial→expiredの遷移を再評価し、遷移した場合は永続化します。
// Principalがnilの場合は既定値のコピーを返し、何も書き込みません。
func (u *subscriptionUsecase) Settings(ctx context.Context, p *entity.Principal) (*entity.Settings, error) {
	if p == nil {
		def := entity.DefaultSettings()
		return &def, nil
	}

	s, err := u.settings.Find(ctx, p.User.ID)
	if err == nil {
		// ストレージ優先: 管理者がデモの設定を書き換えた場合もここで尊重される。
		if s.SubscriptionStatus != entity.StatusActive && p.Kind != entity.IdentityAdmin {
			anchor, err := u.trialAnchor(ctx, p)
			if err != nil {
				return nil, err
			}
			if trialElapsed(anchor) {
				s.SubscriptionStatus = entity.StatusExpired
				if err := u.settings.Save(ctx, p.User.ID, s); err != nil {
					return nil, fmt.Errorf("failed to persist expired status: %w", err)
				}
			}
		}
		return s, nil
	}
	if !errors.Is(err, domain.ErrSettingsNotFound) {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	var initial entity.Settings
	switch p.Kind {
	case entity.IdentityDemo:
		initial = entity.DemoSettings()
	case entity.IdentityAdmin:
		initial = entity.AdminSettings()
	default:
		initial = entity.DefaultSettings()
		initial.Username = p.User.Name
	}
	if err := u.settings.Save(ctx, p.User.ID, &initial); err != nil {
		return nil, fmt.Errorf("failed to initialize settings: %w", err)
	}
	return &initial, nil
}

// trialAnchor は試用期限判定の基準時刻を返します。
// 通常ユーザーは保存済みレコードの作成日を使用します（管理者の試用延長が
// セッションを張り直さなくても反映されるように）。センチネルはスナップショットを使用します。
func (u *subscriptionUsecase) trialAnchor(ctx context.Context, p *entity.Principal) (time.Time, error) {
	if p.IsSentinel() {
		return p.User.CreatedAt, nil
	}
	stored, err := u.users.FindByID(ctx, p.User.ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return p.User.CreatedAt, nil
		}
		return time.Time{}, err
	}
	return stored.CreatedAt, nil
}

// UpdateSettings は更新内容を現在の設定へマージして永続化します。
// Principalがnilの場合は何もせず既定値を返します。
func (u *subscriptionUsecase) UpdateSettings(ctx context.Context, p *entity.Principal, patch SettingsPatch) (*entity.Settings, error) {
	if p == nil {
		def := entity.DefaultSettings()
		return &def, nil
	}

	current, err := u.Settings(ctx, p)
	if err != nil {
		return nil, err
	}

	if patch.Username != nil {
		current.Username = *patch.Username
	}
	if patch.Plan != nil {
		current.Plan = *patch.Plan
	}
	if patch.AIEnabled != nil {
		current.AIEnabled = *patch.AIEnabled
	}
	if patch.Currency != nil {
		current.Currency = *patch.Currency
	}
	if patch.Language != nil {
		current.Language = *patch.Language
	}
	if patch.SubscriptionStatus != nil {
		current.SubscriptionStatus = *patch.SubscriptionStatus
	}

	if err := u.settings.Save(ctx, p.User.ID, current); err != nil {
		return nil, fmt.Errorf("failed to persist settings: %w", err)
	}
	return current, nil
}

// Activate は決済シミュレーション成功後の呼び出しで、状態をactiveに設定します。
// activeは明示的な設定でのみ到達し、以降の経過時間チェックの対象外になります。
func (u *subscriptionUsecase) Activate(ctx context.Context, p *entity.Principal) (*entity.Settings, error) {
	status := entity.StatusActive
	return u.UpdateSettings(ctx, p, SettingsPatch{SubscriptionStatus: &status})
}

// TrialDaysLeft は残り試用日数を返します。
// デモ・管理者は経過時間に関係なく常に7を報告します。
func (u *subscriptionUsecase) TrialDaysLeft(ctx context.Context, p *entity.Principal) (int, error) {
	if p == nil || p.IsSentinel() {
		return entity.TrialDays, nil
	}
	anchor, err := u.trialAnchor(ctx, p)
	if err != nil {
		return 0, err
	}
	return trialDaysLeft(anchor), nil
}
