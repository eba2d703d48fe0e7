package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"budget_backend/internal/feature/account/domain"
	"budget_backend/internal/feature/account/domain/entity"
)

// adminUsecase は管理コンソールの特権操作を実装します。
// 管理者ビューへの到達（JWTのkind検証）以外の追加認可チェックは行いません。
type adminUsecase struct {
	users    UserRepository
	settings SettingsRepository
	purger   TransactionPurger
}

// NewAdminUsecase はadminUsecaseの新しいインスタンスを生成します。
func NewAdminUsecase(users UserRepository, settings SettingsRepository, purger TransactionPurger) *adminUsecase {
	return &adminUsecase{users: users, settings: settings, purger: purger}
}

// ListUsers は全ユーザーを設定・残り試用日数とともに返します。
// デモIDは一覧の先頭に合成して挿入されます。設定はストレージにあればそれを、
// なければactiveの既定値を使用します。
func (u *adminUsecase) ListUsers(ctx context.Context) ([]entity.UserOverview, error) {
	all, err := u.users.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	demoSettings := entity.DemoSettings()
	if stored, err := u.settings.Find(ctx, entity.DemoUserID); err == nil {
		demoSettings = *stored
	} else if !errors.Is(err, domain.ErrSettingsNotFound) {
		return nil, fmt.Errorf("failed to load demo settings: %w", err)
	}

	overviews := make([]entity.UserOverview, 0, len(all)+1)
	overviews = append(overviews, entity.UserOverview{
		User: entity.User{
			ID:        entity.DemoUserID,
			Name:      entity.DemoName,
			Email:     entity.DemoEmail,
			CreatedAt: time.Now().UTC(),
		},
		Settings:      demoSettings,
		TrialDaysLeft: 0,
	})

	for _, user := range all {
		s := entity.DefaultSettings()
		if stored, err := u.settings.Find(ctx, user.ID); err == nil {
			s = *stored
		} else if !errors.Is(err, domain.ErrSettingsNotFound) {
			return nil, fmt.Errorf("failed to load settings for %s: %w", user.ID, err)
		}
		overviews = append(overviews, entity.UserOverview{
			User:          user,
			Settings:      s,
			TrialDaysLeft: trialDaysLeft(user.CreatedAt),
		})
	}
	return overviews, nil
}

// UpdateUserSubscription は対象ユーザーのプランと状態を直接設定します。
// 7日ルールを完全にバイパスします（次回の自然な再評価まで）。
func (u *adminUsecase) UpdateUserSubscription(ctx context.Context, userID string,
	plan entity.PlanID, status entity.SubscriptionStatus) error {
	s, err := u.settings.Find(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrSettingsNotFound) {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		def := entity.DefaultSettings()
		s = &def
	}
	s.Plan = plan
	s.SubscriptionStatus = status
	return u.settings.Save(ctx, userID, s)
}

// ResetUserPassword は対象ユーザーのパスワードを平文で上書きします。
// 対象がいない場合はdomain.ErrUserNotFoundを返します。
func (u *adminUsecase) ResetUserPassword(ctx context.Context, userID, newPassword string) error {
	all, err := u.users.All(ctx)
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}
	for i := range all {
		if all[i].ID == userID {
			all[i].Password = newPassword
			return u.users.Save(ctx, all)
		}
	}
	return domain.ErrUserNotFound
}

// ExtendTrial は対象ユーザーの試用期間をN日延長します。
// 実装は保存された作成日をN日未来へシフトする方式です。延長を繰り返すと
// 元の作成日に対して累積します。状態がexpiredの場合のみtrialへ戻します。
func (u *adminUsecase) ExtendTrial(ctx context.Context, userID string, days int) error {
	all, err := u.users.All(ctx)
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}

	found := false
	for i := range all {
		if all[i].ID == userID {
			all[i].CreatedAt = all[i].CreatedAt.AddDate(0, 0, days)
			found = true
			break
		}
	}
	if !found {
		return domain.ErrUserNotFound
	}
	if err := u.users.Save(ctx, all); err != nil {
		return fmt.Errorf("failed to persist users: %w", err)
	}

	s, err := u.settings.Find(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrSettingsNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if s.SubscriptionStatus == entity.StatusExpired {
		s.SubscriptionStatus = entity.StatusTrial
		return u.settings.Save(ctx, userID, s)
	}
	return nil
}

// DeleteUser は対象ユーザーのレコード・設定・取引を不可逆に削除します。
// 自己削除と同じカスケードです。
func (u *adminUsecase) DeleteUser(ctx context.Context, userID string) error {
	all, err := u.users.All(ctx)
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}
	kept := make([]entity.User, 0, len(all))
	for _, user := range all {
		if user.ID != userID {
			kept = append(kept, user)
		}
	}
	if err := u.users.Save(ctx, kept); err != nil {
		return fmt.Errorf("failed to persist users: %w", err)
	}
	if err := u.settings.Delete(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete settings: %w", err)
	}
	return u.purger.Purge(ctx, userID)
}
