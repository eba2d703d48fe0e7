// Package usecase はaccountフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"budget_backend/internal/feature/account/domain"
	"budget_backend/internal/feature/account/domain/entity"
)

// UserRepository はユーザーレコードの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// All は保存されている全ユーザーを返します。未作成の場合は空スライスを返します。
	All(ctx context.Context) ([]entity.User, error)

	// Save はユーザーコレクション全体を置き換えます。
	Save(ctx context.Context, users []entity.User) error

	// FindByID はIDでユーザーを取得します。存在しない場合はdomain.ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id string) (*entity.User, error)

	// Create は新規ユーザーと初期設定・空の取引コレクションを
	// 単一のアトミック書き込みとして永続化します。
	Create(ctx context.Context, u *entity.User, initial entity.Settings) error
}

// SettingsRepository は設定レコードの永続化層を抽象化します。
type SettingsRepository interface {
	// Find はユーザーIDの設定を取得します。未作成の場合はdomain.ErrSettingsNotFoundを返します。
	Find(ctx context.Context, userID string) (*entity.Settings, error)

	// Save はユーザーIDの設定を書き込みます。
	Save(ctx context.Context, userID string, s *entity.Settings) error

	// Delete はユーザーIDの設定を削除します。
	Delete(ctx context.Context, userID string) error
}

// SessionRepository はログイン中ユーザーのスナップショットを永続化します。
type SessionRepository interface {
	// Save はセッションスナップショットを書き込みます。
	Save(ctx context.Context, u *entity.User) error

	// Load はセッションスナップショットを取得します。
	// 存在しない場合はdomain.ErrNoActiveSessionを返します。
	Load(ctx context.Context) (*entity.User, error)

	// Clear はセッションスナップショットを削除します。
	Clear(ctx context.Context) error
}

// TokenGenerator は認証トークンの生成を抽象化します。
type TokenGenerator interface {
	// GenerateToken は認証済みPrincipalの署名済みトークンを生成します。
	GenerateToken(p *entity.Principal) (string, error)
}

// TransactionPurger はユーザー削除時に取引コレクションを破棄します。
// 実装はledgerフィーチャーのアダプターが提供します。
type TransactionPurger interface {
	Purge(ctx context.Context, userID string) error
}

// UserUpdate はセッションユーザーへ部分適用する更新内容です。nilのフィールドは変更されません。
type UserUpdate struct {
	Name     *string
	Password *string
}

// authUsecase は認証・アカウント管理のビジネスロジックを実装します。
type authUsecase struct {
	users    UserRepository
	settings SettingsRepository
	sessions SessionRepository
	tokens   TokenGenerator
	purger   TransactionPurger
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, settings SettingsRepository,
	sessions SessionRepository, tokens TokenGenerator, purger TransactionPurger) *authUsecase {
	return &authUsecase{
		users:    users,
		settings: settings,
		sessions: sessions,
		tokens:   tokens,
		purger:   purger,
	}
}

// Register は新規ユーザーを登録します。
// メールアドレスが既存ユーザーと一致する場合、domain.ErrEmailAlreadyExistsを返します。
// 比較は大文字小文字を区別します。
func (u *authUsecase) Register(ctx context.Context, name, email, password string) (*entity.User, error) {
	all, err := u.users.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	for _, existing := range all {
		if existing.Email == email {
			return nil, domain.ErrEmailAlreadyExists
		}
	}

	user := &entity.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Password:  password,
		CreatedAt: time.Now().UTC(),
	}

	initial := entity.DefaultSettings()
	initial.Username = name

	// ユーザー・設定・空の取引コレクションの3キーを1回のアトミック書き込みで作成する。
	// 部分的な失敗でユーザーなしの設定レコードが残らないようにするため。
	if err := u.users.Create(ctx, user, initial); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login はユーザーを認証し、Principalと署名済みトークンを返します。
// 解決順序: 管理者センチネル → 保存済みユーザー → デモフォールバック。
// いずれにも一致しない場合はdomain.ErrInvalidCredentialsを返します。
// セッションスナップショットの書き込みは成功パスの最終ステップです。
func (u *authUsecase) Login(ctx context.Context, email, password string) (*entity.Principal, string, error) {
	p, err := u.resolveIdentity(ctx, email, password)
	if err != nil {
		return nil, "", err
	}

	token, err := u.tokens.GenerateToken(p)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	if err := u.sessions.Save(ctx, &p.User); err != nil {
		return nil, "", fmt.Errorf("failed to persist session: %w", err)
	}
	return p, token, nil
}

// resolveIdentity は資格情報をPrincipalへ解決します。最初に一致したパスが勝ちます。
func (u *authUsecase) resolveIdentity(ctx context.Context, email, password string) (*entity.Principal, error) {
	// 1. 管理者センチネル。副作用として設定を常にactive/ultraで書き直す。
	if email == entity.AdminEmail && password == entity.AdminPassword {
		p := entity.AdminPrincipal()
		s := entity.AdminSettings()
		if err := u.settings.Save(ctx, entity.AdminUserID, &s); err != nil {
			return nil, fmt.Errorf("failed to persist admin settings: %w", err)
		}
		return p, nil
	}

	all, err := u.users.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	// 2. 保存済みユーザー。メールとパスワードの完全一致。
	for i := range all {
		if all[i].Email == email && all[i].Password == password {
			if err := u.refreshTrialStatus(ctx, &all[i]); err != nil {
				return nil, err
			}
			return entity.OrdinaryPrincipal(all[i]), nil
		}
	}

	// 3. デモフォールバック: ユーザーが1人もいない、またはデモ用メールの場合のみ。
	if (len(all) == 0 || email == entity.DemoEmail) && password == entity.DemoPassword {
		return entity.DemoPrincipal(), nil
	}

	return nil, domain.ErrInvalidCredentials
}

// refreshTrialStatus はログイン時にtrial→expiredの遷移を再評価し、必要なら永続化します。
// activeな設定は経過時間に関係なく変更されません（一方向の遷移）。
func (u *authUsecase) refreshTrialStatus(ctx context.Context, user *entity.User) error {
	s, err := u.settings.Find(ctx, user.ID)
	if err != nil {
		if !errors.Is(err, domain.ErrSettingsNotFound) {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		def := entity.DefaultSettings()
		def.Username = user.Name
		s = &def
	}
	if s.SubscriptionStatus == entity.StatusActive {
		return nil
	}
	if trialElapsed(user.CreatedAt) {
		s.SubscriptionStatus = entity.StatusExpired
		if err := u.settings.Save(ctx, user.ID, s); err != nil {
			return fmt.Errorf("failed to persist expired status: %w", err)
		}
	}
	return nil
}

// Logout はセッションスナップショットを削除します。他の状態は変更しません。
func (u *authUsecase) Logout(ctx context.Context) error {
	return u.sessions.Clear(ctx)
}

// CurrentUser はセッションスナップショットを返します。
// セッションがない場合はdomain.ErrNoActiveSessionを返します。
func (u *authUsecase) CurrentUser(ctx context.Context) (*entity.User, error) {
	return u.sessions.Load(ctx)
}

// UpdateCurrentUser は更新内容をセッションスナップショットへマージし、
// 通常ユーザーの場合は保存済みレコードにも反映します。
// セッションがない場合は何もせず(nil, nil)を返します。
func (u *authUsecase) UpdateCurrentUser(ctx context.Context, upd UserUpdate) (*entity.User, error) {
	current, err := u.sessions.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNoActiveSession) {
			return nil, nil
		}
		return nil, err
	}

	if upd.Name != nil {
		current.Name = *upd.Name
	}
	if upd.Password != nil {
		current.Password = *upd.Password
	}

	if err := u.sessions.Save(ctx, current); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	// センチネルIDはusersキーに存在しないため、スナップショットのみ更新する。
	if current.ID != entity.AdminUserID && current.ID != entity.DemoUserID {
		all, err := u.users.All(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load users: %w", err)
		}
		for i := range all {
			if all[i].ID == current.ID {
				all[i] = *current
				if err := u.users.Save(ctx, all); err != nil {
					return nil, fmt.Errorf("failed to persist user: %w", err)
				}
				break
			}
		}
	}
	return current, nil
}

// DeleteAccount はセッションユーザーのレコード・設定・取引を不可逆に削除し、
// セッションをクリアします。セッションがない場合は何もしません。
func (u *authUsecase) DeleteAccount(ctx context.Context) error {
	current, err := u.sessions.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNoActiveSession) {
			return nil
		}
		return err
	}

	if current.ID != entity.AdminUserID && current.ID != entity.DemoUserID {
		all, err := u.users.All(ctx)
		if err != nil {
			return fmt.Errorf("failed to load users: %w", err)
		}
		kept := make([]entity.User, 0, len(all))
		for _, existing := range all {
			if existing.ID != current.ID {
				kept = append(kept, existing)
			}
		}
		if err := u.users.Save(ctx, kept); err != nil {
			return fmt.Errorf("failed to persist users: %w", err)
		}
	}

	if err := u.settings.Delete(ctx, current.ID); err != nil {
		return fmt.Errorf("failed to delete settings: %w", err)
	}
	if err := u.purger.Purge(ctx, current.ID); err != nil {
		return fmt.Errorf("failed to delete transactions: %w", err)
	}
	return u.sessions.Clear(ctx)
}
