package usecase

import (
	"context"

	"budget_backend/internal/feature/account/domain"
	"budget_backend/internal/feature/account/domain/entity"
)

// fakeUserRepo はテスト用のインメモリUserRepository実装です。
type fakeUserRepo struct {
	users []entity.User
	// initial はCreateで渡された初期設定を記録します。
	initial map[string]entity.Settings
}

func newFakeUserRepo(users ...entity.User) *fakeUserRepo {
	return &fakeUserRepo{users: users, initial: map[string]entity.Settings{}}
}

func (f *fakeUserRepo) All(ctx context.Context) ([]entity.User, error) {
	return append([]entity.User{}, f.users...), nil
}

func (f *fakeUserRepo) Save(ctx context.Context, users []entity.User) error {
	f.users = append([]entity.User{}, users...)
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) Create(ctx context.Context, u *entity.User, initial entity.Settings) error {
	f.users = append(f.users, *u)
	f.initial[u.ID] = initial
	return nil
}

// fakeSettingsRepo はテスト用のインメモリSettingsRepository実装です。
type fakeSettingsRepo struct {
	byUser map[string]entity.Settings
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{byUser: map[string]entity.Settings{}}
}

func (f *fakeSettingsRepo) Find(ctx context.Context, userID string) (*entity.Settings, error) {
	s, ok := f.byUser[userID]
	if !ok {
		return nil, domain.ErrSettingsNotFound
	}
	return &s, nil
}

func (f *fakeSettingsRepo) Save(ctx context.Context, userID string, s *entity.Settings) error {
	f.byUser[userID] = *s
	return nil
}

func (f *fakeSettingsRepo) Delete(ctx context.Context, userID string) error {
	delete(f.byUser, userID)
	return nil
}

// fakeSessionRepo はテスト用のインメモリSessionRepository実装です。
type fakeSessionRepo struct {
	current *entity.User
}

func (f *fakeSessionRepo) Save(ctx context.Context, u *entity.User) error {
	snapshot := *u
	f.current = &snapshot
	return nil
}

func (f *fakeSessionRepo) Load(ctx context.Context) (*entity.User, error) {
	if f.current == nil {
		return nil, domain.ErrNoActiveSession
	}
	snapshot := *f.current
	return &snapshot, nil
}

func (f *fakeSessionRepo) Clear(ctx context.Context) error {
	f.current = nil
	return nil
}

// fakeTokenGenerator は固定トークンを返すTokenGenerator実装です。
type fakeTokenGenerator struct{}

func (fakeTokenGenerator) GenerateToken(p *entity.Principal) (string, error) {
	return "token-" + p.User.ID, nil
}

// fakePurger はPurge呼び出しを記録するTransactionPurger実装です。
type fakePurger struct {
	purged []string
}

func (f *fakePurger) Purge(ctx context.Context, userID string) error {
	f.purged = append(f.purged, userID)
	return nil
}
