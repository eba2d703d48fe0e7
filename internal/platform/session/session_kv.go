// Package session persists the logged-in user snapshot.
package session

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

// SessionKV implements usecase.SessionRepository on top of the key-value store.
// The snapshot lives under the session_user key; at most one session exists at a time.
type SessionKV struct {
	store kvstore.Store
}

// SessionKVがSessionRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.SessionRepository = (*SessionKV)(nil)

// NewSessionKV creates a new SessionKV instance.
func NewSessionKV(store kvstore.Store) *SessionKV {
	return &SessionKV{store: store}
}

// Save persists the user snapshot taken at login time.
func (r *SessionKV) Save(ctx context.Context, u *entity.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("failed to marshal session user: %w", err)
	}
	return r.store.Set(ctx, kvstore.KeySession, data)
}

// Load returns the current session snapshot.
// It returns domain.ErrNoActiveSession when nobody is logged in.
func (r *SessionKV) Load(ctx context.Context) (*entity.User, error) {
	data, err := r.store.Get(ctx, kvstore.KeySession)
	if err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return nil, domain.ErrNoActiveSession
		}
		return nil, err
	}
	var u entity.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session user: %w", err)
	}
	return &u, nil
}

// Clear removes the session snapshot. Logging out twice is not an error.
func (r *SessionKV) Clear(ctx context.Context) error {
	return r.store.Delete(ctx, kvstore.KeySession)
}
