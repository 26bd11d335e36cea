package storage

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/linemk/silkbloom/internal/domain/models"
)

// SessionStorage хранит текущего пользователя сессии, не более одного.
// Сессия переживает перезапуск процесса.
type SessionStorage interface {
	// CurrentUser возвращает пользователя сессии или ErrNoSession.
	CurrentUser(ctx context.Context) (*models.User, error)
	// SetCurrentUser записывает пользователя сессии.
	SetCurrentUser(ctx context.Context, user *models.User) error
	// ClearCurrentUser завершает сессию.
	ClearCurrentUser(ctx context.Context) error
}

type sessionRepository struct {
	store *Store
}

// NewSessionRepository создаёт новый репозиторий сессии.
func NewSessionRepository(store *Store) SessionStorage {
	return &sessionRepository{store: store}
}

func (r *sessionRepository) CurrentUser(ctx context.Context) (*models.User, error) {
	raw, ok, err := r.store.Get(ctx, KeyCurrentUser)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoSession
	}

	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, &CorruptStoreError{Collection: KeyCurrentUser, Err: err}
	}
	if user.Email == "" && user.Phone == "" {
		return nil, &CorruptStoreError{Collection: KeyCurrentUser, Err: errors.New("session user without identifier")}
	}
	return &user, nil
}

func (r *sessionRepository) SetCurrentUser(ctx context.Context, user *models.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return &PersistError{Key: KeyCurrentUser, Err: err}
	}
	return r.store.Set(ctx, KeyCurrentUser, raw)
}

func (r *sessionRepository) ClearCurrentUser(ctx context.Context) error {
	return r.store.Delete(ctx, KeyCurrentUser)
}
