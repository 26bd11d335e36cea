package storage

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/linemk/silkbloom/internal/domain/models"
)

// UserStorage описывает методы работы с пользователями.
type UserStorage interface {
	// ListUsers возвращает пользователей в порядке хранения.
	ListUsers(ctx context.Context) ([]*models.User, error)
	// GetUserByLogin ищет пользователя по email или телефону.
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	// AppendUser добавляет нового пользователя.
	AppendUser(ctx context.Context, user *models.User) error
}

type userRepository struct {
	store *Store
}

// NewUserRepository создаёт новый репозиторий пользователей.
func NewUserRepository(store *Store) UserStorage {
	return &userRepository{store: store}
}

func (r *userRepository) ListUsers(ctx context.Context) ([]*models.User, error) {
	raw, ok, err := r.store.Get(ctx, CollectionUsers)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []*models.User{}, nil
	}

	var users []*models.User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, &CorruptStoreError{Collection: CollectionUsers, Err: err}
	}
	for _, u := range users {
		if u == nil || (u.Email == "" && u.Phone == "") {
			return nil, &CorruptStoreError{Collection: CollectionUsers, Err: errors.New("user without identifier")}
		}
	}
	return users, nil
}

func (r *userRepository) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	users, err := r.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Email == login || (u.Phone != "" && u.Phone == login) {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *userRepository) AppendUser(ctx context.Context, user *models.User) error {
	users, err := r.ListUsers(ctx)
	if err != nil {
		return err
	}
	users = append(users, user)

	raw, err := json.Marshal(users)
	if err != nil {
		return &PersistError{Key: CollectionUsers, Err: err}
	}
	return r.store.Set(ctx, CollectionUsers, raw)
}
