package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/linemk/silkbloom/internal/domain/models"
	"golang.org/x/crypto/bcrypt"
)

// учётная запись администратора из стартовых данных
const (
	SeedAdminEmail    = "admin@silkbloom.uz"
	seedAdminPassword = "admin123"
)

// SeedProducts возвращает стартовый каталог демо-магазина.
func SeedProducts() []*models.Product {
	return []*models.Product{
		{ID: "p1", Name: "Qirollik Atirguli", Price: 45000, Icon: "🌹", Description: "Klassik qizil atirgul, 50sm"},
		{ID: "p2", Name: "Bahor Lolasi", Price: 35000, Icon: "🌷", Description: "Yumshoq pushti lolalar, 5 dona"},
		{ID: "p3", Name: "Oq Orxideya", Price: 85000, Icon: "🌺", Description: "Ekzotik oq orxideya, idishda"},
		{ID: "p4", Name: "Pion (Peony)", Price: 55000, Icon: "💐", Description: "Katta va yumshoq pion gullari"},
	}
}

// SeedUsers возвращает стартовый список пользователей: одного администратора.
// Хэш пароля считается на месте, в открытом виде пароль не хранится.
func SeedUsers() ([]*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(seedAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash seed password: %w", err)
	}
	return []*models.User{
		{Email: SeedAdminEmail, PassHash: hash, Name: "Admin", Role: models.RoleAdmin},
	}, nil
}

// EnsureSeed записывает стартовые данные в отсутствующие коллекции:
// каталог из четырёх товаров, пустой список заказов и администратора.
// Существующие коллекции не трогает.
func (s *Store) EnsureSeed(ctx context.Context) error {
	const op = "storage.Store.EnsureSeed"

	if err := s.seedIfAbsent(ctx, CollectionProducts, func() (any, error) {
		return SeedProducts(), nil
	}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.seedIfAbsent(ctx, CollectionOrders, func() (any, error) {
		return []*models.Order{}, nil
	}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.seedIfAbsent(ctx, CollectionUsers, func() (any, error) {
		users, err := SeedUsers()
		if err != nil {
			return nil, err
		}
		return users, nil
	}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Store) seedIfAbsent(ctx context.Context, collection string, seed func() (any, error)) error {
	_, ok, err := s.Get(ctx, collection)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	value, err := seed()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return &PersistError{Key: collection, Err: err}
	}
	return s.Set(ctx, collection, raw)
}
