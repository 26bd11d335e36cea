package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/linemk/silkbloom/internal/domain/models"
	"github.com/linemk/silkbloom/internal/storage"
)

// Stats — счётчики для админ-панели.
type Stats struct {
	Products int
	Orders   int
	Users    int
}

// CatalogService — операции админ-панели над каталогом и заказами.
type CatalogService interface {
	ListProducts(ctx context.Context) ([]*models.Product, error)
	AddProduct(ctx context.Context, name string, price int, icon, description string) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ListOrders(ctx context.Context) ([]*models.Order, error)
	Stats(ctx context.Context) (*Stats, error)
}

type catalogService struct {
	log         *slog.Logger
	productRepo storage.ProductStorage
	orderRepo   storage.OrderStorage
	userRepo    storage.UserStorage
}

func NewCatalogService(log *slog.Logger, productRepo storage.ProductStorage, orderRepo storage.OrderStorage, userRepo storage.UserStorage) CatalogService {
	return &catalogService{
		log:         log,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		userRepo:    userRepo,
	}
}

func (s *catalogService) ListProducts(ctx context.Context) ([]*models.Product, error) {
	const op = "service.CatalogService.ListProducts"

	products, err := s.productRepo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return products, nil
}

// AddProduct создаёт товар со свежим uuid-идентификатором и дописывает
// его в каталог. uuid вместо метки времени, чтобы быстрые повторные
// вызовы не давали коллизий.
func (s *catalogService) AddProduct(ctx context.Context, name string, price int, icon, description string) (*models.Product, error) {
	const op = "service.CatalogService.AddProduct"
	logger := s.log.With(slog.String("op", op), slog.String("name", name))

	product := &models.Product{
		ID:          "p-" + uuid.NewString(),
		Name:        name,
		Price:       price,
		Icon:        icon,
		Description: description,
	}
	if err := s.productRepo.AppendProduct(ctx, product); err != nil {
		logger.Error("failed to append product", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to append product: %w", op, err)
	}

	logger.Info("product added", slog.String("productID", product.ID))
	return product, nil
}

// DeleteProduct удаляет ровно один товар; неизвестный идентификатор —
// ошибка ErrProductNotFound, каталог при этом не меняется.
func (s *catalogService) DeleteProduct(ctx context.Context, id string) error {
	const op = "service.CatalogService.DeleteProduct"
	logger := s.log.With(slog.String("op", op), slog.String("productID", id))

	if err := s.productRepo.DeleteProduct(ctx, id); err != nil {
		logger.Warn("failed to delete product", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}

	logger.Info("product deleted")
	return nil
}

func (s *catalogService) ListOrders(ctx context.Context) ([]*models.Order, error) {
	const op = "service.CatalogService.ListOrders"

	orders, err := s.orderRepo.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return orders, nil
}

// Stats собирает счётчики товаров, заказов и пользователей.
func (s *catalogService) Stats(ctx context.Context) (*Stats, error) {
	const op = "service.CatalogService.Stats"

	products, err := s.productRepo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	orders, err := s.orderRepo.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Stats{
		Products: len(products),
		Orders:   len(orders),
		Users:    len(users),
	}, nil
}
