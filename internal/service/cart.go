package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linemk/silkbloom/internal/cart"
	"github.com/linemk/silkbloom/internal/domain/models"
	"github.com/linemk/silkbloom/internal/storage"
)

// CartView — снимок состояния корзины для слоя отрисовки.
type CartView struct {
	Lines     []models.CartLine
	Total     int
	ItemCount int
}

// CartService связывает корзину с каталогом: добавить товар можно
// только существующий.
type CartService interface {
	Add(ctx context.Context, productID string) error
	SetQuantity(ctx context.Context, productID string, quantity int) error
	View(ctx context.Context) CartView
}

type cartService struct {
	log         *slog.Logger
	productRepo storage.ProductStorage
	cart        *cart.Cart
}

func NewCartService(log *slog.Logger, productRepo storage.ProductStorage, c *cart.Cart) CartService {
	return &cartService{
		log:         log,
		productRepo: productRepo,
		cart:        c,
	}
}

// Add ищет товар в каталоге и кладёт его снимок в корзину.
// Неизвестный идентификатор — это ошибка, а не тихий пропуск.
func (s *cartService) Add(ctx context.Context, productID string) error {
	const op = "service.CartService.Add"
	logger := s.log.With(slog.String("op", op), slog.String("productID", productID))

	product, err := s.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		logger.Warn("failed to get product", slog.Any("error", err))
		return fmt.Errorf("%s: %w", op, err)
	}

	s.cart.Add(*product)
	logger.Info("product added to cart", slog.Int("itemCount", s.cart.ItemCount()))
	return nil
}

// SetQuantity меняет количество строки корзины; ноль удаляет строку.
func (s *cartService) SetQuantity(ctx context.Context, productID string, quantity int) error {
	const op = "service.CartService.SetQuantity"

	if !s.cart.SetQuantity(productID, quantity) {
		return fmt.Errorf("%s: %w", op, storage.ErrProductNotFound)
	}
	return nil
}

// View возвращает снимок корзины (строки, сумма, количество единиц).
func (s *cartService) View(ctx context.Context) CartView {
	return CartView{
		Lines:     s.cart.Lines(),
		Total:     s.cart.Total(),
		ItemCount: s.cart.ItemCount(),
	}
}
