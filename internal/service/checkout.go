package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/linemk/silkbloom/internal/cart"
	"github.com/linemk/silkbloom/internal/domain/models"
	"github.com/linemk/silkbloom/internal/storage"
)

// ErrEmptyCart — попытка оформить заказ с пустой корзиной.
var ErrEmptyCart = errors.New("cart is empty")

// CheckoutService оформляет заказ из текущей корзины.
type CheckoutService interface {
	PlaceOrder(ctx context.Context, customer, phone string) (*models.Order, error)
}

type checkoutService struct {
	log       *slog.Logger
	orderRepo storage.OrderStorage
	cart      *cart.Cart
}

func NewCheckoutService(log *slog.Logger, orderRepo storage.OrderStorage, c *cart.Cart) CheckoutService {
	return &checkoutService{
		log:       log,
		orderRepo: orderRepo,
		cart:      c,
	}
}

// PlaceOrder снимает содержимое корзины в неизменяемый заказ: имя, количество
// и цена фиксируются по каждой строке, итог считается на момент оформления.
// Если запись в хранилище не удалась, корзина остаётся нетронутой и заказ
// можно отправить повторно; при успехе корзина очищается.
func (s *checkoutService) PlaceOrder(ctx context.Context, customer, phone string) (*models.Order, error) {
	const op = "service.CheckoutService.PlaceOrder"
	logger := s.log.With(slog.String("op", op), slog.String("customer", customer))

	lines := s.cart.Lines()
	if len(lines) == 0 {
		logger.Warn("checkout attempted with empty cart")
		return nil, ErrEmptyCart
	}

	items := make([]models.OrderItem, 0, len(lines))
	total := 0
	for _, line := range lines {
		items = append(items, models.OrderItem{
			Name:      line.Product.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.Product.Price,
		})
		total += line.Product.Price * line.Quantity
	}

	order := &models.Order{
		ID:       uuid.NewString(),
		Date:     time.Now(),
		Customer: customer,
		Phone:    phone,
		Items:    items,
		Total:    total,
	}

	if err := s.orderRepo.AppendOrder(ctx, order); err != nil {
		logger.Error("failed to persist order", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to persist order: %w", op, err)
	}

	s.cart.Clear()
	logger.Info("order placed", slog.String("orderID", order.ID), slog.Int("total", total))
	return order, nil
}
