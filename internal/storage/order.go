package storage

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/linemk/silkbloom/internal/domain/models"
)

// OrderStorage описывает методы работы с заказами.
// Коллекция заказов — только на добавление, заказы не редактируются.
type OrderStorage interface {
	// ListOrders возвращает заказы в порядке хранения.
	ListOrders(ctx context.Context) ([]*models.Order, error)
	// AppendOrder добавляет заказ в конец коллекции.
	AppendOrder(ctx context.Context, order *models.Order) error
}

type orderRepository struct {
	store *Store
}

// NewOrderRepository создаёт новый репозиторий заказов.
func NewOrderRepository(store *Store) OrderStorage {
	return &orderRepository{store: store}
}

func (r *orderRepository) ListOrders(ctx context.Context) ([]*models.Order, error) {
	raw, ok, err := r.store.Get(ctx, CollectionOrders)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []*models.Order{}, nil
	}

	var orders []*models.Order
	if err := json.Unmarshal(raw, &orders); err != nil {
		return nil, &CorruptStoreError{Collection: CollectionOrders, Err: err}
	}
	for _, o := range orders {
		if o == nil || o.ID == "" {
			return nil, &CorruptStoreError{Collection: CollectionOrders, Err: errors.New("order without id")}
		}
	}
	return orders, nil
}

func (r *orderRepository) AppendOrder(ctx context.Context, order *models.Order) error {
	orders, err := r.ListOrders(ctx)
	if err != nil {
		return err
	}
	orders = append(orders, order)

	raw, err := json.Marshal(orders)
	if err != nil {
		return &PersistError{Key: CollectionOrders, Err: err}
	}
	return r.store.Set(ctx, CollectionOrders, raw)
}
