package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/linemk/silkbloom/internal/domain/models"
)

// ProductStorage описывает методы работы с каталогом товаров.
type ProductStorage interface {
	// ListProducts возвращает каталог в порядке хранения.
	ListProducts(ctx context.Context) ([]*models.Product, error)
	// GetProductByID ищет товар по идентификатору.
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
	// AppendProduct добавляет товар в конец каталога.
	AppendProduct(ctx context.Context, product *models.Product) error
	// DeleteProduct удаляет ровно один товар с указанным идентификатором.
	DeleteProduct(ctx context.Context, id string) error
}

// productRepository — конкретная реализация ProductStorage поверх kv-хранилища.
type productRepository struct {
	store *Store
}

// NewProductRepository создаёт новый репозиторий каталога.
func NewProductRepository(store *Store) ProductStorage {
	return &productRepository{store: store}
}

func (r *productRepository) ListProducts(ctx context.Context) ([]*models.Product, error) {
	raw, ok, err := r.store.Get(ctx, CollectionProducts)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []*models.Product{}, nil
	}

	var products []*models.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, &CorruptStoreError{Collection: CollectionProducts, Err: err}
	}
	// проверка формы: у каждого товара должен быть идентификатор
	for _, p := range products {
		if p == nil || p.ID == "" {
			return nil, &CorruptStoreError{Collection: CollectionProducts, Err: errors.New("product without id")}
		}
	}
	return products, nil
}

func (r *productRepository) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	products, err := r.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, ErrProductNotFound
}

func (r *productRepository) AppendProduct(ctx context.Context, product *models.Product) error {
	products, err := r.ListProducts(ctx)
	if err != nil {
		return err
	}
	products = append(products, product)
	return r.save(ctx, products)
}

func (r *productRepository) DeleteProduct(ctx context.Context, id string) error {
	products, err := r.ListProducts(ctx)
	if err != nil {
		return err
	}

	kept := make([]*models.Product, 0, len(products))
	for _, p := range products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(products) {
		return ErrProductNotFound
	}
	return r.save(ctx, kept)
}

// save перезаписывает коллекцию каталога целиком.
func (r *productRepository) save(ctx context.Context, products []*models.Product) error {
	raw, err := json.Marshal(products)
	if err != nil {
		return &PersistError{Key: CollectionProducts, Err: fmt.Errorf("failed to encode products: %w", err)}
	}
	return r.store.Set(ctx, CollectionProducts, raw)
}
