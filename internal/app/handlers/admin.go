package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/linemk/silkbloom/internal/render"
	"github.com/linemk/silkbloom/internal/service"
	"github.com/linemk/silkbloom/internal/storage"
)

// AddProductRequest — форма добавления товара в каталог.
type AddProductRequest struct {
	Name        string `json:"name" validate:"required"`
	Price       int    `json:"price" validate:"required,gt=0"`
	Icon        string `json:"icon" validate:"required"`
	Description string `json:"desc"`
}

// AdminProductsHandler обрабатывает GET /admin/products: таблица каталога.
func AdminProductsHandler(log *slog.Logger, catalogService service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.AdminProductsHandler"
		logger := log.With(slog.String("op", op))

		products, err := catalogService.ListProducts(r.Context())
		if err != nil {
			logger.Error("failed to list products", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		writeFragment(w, logger, func() (string, error) { return render.AdminProducts(products) })
	}
}

// AdminOrdersHandler обрабатывает GET /admin/orders: таблица заказов,
// свежие сверху.
func AdminOrdersHandler(log *slog.Logger, catalogService service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.AdminOrdersHandler"
		logger := log.With(slog.String("op", op))

		orders, err := catalogService.ListOrders(r.Context())
		if err != nil {
			logger.Error("failed to list orders", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		writeFragment(w, logger, func() (string, error) { return render.AdminOrders(orders) })
	}
}

// AdminStatsHandler обрабатывает GET /admin/stats: счётчики панели.
func AdminStatsHandler(log *slog.Logger, catalogService service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.AdminStatsHandler"
		logger := log.With(slog.String("op", op))

		stats, err := catalogService.Stats(r.Context())
		if err != nil {
			logger.Error("failed to collect stats", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		writeFragment(w, logger, func() (string, error) { return render.AdminStats(stats) })
	}
}

// AddProductHandler обрабатывает POST /admin/products.
func AddProductHandler(log *slog.Logger, catalogService service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.AddProductHandler"
		logger := log.With(slog.String("op", op))

		var req AddProductRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("invalid request: decoding error", slog.Any("error", err))
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}

		if err := validate.Struct(req); err != nil {
			logger.Error("invalid request: validation error", slog.Any("error", err))
			http.Error(w, "validation error", http.StatusBadRequest)
			return
		}

		product, err := catalogService.AddProduct(r.Context(), req.Name, req.Price, req.Icon, req.Description)
		if err != nil {
			logger.Error("failed to add product", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(product); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
		}
	}
}

// DeleteProductHandler обрабатывает DELETE /admin/products/{id}.
// Подтверждение удаления остаётся на стороне интерфейса.
func DeleteProductHandler(log *slog.Logger, catalogService service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.DeleteProductHandler"
		logger := log.With(slog.String("op", op))

		id := chi.URLParam(r, "id")
		if id == "" {
			logger.Error("id parameter is missing")
			http.Error(w, "id parameter is required", http.StatusBadRequest)
			return
		}

		if err := catalogService.DeleteProduct(r.Context(), id); err != nil {
			if errors.Is(err, storage.ErrProductNotFound) {
				logger.Warn("product not found", slog.String("productID", id))
				http.Error(w, "product not found", http.StatusNotFound)
				return
			}
			logger.Error("failed to delete product", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func writeFragment(w http.ResponseWriter, logger *slog.Logger, renderFn func() (string, error)) {
	fragment, err := renderFn()
	if err != nil {
		logger.Error("failed to render fragment", slog.Any("error", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(fragment)); err != nil {
		logger.Error("failed to write response", slog.Any("error", err))
	}
}
