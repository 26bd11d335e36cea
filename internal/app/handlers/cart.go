package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/linemk/silkbloom/internal/render"
	"github.com/linemk/silkbloom/internal/service"
	"github.com/linemk/silkbloom/internal/storage"
)

// CartAddHandler обрабатывает POST /cart/items/{id}: кладёт товар в корзину
// и отвечает перерисованным фрагментом корзины.
func CartAddHandler(log *slog.Logger, cartService service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CartAddHandler"
		logger := log.With(slog.String("op", op))

		id := chi.URLParam(r, "id")
		if id == "" {
			logger.Error("id parameter is missing")
			http.Error(w, "id parameter is required", http.StatusBadRequest)
			return
		}

		if err := cartService.Add(r.Context(), id); err != nil {
			if errors.Is(err, storage.ErrProductNotFound) {
				logger.Warn("product not found", slog.String("productID", id))
				http.Error(w, "product not found", http.StatusNotFound)
				return
			}
			logger.Error("failed to add product to cart", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		writeCartFragment(w, logger, cartService.View(r.Context()))
	}
}

// CartQuantityHandler обрабатывает PUT /cart/items/{id}?quantity=N.
// Ноль удаляет строку из корзины целиком.
func CartQuantityHandler(log *slog.Logger, cartService service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CartQuantityHandler"
		logger := log.With(slog.String("op", op))

		id := chi.URLParam(r, "id")
		quantity, err := strconv.Atoi(r.URL.Query().Get("quantity"))
		if err != nil || quantity < 0 {
			logger.Error("invalid quantity parameter")
			http.Error(w, "quantity must be a non-negative number", http.StatusBadRequest)
			return
		}

		if err := cartService.SetQuantity(r.Context(), id, quantity); err != nil {
			if errors.Is(err, storage.ErrProductNotFound) {
				logger.Warn("cart line not found", slog.String("productID", id))
				http.Error(w, "product not found", http.StatusNotFound)
				return
			}
			logger.Error("failed to update quantity", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		writeCartFragment(w, logger, cartService.View(r.Context()))
	}
}

// CartHandler обрабатывает GET /cart: отдаёт фрагмент корзины.
func CartHandler(log *slog.Logger, cartService service.CartService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CartHandler"
		logger := log.With(slog.String("op", op))

		writeCartFragment(w, logger, cartService.View(r.Context()))
	}
}

func writeCartFragment(w http.ResponseWriter, logger *slog.Logger, view service.CartView) {
	fragment, err := render.CartDrawer(view)
	if err != nil {
		logger.Error("failed to render cart", slog.Any("error", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(fragment)); err != nil {
		logger.Error("failed to write response", slog.Any("error", err))
	}
}
