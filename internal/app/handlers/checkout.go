package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/linemk/silkbloom/internal/service"
)

// CheckoutRequest — форма оформления заказа.
type CheckoutRequest struct {
	Customer string `json:"customer" validate:"required"`
	Phone    string `json:"phone" validate:"required,min=7"`
}

// CheckoutResponse — подтверждение оформленного заказа.
type CheckoutResponse struct {
	OrderID string `json:"order_id"`
	Total   int    `json:"total"`
}

// CheckoutHandler обрабатывает POST /checkout: оформляет заказ из текущей
// корзины. Пустая корзина — ошибка; при сбое записи корзина остаётся
// нетронутой и форму можно отправить повторно.
func CheckoutHandler(log *slog.Logger, checkoutService service.CheckoutService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.CheckoutHandler"
		logger := log.With(slog.String("op", op))

		var req CheckoutRequest
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

		order, err := checkoutService.PlaceOrder(r.Context(), req.Customer, req.Phone)
		if err != nil {
			if errors.Is(err, service.ErrEmptyCart) {
				logger.Warn("checkout with empty cart")
				http.Error(w, "cart is empty", http.StatusBadRequest)
				return
			}
			logger.Error("failed to place order", slog.Any("error", err))
			http.Error(w, "failed to place order, please retry", http.StatusInternalServerError)
			return
		}

		resp := CheckoutResponse{OrderID: order.ID, Total: order.Total}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
		}
	}
}
