package handlers

import (
	"log/slog"
	"net/http"

	"github.com/linemk/silkbloom/internal/render"
	"github.com/linemk/silkbloom/internal/service"
)

// ProductGridHandler обрабатывает GET /: отдаёт сетку карточек каталога.
func ProductGridHandler(log *slog.Logger, catalogService service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ProductGridHandler"
		logger := log.With(slog.String("op", op))

		products, err := catalogService.ListProducts(r.Context())
		if err != nil {
			logger.Error("failed to list products", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		fragment, err := render.ProductGrid(products)
		if err != nil {
			logger.Error("failed to render product grid", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, err := w.Write([]byte(fragment)); err != nil {
			logger.Error("failed to write response", slog.Any("error", err))
		}
	}
}
