package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linemk/silkbloom/internal/cart"
	"github.com/linemk/silkbloom/internal/config"
	"github.com/linemk/silkbloom/internal/storage"
)

// App — явное состояние приложения: конфиг, логгер, хранилище и корзина
// текущей страницы. Никаких глобальных переменных, всё передаётся явно.
type App struct {
	Config *config.Config
	Logger *slog.Logger
	Store  *storage.Store
	Cart   *cart.Cart
}

// NewApp открывает локальное хранилище, засевает отсутствующие коллекции
// стартовыми данными и создаёт пустую корзину.
func NewApp(log *slog.Logger, cfg *config.Config) (*App, error) {
	st, err := storage.Open(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	if err := st.EnsureSeed(context.Background()); err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to seed store: %w", err)
	}

	app := &App{
		Config: cfg,
		Logger: log,
		Store:  st,
		Cart:   cart.New(),
	}

	return app, nil
}
