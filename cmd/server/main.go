package main

import (
	"context"

	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/linemk/silkbloom/internal/app"
	"github.com/linemk/silkbloom/internal/app/handlers"
	"github.com/linemk/silkbloom/internal/config"
	"github.com/linemk/silkbloom/internal/jwt-new/jwtmiddleware"
	"github.com/linemk/silkbloom/internal/lib/logger"
	"github.com/linemk/silkbloom/internal/lib/logger/handlers/urllog"
	"github.com/linemk/silkbloom/internal/service"
	"github.com/linemk/silkbloom/internal/storage"
	"github.com/pkg/errors"
)

func main() {
	// загрузка конфигурации
	cfg := config.MustLoad()

	// инициализация логгера, зависит от настройки окружения
	log := logger.SetupLogger(cfg.Env)
	log.Info("starting app", slog.String("env", cfg.Env))

	// загружаем объект приложения: конфиг, локальное хранилище и корзину
	application, err := app.NewApp(log, cfg)
	if err != nil {
		log.Error("failed to initialize app", slog.Any("error", err))
		panic(errors.Wrap(err, "failed to initialize app"))
	}
	defer application.Store.Close()

	router := chi.NewRouter()
	// настройка middleware
	router.Use(middleware.RequestID)
	router.Use(urllog.CustomLoggerMiddleware(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	// реализация слоёв по работе с хранилищем по каждому направлению
	productRepo := storage.NewProductRepository(application.Store)
	orderRepo := storage.NewOrderRepository(application.Store)
	userRepo := storage.NewUserRepository(application.Store)
	sessionRepo := storage.NewSessionRepository(application.Store)

	tokenTTL := time.Duration(application.Config.JWT.TokenTTL) * time.Minute
	authService := service.NewAuthService(application.Logger, userRepo, sessionRepo, tokenTTL)
	cartService := service.NewCartService(application.Logger, productRepo, application.Cart)
	checkoutService := service.NewCheckoutService(application.Logger, orderRepo, application.Cart)
	catalogService := service.NewCatalogService(application.Logger, productRepo, orderRepo, userRepo)

	// витрина и корзина
	router.Get("/", handlers.ProductGridHandler(application.Logger, catalogService))
	router.Get("/cart", handlers.CartHandler(application.Logger, cartService))
	router.Post("/cart/items/{id}", handlers.CartAddHandler(application.Logger, cartService))
	router.Put("/cart/items/{id}", handlers.CartQuantityHandler(application.Logger, cartService))
	router.Post("/checkout", handlers.CheckoutHandler(application.Logger, checkoutService))

	// вход, регистрация и выход
	router.Post("/auth/login", handlers.LoginHandler(application.Logger, authService, tokenTTL))
	router.Post("/auth/register", handlers.RegisterHandler(application.Logger, authService))
	router.Post("/auth/logout", handlers.LogoutHandler(application.Logger, authService))
	router.Get("/auth/session", handlers.SessionHandler(application.Logger, authService))

	// админ-панель закрыта токеном с ролью администратора
	router.Group(func(r chi.Router) {
		jwtMW := jwtmiddleware.NewJWTMiddleware()
		r.Use(jwtMW)
		r.Use(jwtmiddleware.RequireAdmin)
		r.Get("/admin/products", handlers.AdminProductsHandler(application.Logger, catalogService))
		r.Post("/admin/products", handlers.AddProductHandler(application.Logger, catalogService))
		r.Delete("/admin/products/{id}", handlers.DeleteProductHandler(application.Logger, catalogService))
		r.Get("/admin/orders", handlers.AdminOrdersHandler(application.Logger, catalogService))
		r.Get("/admin/stats", handlers.AdminStatsHandler(application.Logger, catalogService))
	})

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.Any("error", err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	stopSign := <-stop
	log.Info("received shutdown signal", slog.String("signal", stopSign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", slog.Any("error", err))
	}
	log.Info("server gracefully stopped")
}
