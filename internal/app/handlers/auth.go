package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/linemk/silkbloom/internal/domain/models"
	security "github.com/linemk/silkbloom/internal/jwt-new"
	"github.com/linemk/silkbloom/internal/service"
	"github.com/linemk/silkbloom/internal/storage"
)

// LoginRequest — форма входа: email или телефон плюс пароль.
type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse — ответ при успешном входе.
type LoginResponse struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// RegisterRequest — форма регистрации нового покупателя.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty,min=7"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

var validate = validator.New()

// LoginHandler – HTTP-обработчик входа. При успехе ставит cookie сессии
// с JWT-токеном и возвращает имя и роль пользователя.
func LoginHandler(log *slog.Logger, authService service.AuthServiceInterface, tokenTTL time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.LoginHandler"
		logger := log.With(slog.String("op", op))

		var req LoginRequest
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

		token, user, err := authService.Login(r.Context(), req.Login, req.Password)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				logger.Warn("invalid credentials")
				http.Error(w, "invalid credentials", http.StatusUnauthorized)
				return
			}
			logger.Error("login failed", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     security.SessionCookie,
			Value:    token,
			Path:     "/",
			Expires:  time.Now().Add(tokenTTL),
			HttpOnly: true,
		})

		resp := LoginResponse{Name: user.Name, Role: user.Role}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
	}
}

// RegisterHandler создаёт нового покупателя.
func RegisterHandler(log *slog.Logger, authService service.AuthServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.RegisterHandler"
		logger := log.With(slog.String("op", op))

		var req RegisterRequest
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

		user, err := authService.Register(r.Context(), req.Email, req.Phone, req.Name, req.Password)
		if err != nil {
			if errors.Is(err, service.ErrUserExists) {
				logger.Warn("user already exists")
				http.Error(w, "user already exists", http.StatusConflict)
				return
			}
			logger.Error("registration failed", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(LoginResponse{Name: user.Name, Role: models.RoleCustomer}); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
		}
	}
}

// SessionHandler отдаёт пользователя сохранённой сессии: страница после
// перезагрузки узнаёт, кто вошёл.
func SessionHandler(log *slog.Logger, authService service.AuthServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.SessionHandler"
		logger := log.With(slog.String("op", op))

		user, err := authService.CurrentUser(r.Context())
		if err != nil {
			if errors.Is(err, storage.ErrNoSession) {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			logger.Error("failed to read session", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(LoginResponse{Name: user.Name, Role: user.Role}); err != nil {
			logger.Error("failed to encode response", slog.Any("error", err))
		}
	}
}

// LogoutHandler завершает сессию: чистит запись в хранилище и cookie.
func LogoutHandler(log *slog.Logger, authService service.AuthServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.LogoutHandler"
		logger := log.With(slog.String("op", op))

		if err := authService.Logout(r.Context()); err != nil {
			logger.Error("logout failed", slog.Any("error", err))
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     security.SessionCookie,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		})
		w.WriteHeader(http.StatusNoContent)
	}
}
