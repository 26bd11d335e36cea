package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/linemk/silkbloom/internal/domain/models"
	security "github.com/linemk/silkbloom/internal/jwt-new"
	"github.com/linemk/silkbloom/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials — логин или пароль не подошли; детали не раскрываем.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserExists — пользователь с таким идентификатором уже зарегистрирован.
	ErrUserExists = errors.New("user already exists")
)

type AuthService struct {
	log         *slog.Logger
	userRepo    storage.UserStorage
	sessionRepo storage.SessionStorage
	tokenTTL    time.Duration
}

func NewAuthService(log *slog.Logger, userRepo storage.UserStorage, sessionRepo storage.SessionStorage, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		log:         log,
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		tokenTTL:    tokenTTL,
	}
}

type AuthServiceInterface interface {
	Login(ctx context.Context, login, password string) (string, *models.User, error)
	Register(ctx context.Context, email, phone, name, password string) (*models.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.User, error)
}

// Login осуществляет вход по email или телефону. Пароль сравнивается с
// bcrypt-хэшем; при несовпадении (или отсутствии пользователя) возвращается
// ErrInvalidCredentials, сессия при этом не меняется. При успехе пользователь
// записывается в сессию хранилища и выдаётся JWT-токен.
func (a *AuthService) Login(ctx context.Context, login, password string) (string, *models.User, error) {
	const op = "service.AuthService.Login"
	logger := a.log.With(
		slog.String("op", op),
		slog.String("login", login),
	)
	logger.Info("checking user")

	user, err := a.userRepo.GetUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			logger.Warn("user not found")
			return "", nil, ErrInvalidCredentials
		}
		logger.Error("failed to get user", slog.Any("error", err))
		return "", nil, fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PassHash, []byte(password)); err != nil {
		logger.Warn("invalid password")
		return "", nil, ErrInvalidCredentials
	}

	// сессия сохраняется в хранилище, чтобы пережить перезапуск
	if err := a.sessionRepo.SetCurrentUser(ctx, user); err != nil {
		logger.Error("failed to persist session", slog.Any("error", err))
		return "", nil, fmt.Errorf("%s: failed to persist session: %w", op, err)
	}

	token, err := security.NewToken(ctx, user, a.tokenTTL)
	if err != nil {
		logger.Error("failed to generate token", slog.Any("error", err))
		return "", nil, fmt.Errorf("%s: failed to generate token: %w", op, err)
	}

	logger.Info("user logged in successfully", slog.String("role", user.Role))
	return token, user, nil
}

// Register создаёт нового покупателя. Дубликат email или телефона отклоняется.
func (a *AuthService) Register(ctx context.Context, email, phone, name, password string) (*models.User, error) {
	const op = "service.AuthService.Register"
	logger := a.log.With(slog.String("op", op), slog.String("email", email))

	if _, err := a.userRepo.GetUserByLogin(ctx, email); err == nil {
		logger.Warn("user already exists")
		return nil, ErrUserExists
	} else if !errors.Is(err, storage.ErrUserNotFound) {
		logger.Error("failed to check user", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to check user: %w", op, err)
	}
	if phone != "" {
		if _, err := a.userRepo.GetUserByLogin(ctx, phone); err == nil {
			logger.Warn("phone already registered")
			return nil, ErrUserExists
		} else if !errors.Is(err, storage.ErrUserNotFound) {
			logger.Error("failed to check phone", slog.Any("error", err))
			return nil, fmt.Errorf("%s: failed to check phone: %w", op, err)
		}
	}

	// bcrypt сам добавляет соль
	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("failed to hash password", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to hash password: %w", op, err)
	}

	user := &models.User{
		Email:    email,
		Phone:    phone,
		PassHash: passHash,
		Name:     name,
		Role:     models.RoleCustomer,
	}
	if err := a.userRepo.AppendUser(ctx, user); err != nil {
		logger.Error("failed to create user", slog.Any("error", err))
		return nil, fmt.Errorf("%s: failed to create user: %w", op, err)
	}

	logger.Info("user registered")
	return user, nil
}

// Logout завершает текущую сессию.
func (a *AuthService) Logout(ctx context.Context) error {
	const op = "service.AuthService.Logout"

	if err := a.sessionRepo.ClearCurrentUser(ctx); err != nil {
		a.log.Error("failed to clear session", slog.String("op", op), slog.Any("error", err))
		return fmt.Errorf("%s: failed to clear session: %w", op, err)
	}
	return nil
}

// CurrentUser возвращает пользователя сохранённой сессии.
func (a *AuthService) CurrentUser(ctx context.Context) (*models.User, error) {
	const op = "service.AuthService.CurrentUser"

	user, err := a.sessionRepo.CurrentUser(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNoSession) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}
