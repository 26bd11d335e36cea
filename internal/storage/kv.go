package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// имена коллекций и скалярных ключей в kv-хранилище
const (
	CollectionProducts = "products"
	CollectionOrders   = "orders"
	CollectionUsers    = "users"
	KeyCurrentUser     = "currentUser"
)

// Store — локальное key-value хранилище поверх sqlite-файла.
// Каждая коллекция хранится целиком как одно JSON-значение по своему ключу,
// запись всегда перезаписывает коллекцию полностью.
type Store struct {
	db *sql.DB
}

// Open открывает (или создаёт) файл хранилища и готовит kv-таблицу.
// Вызов идемпотентен.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to store: %w", err)
	}

	// sqlite допускает только одного писателя, ограничиваем пул
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (name TEXT PRIMARY KEY, value TEXT NOT NULL)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create kv table: %w", err)
	}

	return &Store{db: db}, nil
}

// NewStore оборачивает готовое подключение, используется в тестах.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close закрывает файл хранилища.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get возвращает сырое JSON-значение по ключу; ok=false, если ключа нет.
func (s *Store) Get(ctx context.Context, name string) ([]byte, bool, error) {
	var value string
	row := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE name = ?", name)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read %q: %w", name, err)
	}
	return []byte(value), true, nil
}

// Set перезаписывает значение по ключу целиком.
func (s *Store) Set(ctx context.Context, name string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO kv (name, value) VALUES (?, ?) ON CONFLICT(name) DO UPDATE SET value = excluded.value",
		name, string(value),
	)
	if err != nil {
		return &PersistError{Key: name, Err: err}
	}
	return nil
}

// Delete удаляет ключ; отсутствие ключа ошибкой не считается.
func (s *Store) Delete(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv WHERE name = ?", name); err != nil {
		return &PersistError{Key: name, Err: err}
	}
	return nil
}
