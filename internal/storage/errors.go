package storage

import (
	"errors"
	"fmt"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrNoSession       = errors.New("no active session")
)

// CorruptStoreError означает, что содержимое коллекции не проходит проверку
// формы: хранилище было испорчено извне. Операция завершается с понятной
// ошибкой вместо падения в рантайме.
type CorruptStoreError struct {
	Collection string
	Err        error
}

func (e *CorruptStoreError) Error() string {
	return fmt.Sprintf("store collection %q is corrupted: %v", e.Collection, e.Err)
}

func (e *CorruptStoreError) Unwrap() error {
	return e.Err
}

// PersistError означает, что запись в хранилище не удалась. Состояние
// вызывающего при этом не меняется, операцию можно повторить.
type PersistError struct {
	Key string
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("failed to persist %q: %v", e.Key, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}
