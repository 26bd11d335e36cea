package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"

	"github.com/linemk/silkbloom/internal/config"
	"github.com/linemk/silkbloom/internal/domain/models"
	"github.com/linemk/silkbloom/internal/storage"
)

// Утилита для подготовки локального хранилища: засевает отсутствующие
// коллекции стартовыми данными, а с флагом -reset перезаписывает каталог
// и пользователей начисто (заказы при сбросе тоже обнуляются).
func main() {
	var reset bool
	flag.BoolVar(&reset, "reset", false, "overwrite collections with seed data")

	cfg := config.MustLoad()

	st, err := storage.Open(cfg.Store.Path)
	if err != nil {
		log.Fatalf("failed to open store %s: %v", cfg.Store.Path, err)
	}
	defer st.Close()

	ctx := context.Background()

	if reset {
		if err := resetStore(ctx, st); err != nil {
			log.Fatalf("failed to reset store: %v", err)
		}
		log.Printf("store %s reset to seed data", cfg.Store.Path)
		return
	}

	if err := st.EnsureSeed(ctx); err != nil {
		log.Fatalf("failed to seed store: %v", err)
	}
	log.Printf("store %s seeded (existing collections kept)", cfg.Store.Path)
}

func resetStore(ctx context.Context, st *storage.Store) error {
	users, err := storage.SeedUsers()
	if err != nil {
		return err
	}

	for name, value := range map[string]any{
		storage.CollectionProducts: storage.SeedProducts(),
		storage.CollectionOrders:   []*models.Order{},
		storage.CollectionUsers:    users,
	} {
		raw, err := json.Marshal(value)
		if err != nil {
			return err
		}
		if err := st.Set(ctx, name, raw); err != nil {
			return err
		}
	}
	// сброс затирает и сохранённую сессию
	return st.Delete(ctx, storage.KeyCurrentUser)
}
