package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"csv-chat/internal/config"
	"csv-chat/internal/db"
	"csv-chat/internal/repository"
	"csv-chat/internal/service"
)

// LoadSeed elige la fuente de semilla según la configuración y la lee una vez.
// Avisa si DEFAULT_CONVERSATION_ID no está en la semilla (con Postgres los ids
// son UUID y el valor por defecto "1" nunca coincide).
func LoadSeed(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.Snapshot, error) {
	snap, err := loadSnapshot(ctx, cfg, logger)
	if err != nil {
		return snap, err
	}

	defaultID := cfg.DefaultConversationID
	if defaultID == "" {
		defaultID = service.DefaultConversationID
	}
	if !hasConversation(snap, defaultID) {
		logger.Warn("default conversation not found in seed, set DEFAULT_CONVERSATION_ID",
			zap.String("default_conversation_id", defaultID),
			zap.String("seed_source", cfg.SeedSource),
		)
	}
	return snap, nil
}

func hasConversation(snap repository.Snapshot, id string) bool {
	for _, conv := range snap.Conversations {
		if conv.ID == id {
			return true
		}
	}
	return false
}

func loadSnapshot(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.Snapshot, error) {
	switch cfg.SeedSource {
	case "", config.SeedSourceMock:
		logger.Info("using mock seed data")
		return repository.LoadSnapshot(ctx,
			repository.NewMockConversationRepository(repository.MockConversations()),
			repository.NewMockMessageRepository(repository.MockMessages()),
		)
	case config.SeedSourcePostgres:
		if cfg.DatabaseURL == "" {
			return repository.Snapshot{}, fmt.Errorf("seed source %q requires DATABASE_URL", cfg.SeedSource)
		}
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			return repository.Snapshot{}, fmt.Errorf("db connect: %w", err)
		}
		defer pool.Close()
		if err := db.Ping(ctx, pool); err != nil {
			return repository.Snapshot{}, fmt.Errorf("db ping: %w", err)
		}
		snap, err := repository.LoadSnapshot(ctx,
			repository.NewPgConversationRepository(pool),
			repository.NewPgMessageRepository(pool),
		)
		if err != nil {
			return repository.Snapshot{}, err
		}
		logger.Info("loaded seed from postgres", zap.Int("conversations", len(snap.Conversations)))
		return snap, nil
	default:
		return repository.Snapshot{}, fmt.Errorf("unknown seed source %q", cfg.SeedSource)
	}
}
