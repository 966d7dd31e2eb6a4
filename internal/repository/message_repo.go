package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"csv-chat/internal/domain"
)

// MessageRepository devuelve los mensajes semilla agrupados por conversación,
// en orden de inserción.
type MessageRepository interface {
	ListAll(ctx context.Context) (map[string][]domain.Message, error)
}

type PgMessageRepository struct {
	pool *pgxpool.Pool
}

func NewPgMessageRepository(pool *pgxpool.Pool) *PgMessageRepository {
	return &PgMessageRepository{pool: pool}
}

func (r *PgMessageRepository) ListAll(ctx context.Context) (map[string][]domain.Message, error) {
	const query = `
		SELECT m.id::text, m.conversation_id::text, m.role::text, m.content, m.cost,
		       COALESCE(m.is_plotting, false)
		         OR EXISTS (SELECT 1 FROM plots p WHERE p.message_id = m.id),
		       m.created_at
		FROM messages m
		ORDER BY m.conversation_id, m.created_at ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make(map[string][]domain.Message)
	for rows.Next() {
		var (
			msg            domain.Message
			conversationID string
			role           string
		)
		err = rows.Scan(
			&msg.ID,
			&conversationID,
			&role,
			&msg.Content,
			&msg.Cost,
			&msg.HasPlot,
			&msg.Timestamp,
		)
		if err != nil {
			return nil, err
		}
		msg.Role = domain.Role(role)
		messages[conversationID] = append(messages[conversationID], msg)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}

type MockMessageRepository struct {
	items map[string][]domain.Message
}

func NewMockMessageRepository(items map[string][]domain.Message) *MockMessageRepository {
	return &MockMessageRepository{items: items}
}

func (r *MockMessageRepository) ListAll(_ context.Context) (map[string][]domain.Message, error) {
	out := make(map[string][]domain.Message, len(r.items))
	for id, msgs := range r.items {
		out[id] = domain.CloneMessages(msgs)
	}
	return out, nil
}
