package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"csv-chat/internal/domain"
)

// ConversationRepository expone la lista semilla de conversaciones. Es de solo lectura.
type ConversationRepository interface {
	List(ctx context.Context) ([]domain.Conversation, error)
}

type PgConversationRepository struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

func NewPgConversationRepository(pool *pgxpool.Pool) *PgConversationRepository {
	return &PgConversationRepository{pool: pool, now: time.Now}
}

func (r *PgConversationRepository) List(ctx context.Context) ([]domain.Conversation, error) {
	const query = `
		SELECT c.id::text, c.title, c.updated_at, f.filename,
		       COALESCE(c.csv_expires_at, f.expires_at)
		FROM conversations c
		LEFT JOIN csv_files f ON f.id = c.csv_id AND f.is_deleted = false
		ORDER BY c.updated_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	loadedAt := r.now().UTC()
	var conversations []domain.Conversation
	for rows.Next() {
		var (
			conv     domain.Conversation
			filename *string
			expiry   *time.Time
		)
		if err = rows.Scan(&conv.ID, &conv.Title, &conv.Timestamp, &filename, &expiry); err != nil {
			return nil, err
		}
		conv.CSVStatus = deriveCSVStatus(filename, expiry, loadedAt)
		if conv.HasCSV() {
			conv.CSVFilename = *filename
			conv.CSVExpiry = expiry
		}
		conversations = append(conversations, conv)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return conversations, nil
}

// deriveCSVStatus traduce la fila de csv_files al estado que muestra la UI.
// Sin archivo o sin vencimiento no hay CSV utilizable.
func deriveCSVStatus(filename *string, expiry *time.Time, now time.Time) domain.CSVStatus {
	if filename == nil || *filename == "" || expiry == nil {
		return domain.CSVStatusNone
	}
	if expiry.Before(now) {
		return domain.CSVStatusExpired
	}
	return domain.CSVStatusActive
}

// MockConversationRepository sirve datos semilla en memoria.
type MockConversationRepository struct {
	items []domain.Conversation
}

func NewMockConversationRepository(items []domain.Conversation) *MockConversationRepository {
	return &MockConversationRepository{items: items}
}

func (r *MockConversationRepository) List(_ context.Context) ([]domain.Conversation, error) {
	out := make([]domain.Conversation, len(r.items))
	copy(out, r.items)
	return out, nil
}
