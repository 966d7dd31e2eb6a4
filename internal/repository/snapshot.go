package repository

import (
	"context"
	"errors"
	"fmt"

	"csv-chat/internal/domain"
)

var ErrSeedInvalid = errors.New("seed data invalid")

// Snapshot es la semilla completa que consume el ViewModel al arrancar.
type Snapshot struct {
	Conversations []domain.Conversation
	Messages      map[string][]domain.Message
}

// LoadSnapshot lee ambos repositorios una sola vez y valida los invariantes
// de la semilla: ids únicos, campos CSV coherentes y mensajes con dueño.
func LoadSnapshot(ctx context.Context, conversations ConversationRepository, messages MessageRepository) (Snapshot, error) {
	convs, err := conversations.List(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list conversations: %w", err)
	}
	msgs, err := messages.ListAll(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list messages: %w", err)
	}

	known := make(map[string]struct{}, len(convs))
	for _, conv := range convs {
		if err := conv.Validate(); err != nil {
			return Snapshot{}, fmt.Errorf("%w: conversation %q: %v", ErrSeedInvalid, conv.ID, err)
		}
		if _, dup := known[conv.ID]; dup {
			return Snapshot{}, fmt.Errorf("%w: duplicate conversation %q", ErrSeedInvalid, conv.ID)
		}
		known[conv.ID] = struct{}{}
	}

	if msgs == nil {
		msgs = make(map[string][]domain.Message)
	}
	for convID, seq := range msgs {
		if _, ok := known[convID]; !ok {
			return Snapshot{}, fmt.Errorf("%w: messages for unknown conversation %q", ErrSeedInvalid, convID)
		}
		seen := make(map[string]struct{}, len(seq))
		for _, msg := range seq {
			if err := msg.Validate(); err != nil {
				return Snapshot{}, fmt.Errorf("%w: message %q: %v", ErrSeedInvalid, msg.ID, err)
			}
			if _, dup := seen[msg.ID]; dup {
				return Snapshot{}, fmt.Errorf("%w: duplicate message %q in conversation %q", ErrSeedInvalid, msg.ID, convID)
			}
			seen[msg.ID] = struct{}{}
		}
	}

	return Snapshot{Conversations: convs, Messages: msgs}, nil
}
