package domain

import (
	"errors"
	"time"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

var ErrMessageInvalid = errors.New("message invalid")

type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Cost      *float64  `json:"cost,omitempty"`
	HasPlot   bool      `json:"has_plot,omitempty"`
}

func (m Message) Validate() error {
	if m.ID == "" {
		return ErrMessageInvalid
	}
	if m.Role != RoleUser && m.Role != RoleAssistant {
		return ErrMessageInvalid
	}
	if m.Cost != nil && *m.Cost < 0 {
		return ErrMessageInvalid
	}
	return nil
}

// CloneMessages copia la secuencia, incluido el puntero de costo, para que
// quien la reciba no pueda mutar el estado original.
func CloneMessages(in []Message) []Message {
	out := make([]Message, len(in))
	for i, msg := range in {
		if msg.Cost != nil {
			cost := *msg.Cost
			msg.Cost = &cost
		}
		out[i] = msg
	}
	return out
}
