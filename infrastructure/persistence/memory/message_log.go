package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"campaign-manager/domain/core/entities"
)

// MessageLog keeps generated messages in memory
type MessageLog struct {
	mu       sync.Mutex
	messages []entities.GeneratedMessage
}

// NewMessageLog creates an empty log
func NewMessageLog() *MessageLog {
	return &MessageLog{}
}

// Record appends msg, assigning an ID when it has none
func (l *MessageLog) Record(ctx context.Context, msg *entities.GeneratedMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, *msg)
	return nil
}

// Messages returns a copy of everything recorded so far
func (l *MessageLog) Messages() []entities.GeneratedMessage {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]entities.GeneratedMessage, len(l.messages))
	copy(out, l.messages)
	return out
}
