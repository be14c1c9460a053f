package chat

import (
	"time"

	"github.com/google/uuid"
)

// Sender identifies who a turn belongs to.
type Sender string

const (
	// User is the sender of questions.
	User Sender = "user"

	// Bot is the sender of answers.
	Bot Sender = "bot"
)

// Turn is one message in the conversation.
type Turn struct {
	ID        uuid.UUID
	Sender    Sender
	Text      string
	CreatedAt time.Time
}
