package chat

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Log is an append-only, ordered record of the turns in a conversation. It is
// safe for concurrent use.
type Log struct {
	m     sync.RWMutex
	turns []Turn
}

// AppendTurn adds a turn to the end of the log and returns it. It is the only
// way to modify the log.
func (l *Log) AppendTurn(sender Sender, text string) Turn {
	turn := Turn{
		ID:        uuid.New(),
		Sender:    sender,
		Text:      text,
		CreatedAt: time.Now(),
	}

	l.m.Lock()
	l.turns = append(l.turns, turn)
	l.m.Unlock()

	return turn
}

// Turns returns a copy of the turns in the log, oldest first.
func (l *Log) Turns() []Turn {
	l.m.RLock()
	defer l.m.RUnlock()

	turns := make([]Turn, len(l.turns))
	copy(turns, l.turns)

	return turns
}

// Len returns the number of turns in the log.
func (l *Log) Len() int {
	l.m.RLock()
	defer l.m.RUnlock()

	return len(l.turns)
}
