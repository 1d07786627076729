package poll

import (
	"time"

	"github.com/google/uuid"
)

// State is the lifecycle state of a poll instance.
type State string

const (
	StatePending State = "pending"
	StateOpen    State = "open"
	StateClosed  State = "closed"
	StateFailed  State = "failed"
)

// ChannelID identifies the chat a poll runs in.
type ChannelID int64

// MessageRef is the platform handle of a posted message.
type MessageRef struct {
	Channel ChannelID
	ID      int
}

// Originator identifies who started a poll, for audit logging.
type Originator struct {
	ID   int64
	Name string
}

// Instance is one live poll. It is owned exclusively by the controller that
// created it: Pending until posted, Open while collecting reactions, then
// Closed after the results are announced, or Failed if the poll message
// could not be read back at close time.
type Instance struct {
	ID         uuid.UUID
	Definition *Definition
	Channel    ChannelID
	Originator Originator
	Message    MessageRef
	State      State
	CreatedAt  time.Time
}

// Snapshot is a read-only view of an instance for the ops endpoint.
type Snapshot struct {
	ID       string    `json:"id"`
	ChatID   int64     `json:"chat_id"`
	Options  int       `json:"options"`
	Deadline time.Time `json:"deadline"`
	State    State     `json:"state"`
}

func (i *Instance) snapshot() Snapshot {
	return Snapshot{
		ID:       i.ID.String(),
		ChatID:   int64(i.Channel),
		Options:  len(i.Definition.Options),
		Deadline: i.Definition.Deadline,
		State:    i.State,
	}
}
