// Package events fans task change notifications out to the owner's open
// websocket connections.
package events

import "time"

type Type string

const (
	TaskCreated Type = "task.created"
	TaskUpdated Type = "task.updated"
	TaskDeleted Type = "task.deleted"
)

// Event is one change to a user's tasks. UserID picks the recipients and is
// not sent on the wire.
type Event struct {
	Type    Type      `json:"type"`
	UserID  int64     `json:"-"`
	TaskIDs []int64   `json:"task_ids"`
	At      time.Time `json:"at"`
}

// Publisher accepts events. Publish must not block the caller.
type Publisher interface {
	Publish(e Event)
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(Event) {}
