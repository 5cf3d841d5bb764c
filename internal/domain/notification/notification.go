package notification

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("notification: not found")

// Notification is a write-only side channel; the core never reads it back for
// business decisions.
type Notification struct {
	ID        string
	UserID    string
	Message   string
	IsRead    bool
	Metadata  map[string]string
	CreatedAt time.Time
}

func New(id, userID, message string) *Notification {
	return &Notification{
		ID:        id,
		UserID:    userID,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
}

// WithMetadata attaches structured details such as the order id or tracking
// info.
func (n *Notification) WithMetadata(key, value string) *Notification {
	if n.Metadata == nil {
		n.Metadata = make(map[string]string)
	}
	n.Metadata[key] = value
	return n
}

func (n *Notification) MarkRead() {
	n.IsRead = true
}

func (n *Notification) Clone() *Notification {
	if n == nil {
		return nil
	}
	clone := *n
	if n.Metadata != nil {
		clone.Metadata = make(map[string]string, len(n.Metadata))
		for k, v := range n.Metadata {
			clone.Metadata[k] = v
		}
	}
	return &clone
}
