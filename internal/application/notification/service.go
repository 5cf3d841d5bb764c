package notification

import (
	"context"
	"fmt"

	domnotification "github.com/cartella-shop/fulfillment/internal/domain/notification"
)

type IDGenerator interface {
	NewID() string
}

// Service persists user-facing notifications. It sits behind the outbox
// worker; nothing on the checkout path calls it synchronously.
type Service struct {
	notifications domnotification.Repository
	idGenerator   IDGenerator
}

func NewService(notifications domnotification.Repository, idGen IDGenerator) *Service {
	return &Service{
		notifications: notifications,
		idGenerator:   idGen,
	}
}

func (s *Service) Create(ctx context.Context, userID, message string, metadata map[string]string) (*domnotification.Notification, error) {
	n := domnotification.New(s.idGenerator.NewID(), userID, message)
	for k, v := range metadata {
		n.WithMetadata(k, v)
	}
	if err := s.notifications.Insert(ctx, n); err != nil {
		return nil, fmt.Errorf("notification: insert: %w", err)
	}
	return n, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]*domnotification.Notification, error) {
	return s.notifications.ListByUser(ctx, userID)
}

func (s *Service) MarkAsRead(ctx context.Context, id string) (*domnotification.Notification, error) {
	n, err := s.notifications.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	n.MarkRead()
	if err := s.notifications.Update(ctx, n); err != nil {
		return nil, fmt.Errorf("notification: update: %w", err)
	}
	return n, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.notifications.Delete(ctx, id)
}
