package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrEmptyMessage rejects a create with no message before anything is
// persisted.
var ErrEmptyMessage = errors.New("notification message is required")

// Store is the persistence capability the service needs. *Repository is the
// Mongo implementation.
type Store interface {
	InsertNotification(ctx context.Context, n *Notification) error
	NotificationExists(ctx context.Context, id string) (bool, error)
	InsertDismissal(ctx context.Context, d *Dismissal) error
	HasDismissal(ctx context.Context, notificationID, userID string) (bool, error)
	ListVisible(ctx context.Context, userID string, limit int) ([]*Notification, error)
}

// Broadcaster pushes events to live connections. Delivery is best-effort;
// implementations must never block or return errors to the caller. The
// realtime hub is the production implementation.
type Broadcaster interface {
	PublishToAll(event string, payload interface{})
	PublishToUser(userID, event string, payload interface{})
}

// CreateInput carries the caller-supplied fields of a new notification.
// ID, creation time and (when absent) the image are filled by the service.
type CreateInput struct {
	TargetGroupID int    `json:"target_group_id"`
	TypeID        int    `json:"type_id"`
	Image         string `json:"image"`
	Message       string `json:"message"`
}

// Service is the notification directory: it owns creation, visibility and
// dismissal of notifications, and publishes the matching realtime events.
type Service struct {
	store       Store
	broadcaster Broadcaster
	logger      *zap.Logger
}

func NewService(store Store, broadcaster Broadcaster, logger *zap.Logger) *Service {
	return &Service{store: store, broadcaster: broadcaster, logger: logger}
}

// Create validates and persists a new notification, then pushes the newest
// visible item for userID to every live connection. Persistence strictly
// precedes the push: when the insert fails nothing is broadcast, so a client
// never hears about a notification it cannot fetch with a catch-up query.
func (s *Service) Create(ctx context.Context, in CreateInput, userID string) (*Notification, error) {
	if strings.TrimSpace(in.Message) == "" {
		return nil, ErrEmptyMessage
	}
	if userID == "" {
		userID = AnonymousUserID
	}

	n := &Notification{
		ID:            uuid.NewString(),
		TargetGroupID: in.TargetGroupID,
		TypeID:        in.TypeID,
		Image:         in.Image,
		Message:       in.Message,
		Created:       time.Now(),
	}
	if n.TargetGroupID == 0 {
		n.TargetGroupID = DefaultTargetGroupID
	}
	if n.Image == "" {
		n.Image = DefaultImageForType(n.TypeID)
	}

	if err := s.store.InsertNotification(ctx, n); err != nil {
		return nil, fmt.Errorf("persist notification: %w", err)
	}

	// Re-read the visible list so the pushed item is exactly what the actor's
	// own catch-up query would return as its newest entry.
	visible, err := s.store.ListVisible(ctx, userID, DefaultListLimit)
	if err != nil {
		s.logger.Warn("Notification persisted but visible-list reload failed, skipping broadcast",
			zap.String("notification_id", n.ID), zap.Error(err))
		return n, nil
	}
	if len(visible) > 0 {
		s.broadcaster.PublishToAll(EventNewNotification, visible[0])
	}

	return n, nil
}

// ListVisible returns up to limit notifications not dismissed by userID,
// newest first. Read-only; a fresh query on every call.
func (s *Service) ListVisible(ctx context.Context, userID string, limit int) ([]*Notification, error) {
	if userID == "" {
		userID = AnonymousUserID
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return s.store.ListVisible(ctx, userID, limit)
}

// Dismiss records that userID no longer wants to see the notification, then
// tells that user's live connections to drop it. Dismissing twice, or
// dismissing an id that does not exist, is a silent no-op: the caller's
// intent is already satisfied either way.
func (s *Service) Dismiss(ctx context.Context, notificationID, userID string) error {
	if userID == "" {
		userID = AnonymousUserID
	}

	exists, err := s.store.NotificationExists(ctx, notificationID)
	if err != nil {
		return fmt.Errorf("look up notification: %w", err)
	}
	if !exists {
		return nil
	}

	dismissed, err := s.store.HasDismissal(ctx, notificationID, userID)
	if err != nil {
		return fmt.Errorf("look up dismissal: %w", err)
	}
	if dismissed {
		return nil
	}

	if err := s.store.InsertDismissal(ctx, &Dismissal{NotificationID: notificationID, UserID: userID}); err != nil {
		return fmt.Errorf("persist dismissal: %w", err)
	}

	s.broadcaster.PublishToUser(userID, EventDismissed, notificationID)
	return nil
}
