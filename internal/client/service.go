package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"ProjectPortal/internal/notification"
)

var ErrClientNotFound = errors.New("client not found")

// Store is the persistence capability the service needs. *Repository is the
// Mongo implementation.
type Store interface {
	CreateClient(ctx context.Context, cl *Client) error
	FindClientByID(ctx context.Context, id string) (*Client, error)
	FindAllClients(ctx context.Context) ([]*Client, error)
	UpdateClient(ctx context.Context, cl *Client) error
	DeleteClient(ctx context.Context, id string) error
}

// Service coordinates client CRUD; creating a client notifies the feed.
type Service struct {
	store         Store
	notifications *notification.Service
	logger        *zap.Logger
}

func NewService(store Store, notifications *notification.Service, logger *zap.Logger) *Service {
	return &Service{store: store, notifications: notifications, logger: logger}
}

func (s *Service) CreateClient(ctx context.Context, req AddClientRequest, actorID string) error {
	if req.ClientName == "" || req.Email == "" {
		return errors.New("client name and email are required")
	}

	cl := &Client{
		ID:         primitive.NewObjectID(),
		ClientName: req.ClientName,
		Email:      req.Email,
		Location:   req.Location,
		Phone:      req.Phone,
		Image:      req.Image,
		Created:    time.Now(),
	}

	if err := s.store.CreateClient(ctx, cl); err != nil {
		return err
	}

	in := notification.CreateInput{
		TypeID:  notification.TypeProject,
		Message: fmt.Sprintf("Client %s was added.", cl.ClientName),
	}
	if _, err := s.notifications.Create(ctx, in, actorID); err != nil {
		s.logger.Warn("Notification create failed", zap.String("message", in.Message), zap.Error(err))
	}

	return nil
}

func (s *Service) GetClients(ctx context.Context) ([]*Client, error) {
	return s.store.FindAllClients(ctx)
}

func (s *Service) GetClient(ctx context.Context, id string) (*Client, error) {
	cl, err := s.store.FindClientByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cl == nil {
		return nil, ErrClientNotFound
	}
	return cl, nil
}

func (s *Service) UpdateClient(ctx context.Context, req EditClientRequest) error {
	cl, err := s.store.FindClientByID(ctx, req.ID)
	if err != nil {
		return err
	}
	if cl == nil {
		return ErrClientNotFound
	}

	cl.ClientName = req.ClientName
	cl.Email = req.Email
	cl.Location = req.Location
	cl.Phone = req.Phone
	if req.Image != "" {
		cl.Image = req.Image
	}

	return s.store.UpdateClient(ctx, cl)
}

func (s *Service) DeleteClient(ctx context.Context, id string) error {
	cl, err := s.store.FindClientByID(ctx, id)
	if err != nil {
		return err
	}
	if cl == nil {
		return ErrClientNotFound
	}
	return s.store.DeleteClient(ctx, id)
}
