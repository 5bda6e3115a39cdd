package project

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"ProjectPortal/internal/notification"
)

var ErrProjectNotFound = errors.New("project not found")

// Store is the persistence capability the service needs. *Repository is the
// Mongo implementation.
type Store interface {
	CreateProject(ctx context.Context, p *Project) error
	FindProjectByID(ctx context.Context, id string) (*Project, error)
	FindAllProjects(ctx context.Context) ([]*Project, error)
	UpdateProject(ctx context.Context, p *Project) error
	DeleteProject(ctx context.Context, id string) error
}

// Service coordinates project CRUD. Create and update are triggering
// operations: after the primary write succeeds they record a project
// notification, which the directory then pushes to the live feed.
type Service struct {
	store         Store
	notifications *notification.Service
	logger        *zap.Logger
}

func NewService(store Store, notifications *notification.Service, logger *zap.Logger) *Service {
	return &Service{store: store, notifications: notifications, logger: logger}
}

func (s *Service) CreateProject(ctx context.Context, req AddProjectRequest, actorID string) error {
	if req.ProjectName == "" || req.ClientID == "" {
		return errors.New("project name and client are required")
	}

	p := &Project{
		ID:          primitive.NewObjectID(),
		ProjectName: req.ProjectName,
		Description: req.Description,
		Image:       req.Image,
		ClientID:    req.ClientID,
		UserID:      req.UserID,
		StatusID:    req.StatusID,
		Budget:      req.Budget,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Created:     time.Now(),
	}
	if p.Image == "" {
		p.Image = DefaultImage
	}

	if err := s.store.CreateProject(ctx, p); err != nil {
		return err
	}

	s.notify(ctx, fmt.Sprintf("Project %s was created.", p.ProjectName), actorID)
	return nil
}

func (s *Service) GetProjects(ctx context.Context) ([]*Project, error) {
	return s.store.FindAllProjects(ctx)
}

func (s *Service) GetProject(ctx context.Context, id string) (*Project, error) {
	project, err := s.store.FindProjectByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	return project, nil
}

// UpdateProject rewrites the mutable fields of an existing project. Every
// successful update notifies the feed; rapid consecutive edits each produce
// their own notification.
func (s *Service) UpdateProject(ctx context.Context, req EditProjectRequest, actorID string) error {
	project, err := s.store.FindProjectByID(ctx, req.ID)
	if err != nil {
		return err
	}
	if project == nil {
		return ErrProjectNotFound
	}

	project.ProjectName = req.ProjectName
	project.Description = req.Description
	project.Budget = req.Budget
	project.StartDate = req.StartDate
	project.EndDate = req.EndDate
	project.ClientID = req.ClientID
	project.StatusID = req.StatusID
	project.UserID = req.UserID
	if req.Image != "" {
		project.Image = req.Image
	}

	if err := s.store.UpdateProject(ctx, project); err != nil {
		return err
	}

	s.notify(ctx, fmt.Sprintf("Project %s was updated.", project.ProjectName), actorID)
	return nil
}

func (s *Service) DeleteProject(ctx context.Context, id string) error {
	project, err := s.store.FindProjectByID(ctx, id)
	if err != nil {
		return err
	}
	if project == nil {
		return ErrProjectNotFound
	}
	return s.store.DeleteProject(ctx, id)
}

func (s *Service) notify(ctx context.Context, message, actorID string) {
	in := notification.CreateInput{TypeID: notification.TypeProject, Message: message}
	if _, err := s.notifications.Create(ctx, in, actorID); err != nil {
		s.logger.Warn("Notification create failed", zap.String("message", message), zap.Error(err))
	}
}
