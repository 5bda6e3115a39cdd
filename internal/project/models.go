package project

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultImage is assigned when a project is created without one.
const DefaultImage = "/Images/templates/project-template.svg"

type Project struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProjectName string             `bson:"project_name" json:"project_name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	ClientID    string             `bson:"client_id" json:"client_id"`
	UserID      string             `bson:"user_id" json:"user_id"`
	StatusID    int                `bson:"status_id" json:"status_id"`
	Budget      float64            `bson:"budget,omitempty" json:"budget,omitempty"`
	StartDate   time.Time          `bson:"start_date" json:"start_date"`
	EndDate     time.Time          `bson:"end_date,omitempty" json:"end_date,omitempty"`
	Created     time.Time          `bson:"created" json:"created"`
}

type AddProjectRequest struct {
	ProjectName string    `json:"project_name"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	ClientID    string    `json:"client_id"`
	UserID      string    `json:"user_id"`
	StatusID    int       `json:"status_id"`
	Budget      float64   `json:"budget"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
}

type EditProjectRequest struct {
	ID          string    `json:"id"`
	ProjectName string    `json:"project_name"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	ClientID    string    `json:"client_id"`
	UserID      string    `json:"user_id"`
	StatusID    int       `json:"status_id"`
	Budget      float64   `json:"budget"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
}
