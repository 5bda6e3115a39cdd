package client

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Client struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClientName string             `bson:"client_name" json:"client_name"`
	Email      string             `bson:"email" json:"email"`
	Location   string             `bson:"location,omitempty" json:"location,omitempty"`
	Phone      string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Image      string             `bson:"image,omitempty" json:"image,omitempty"`
	Created    time.Time          `bson:"created" json:"created"`
}

type AddClientRequest struct {
	ClientName string `json:"client_name"`
	Email      string `json:"email"`
	Location   string `json:"location"`
	Phone      string `json:"phone"`
	Image      string `json:"image"`
}

type EditClientRequest struct {
	ID         string `json:"id"`
	ClientName string `json:"client_name"`
	Email      string `json:"email"`
	Location   string `json:"location"`
	Phone      string `json:"phone"`
	Image      string `json:"image"`
}
