package client

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository handles DB operations for clients. Client names are unique;
// the collection carries a unique index on client_name.
type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{collection: db.Collection("clients")}
}

func (r *Repository) CreateClient(ctx context.Context, cl *Client) error {
	_, err := r.collection.InsertOne(ctx, cl)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.New("client name already exists")
		}
		return err
	}
	return nil
}

func (r *Repository) FindClientByID(ctx context.Context, id string) (*Client, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.New("invalid client id")
	}
	var cl Client
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&cl)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &cl, nil
}

func (r *Repository) FindAllClients(ctx context.Context) ([]*Client, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var clients []*Client
	if err := cursor.All(ctx, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *Repository) UpdateClient(ctx context.Context, cl *Client) error {
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": cl.ID}, cl)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("client not found")
	}
	return nil
}

func (r *Repository) DeleteClient(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.New("invalid client id")
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errors.New("client not found")
	}
	return nil
}
