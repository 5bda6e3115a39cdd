package notification

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository handles DB operations for notifications and dismissal markers.
// It is the only component that writes to either collection.
type Repository struct {
	notifications *mongo.Collection
	dismissals    *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{
		notifications: db.Collection("notifications"),
		dismissals:    db.Collection("dismissed_notifications"),
	}
}

func (r *Repository) InsertNotification(ctx context.Context, n *Notification) error {
	_, err := r.notifications.InsertOne(ctx, n)
	return err
}

func (r *Repository) NotificationExists(ctx context.Context, id string) (bool, error) {
	count, err := r.notifications.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertDismissal records a dismissal marker. A duplicate-key error means
// the marker already exists and is treated as success; the unique compound
// index on (notification_id, user_id) enforces at-most-once.
func (r *Repository) InsertDismissal(ctx context.Context, d *Dismissal) error {
	_, err := r.dismissals.InsertOne(ctx, d)
	if err != nil && mongo.IsDuplicateKeyError(err) {
		return nil
	}
	return err
}

func (r *Repository) HasDismissal(ctx context.Context, notificationID, userID string) (bool, error) {
	filter := bson.M{"notification_id": notificationID, "user_id": userID}
	count, err := r.dismissals.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListVisible returns up to limit notifications the user has not dismissed,
// newest first. Visibility is computed on every call; nothing is cached.
func (r *Repository) ListVisible(ctx context.Context, userID string, limit int) ([]*Notification, error) {
	cursor, err := r.dismissals.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	var dismissed []Dismissal
	if err := cursor.All(ctx, &dismissed); err != nil {
		return nil, err
	}

	dismissedIDs := make([]string, 0, len(dismissed))
	for _, d := range dismissed {
		dismissedIDs = append(dismissedIDs, d.NotificationID)
	}

	filter := bson.M{}
	if len(dismissedIDs) > 0 {
		filter["_id"] = bson.M{"$nin": dismissedIDs}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err = r.notifications.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var notifications []*Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}
