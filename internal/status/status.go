package status

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Status is a project lifecycle state. The set is fixed and seeded at
// startup; projects reference statuses by numeric id.
type Status struct {
	ID         int    `bson:"_id" json:"id"`
	StatusName string `bson:"status_name" json:"status_name"`
}

// Repository handles DB operations for statuses.
type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{collection: db.Collection("statuses")}
}

func (r *Repository) FindAllStatuses(ctx context.Context) ([]*Status, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var statuses []*Status
	if err := cursor.All(ctx, &statuses); err != nil {
		return nil, err
	}
	return statuses, nil
}

// Seed upserts the fixed status set. Safe to run on every startup.
func (r *Repository) Seed(ctx context.Context) error {
	seeds := []Status{
		{ID: 1, StatusName: "Scheduled"},
		{ID: 2, StatusName: "In Progress"},
		{ID: 3, StatusName: "Completed"},
	}
	for _, s := range seeds {
		filter := bson.M{"_id": s.ID}
		update := bson.M{"$set": bson.M{"status_name": s.StatusName}}
		if _, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
			return err
		}
	}
	return nil
}

// Handler exposes the status list over HTTP.
type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// Statuses handles GET /api/statuses.
func (h *Handler) Statuses(c echo.Context) error {
	statuses, err := h.repo.FindAllStatuses(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load statuses"})
	}
	if statuses == nil {
		statuses = []*Status{}
	}
	return c.JSON(http.StatusOK, statuses)
}
