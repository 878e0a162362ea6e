// Package mongo implements the store interfaces on MongoDB.
package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/nadit/nadit-backend/store"
	"github.com/nadit/nadit-backend/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
)

// Ensure FeedbackStore implements store.Database
var _ store.Database = (*FeedbackStore)(nil)

// FeedbackStore stores feedback documents in a MongoDB database.
type FeedbackStore struct {
	db  *mongodriver.Database
	now func() time.Time
}

// NewFeedbackStore wraps a database handle obtained from a connected client.
func NewFeedbackStore(db *mongodriver.Database) *FeedbackStore {
	return &FeedbackStore{db: db, now: time.Now}
}

func (s *FeedbackStore) Name() string {
	return s.db.Name()
}

// ListCollections returns the names of every collection in the database.
func (s *FeedbackStore) ListCollections(ctx context.Context) ([]string, error) {
	names, err := s.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	return names, nil
}

// CreateFeedback inserts the document into the feedback collection and
// returns the hex form of the generated ObjectID.
func (s *FeedbackStore) CreateFeedback(ctx context.Context, fb *types.Feedback) (string, error) {
	doc := *fb
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = s.now().UTC()
	}

	res, err := s.db.Collection(types.FeedbackCollection).InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("failed to create feedback: %w", err)
	}

	switch id := res.InsertedID.(type) {
	case primitive.ObjectID:
		return id.Hex(), nil
	case string:
		return id, nil
	default:
		return fmt.Sprint(id), nil
	}
}

// Close disconnects the underlying client.
func (s *FeedbackStore) Close(ctx context.Context) error {
	return s.db.Client().Disconnect(ctx)
}
