package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"symptom-chatbot-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSessionStore stores conversation contexts in the sessions
// collection, one document per session.
type MongoSessionStore struct {
	collection *mongo.Collection
}

func NewMongoSessionStore(db *mongo.Database) *MongoSessionStore {
	return &MongoSessionStore{
		collection: db.Collection("sessions"),
	}
}

// Get returns the session record, or nil when the session is unknown
// or already expired.
func (s *MongoSessionStore) Get(ctx context.Context, sessionID string) (*models.SessionRecord, error) {
	var record models.SessionRecord
	err := s.collection.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session: %w", err)
	}
	if !record.ExpiresAt.IsZero() && record.ExpiresAt.Before(time.Now()) {
		return nil, nil
	}
	return &record, nil
}

// Save upserts the session record, preserving the original created_at.
func (s *MongoSessionStore) Save(ctx context.Context, record *models.SessionRecord) error {
	filter := bson.M{"session_id": record.SessionID}
	update := bson.M{
		"$set": bson.M{
			"user_id":       record.UserID,
			"channel":       record.Channel,
			"context":       record.Context,
			"last_activity": record.LastActivity,
			"expires_at":    record.ExpiresAt,
		},
		"$setOnInsert": bson.M{
			"created_at": record.CreatedAt,
		},
	}

	_, err := s.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Delete removes a session record.
func (s *MongoSessionStore) Delete(ctx context.Context, sessionID string) error {
	_, err := s.collection.DeleteOne(ctx, bson.M{"session_id": sessionID})
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
