package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"prostock/internal/domain/models"
)

// ErrSessionNotFound indicates no persisted session exists for the user.
var ErrSessionNotFound = errors.New("session not found")

// Repository defines the interface for session persistence.
type Repository interface {
	SaveSession(ctx context.Context, session models.Session) error
	FindSession(ctx context.Context, username string) (*models.Session, error)
	DeleteSession(ctx context.Context, username string) error
}

// SessionRepository implements Repository on MongoDB. It replaces the
// browser-local session object of the original deployment.
type SessionRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewSessionRepository creates a new MongoDB-backed session store.
func NewSessionRepository(ctx context.Context, uri, dbName string) (*SessionRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &SessionRepository{
		client:   client,
		dbName:   dbName,
		collName: "sessions",
	}, nil
}

// SaveSession upserts the session document for the user.
func (r *SessionRepository) SaveSession(ctx context.Context, session models.Session) error {
	collection := r.client.Database(r.dbName).Collection(r.collName)
	filter := bson.M{"username": session.Username}
	opts := options.Replace().SetUpsert(true)
	if _, err := collection.ReplaceOne(ctx, filter, session, opts); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// FindSession loads the persisted session for the user, if any.
func (r *SessionRepository) FindSession(ctx context.Context, username string) (*models.Session, error) {
	collection := r.client.Database(r.dbName).Collection(r.collName)

	var session models.Session
	err := collection.FindOne(ctx, bson.M{"username": username}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return &session, nil
}

// DeleteSession removes the persisted session for the user.
func (r *SessionRepository) DeleteSession(ctx context.Context, username string) error {
	collection := r.client.Database(r.dbName).Collection(r.collName)
	if _, err := collection.DeleteOne(ctx, bson.M{"username": username}); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *SessionRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
