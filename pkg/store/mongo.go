package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MikeFindsThings/poker-podcast-hand-grabber/pkg/domain"
)

// Mongo stores episode results in a MongoDB collection
type Mongo struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongo connects to MongoDB and returns a store backed by the given
// database and collection.
func NewMongo(ctx context.Context, uri, databaseName, collectionName string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &Mongo{
		client:     client,
		collection: client.Database(databaseName).Collection(collectionName),
	}, nil
}

// SaveResult upserts the episode result using the episode GUID as the key
func (m *Mongo) SaveResult(ctx context.Context, result *domain.EpisodeResult) error {
	filter := bson.M{"episode.guid": result.Episode.GUID}
	update := bson.M{"$set": result}
	opts := options.Update().SetUpsert(true)

	_, err := m.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

// ProcessedGUIDs fetches all stored episode GUIDs as a set
func (m *Mongo) ProcessedGUIDs(ctx context.Context) (map[string]bool, error) {
	projection := options.Find().SetProjection(bson.M{"episode.guid": 1, "_id": 0})
	cursor, err := m.collection.Find(ctx, bson.M{}, projection)
	if err != nil {
		return nil, fmt.Errorf("failed to query GUIDs: %w", err)
	}
	defer cursor.Close(ctx)

	guids := make(map[string]bool)
	for cursor.Next(ctx) {
		var result struct {
			Episode struct {
				GUID string `bson:"guid"`
			} `bson:"episode"`
		}
		if err := cursor.Decode(&result); err != nil {
			continue // Skip invalid documents
		}
		if result.Episode.GUID != "" {
			guids[result.Episode.GUID] = true
		}
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return guids, nil
}

// Close disconnects from MongoDB
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
