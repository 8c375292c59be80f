package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/talenthub/internlens/internal/config"
	"github.com/talenthub/internlens/internal/models"
)

// MongoStore reads logbook entries from a MongoDB collection. This is the
// store the submission system writes to, so documents may carry historical
// field names; they are returned raw and resolved by the normalizer.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

func NewMongoStore(ctx context.Context, cfg *config.StoreConfig) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect failed: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping failed: %w", err)
	}

	collection := cfg.Collection
	if collection == "" {
		collection = "logbook_entries"
	}

	return &MongoStore{
		client:     client,
		collection: client.Database(cfg.Database).Collection(collection),
	}, nil
}

// internKey converts an intern identifier to the collection's native ObjectID
// key where possible, falling back to the opaque string form used by records
// imported from the legacy system.
func internKey(id string) interface{} {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return oid
	}
	return id
}

func (s *MongoStore) FetchLogEntries(ctx context.Context, internID, startDate, endDate string) ([]models.RawEntry, error) {
	filter := bson.M{
		"intern_id": internKey(internID),
		"date": bson.M{
			"$gte": startDate,
			"$lte": endDate,
		},
	}

	cursor, err := s.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("logbook query failed: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []models.RawEntry
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("logbook decode failed: %w", err)
		}
		entries = append(entries, models.RawEntry(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("logbook cursor failed: %w", err)
	}

	return entries, nil
}

func (s *MongoStore) ListInternIDs(ctx context.Context, startDate, endDate string) ([]string, error) {
	filter := bson.M{
		"date": bson.M{
			"$gte": startDate,
			"$lte": endDate,
		},
	}

	values, err := s.collection.Distinct(ctx, "intern_id", filter)
	if err != nil {
		return nil, fmt.Errorf("intern listing failed: %w", err)
	}

	ids := make([]string, 0, len(values))
	for _, v := range values {
		switch id := v.(type) {
		case string:
			ids = append(ids, id)
		case primitive.ObjectID:
			ids = append(ids, id.Hex())
		}
	}
	return ids, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
