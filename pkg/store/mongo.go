package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sherif414/floattree/pkg/observability"
	"github.com/sherif414/floattree/pkg/snapshot"
)

// MongoConfig configures a [MongoStore].
type MongoConfig struct {
	// URI is the MongoDB connection string (mongodb://...).
	URI string

	// Database is the database name. Empty means "floattree".
	Database string

	// Collection is the collection name. Empty means "snapshots".
	Collection string
}

// snapshotDoc is the stored document shape. The snapshot itself is
// embedded via its bson tags so documents stay queryable by node fields.
type snapshotDoc struct {
	ID        string            `bson:"_id"`
	Snapshot  snapshot.Snapshot `bson:"snapshot"`
	UpdatedAt time.Time         `bson:"updated_at"`
}

// MongoStore persists snapshots as documents in a MongoDB collection,
// keyed by snapshot ID. Saves are upserts.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	db := cfg.Database
	if db == "" {
		db = "floattree"
	}
	coll := cfg.Collection
	if coll == "" {
		coll = "snapshots"
	}
	return &MongoStore{client: client, coll: client.Database(db).Collection(coll)}, nil
}

// Save upserts the snapshot document.
func (s *MongoStore) Save(ctx context.Context, id string, snap snapshot.Snapshot) error {
	start := time.Now()
	err := s.save(ctx, id, snap)
	observability.Store().OnSave(ctx, "mongo", id, snap.NodeCount(), time.Since(start), err)
	return err
}

func (s *MongoStore) save(ctx context.Context, id string, snap snapshot.Snapshot) error {
	if id == "" {
		return ErrInvalidID
	}
	doc := snapshotDoc{ID: id, Snapshot: snap, UpdatedAt: time.Now().UTC()}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": id}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongodb replace: %w", err)
	}
	return nil
}

// Load returns the snapshot stored under id.
func (s *MongoStore) Load(ctx context.Context, id string) (snapshot.Snapshot, error) {
	start := time.Now()
	snap, err := s.load(ctx, id)
	observability.Store().OnLoad(ctx, "mongo", id, time.Since(start), err)
	return snap, err
}

func (s *MongoStore) load(ctx context.Context, id string) (snapshot.Snapshot, error) {
	if id == "" {
		return snapshot.Snapshot{}, ErrInvalidID
	}
	var doc snapshotDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return snapshot.Snapshot{}, ErrNotFound
	}
	if err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("mongodb find: %w", err)
	}
	return doc.Snapshot, nil
}

// Delete removes the snapshot document. Missing documents are not an error.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	var err error
	if id == "" {
		err = ErrInvalidID
	} else if _, delErr := s.coll.DeleteOne(ctx, bson.M{"_id": id}); delErr != nil {
		err = fmt.Errorf("mongodb delete: %w", delErr)
	}
	observability.Store().OnDelete(ctx, "mongo", id, err)
	return err
}

// List returns all stored snapshot IDs in sorted order.
func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	cursor, err := s.coll.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("mongodb find: %w", err)
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var doc struct {
			ID string `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("mongodb decode: %w", err)
		}
		ids = append(ids, doc.ID)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("mongodb cursor: %w", err)
	}
	slices.Sort(ids)
	return ids, nil
}

// Close disconnects the underlying MongoDB client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
