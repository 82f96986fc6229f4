package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/pageview/pkg/errors"
)

// MongoStore keeps snapshots in a MongoDB collection, one document per
// snapshot with the snapshot ID as _id.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoStore connects to MongoDB at uri and uses the "snapshots"
// collection of the given database. It pings the server so a bad URI
// fails fast.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return &MongoStore{
		client:     client,
		collection: client.Database(database).Collection("snapshots"),
	}, nil
}

// Save writes a snapshot, replacing any existing one with the same ID.
func (st *MongoStore) Save(ctx context.Context, s *Snapshot) error {
	if s.ID == "" {
		return errors.New(errors.ErrCodeInvalidSnapshot, "snapshot has no id")
	}
	_, err := st.collection.ReplaceOne(ctx,
		bson.M{"_id": s.ID}, s, options.Replace().SetUpsert(true))
	return err
}

// Load retrieves a snapshot by ID.
func (st *MongoStore) Load(ctx context.Context, id string) (*Snapshot, error) {
	var s Snapshot
	err := st.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&s)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeSnapshotNotFound, "snapshot %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// List returns all snapshots, oldest first.
func (st *MongoStore) List(ctx context.Context) ([]*Snapshot, error) {
	cursor, err := st.collection.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var out []*Snapshot
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a snapshot by ID.
func (st *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := st.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodeSnapshotNotFound, "snapshot %s not found", id)
	}
	return nil
}

// Close disconnects from MongoDB.
func (st *MongoStore) Close(ctx context.Context) error {
	return st.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
