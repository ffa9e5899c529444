package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/folioworks/folioworks/internal/content"
)

// MongoStore implements Store on top of a MongoDB database. Each (collection,
// key) pair maps to one document whose _id is the key; Set is a ReplaceOne
// upsert, which gives the full-overwrite semantics the readers and editors
// rely on.
type MongoStore struct {
	db     *mongo.Database
	hub    *hub
	bridge *RedisBridge
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db, hub: newHub()}
}

func (s *MongoStore) Get(ctx context.Context, collection, key string) (content.Document, error) {
	var raw bson.M
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": key}).Decode(&raw)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return fromBSON(raw), nil
}

func (s *MongoStore) Set(ctx context.Context, collection, key string, doc content.Document) error {
	rec := bson.M{"_id": key, "updatedAt": time.Now().UTC()}
	for k, v := range doc {
		if k == "_id" || k == "updatedAt" {
			continue
		}
		rec[k] = v
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.db.Collection(collection).ReplaceOne(ctx, bson.M{"_id": key}, rec, opts); err != nil {
		return err
	}
	s.hub.publish(collection, key, doc)
	if s.bridge != nil {
		s.bridge.publish(ctx, collection, key)
	}
	return nil
}

func (s *MongoStore) Subscribe(ctx context.Context, collection, key string, fn ChangeFunc) func() {
	cur, err := s.Get(ctx, collection, key)
	if err != nil {
		// absent and failed reads both degrade to "no document"
		cur = nil
	}
	fn(cur)
	return s.hub.add(collection, key, fn)
}

// notifyRemote re-fans-out a change observed from another instance.
func (s *MongoStore) notifyRemote(collection, key string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	doc, err := s.Get(ctx, collection, key)
	if err != nil {
		doc = nil
	}
	s.hub.publish(collection, key, doc)
}

func fromBSON(raw bson.M) content.Document {
	doc := make(content.Document, len(raw))
	for k, v := range raw {
		if k == "_id" || k == "updatedAt" {
			continue
		}
		doc[k] = fromBSONValue(v)
	}
	return doc
}

// fromBSONValue normalizes the driver's decoded shapes (bson.M, bson.A,
// int32/int64) into the plain map/slice/float forms the rest of the content
// package works with.
func fromBSONValue(v any) any {
	switch t := v.(type) {
	case bson.M:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = fromBSONValue(e)
		}
		return m
	case bson.A:
		a := make([]any, len(t))
		for i, e := range t {
			a[i] = fromBSONValue(e)
		}
		return a
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	default:
		return v
	}
}
