package admins

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository defines persistence operations for admin accounts.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*Admin, error)
	Upsert(ctx context.Context, a *Admin) (*Admin, error)
	Count(ctx context.Context) (int64, error)
}

// MongoRepository implements Repository using MongoDB.
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) GetByEmail(ctx context.Context, email string) (*Admin, error) {
	var a Admin
	if err := r.col.FindOne(ctx, bson.M{"email": normalize(email)}).Decode(&a); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *MongoRepository) Upsert(ctx context.Context, a *Admin) (*Admin, error) {
	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now
	a.Email = normalize(a.Email)
	if a.ID == "" {
		a.ID = primitive.NewObjectID().Hex()
	}
	filter := bson.M{"email": a.Email}
	set := bson.M{"$set": bson.M{
		"name":         a.Name,
		"passwordHash": a.PasswordHash,
		"updatedAt":    a.UpdatedAt,
	}, "$setOnInsert": bson.M{
		"_id":       a.ID,
		"email":     a.Email,
		"createdAt": a.CreatedAt,
	}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var updated Admin
	if err := r.col.FindOneAndUpdate(ctx, filter, set, opts).Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return a, nil
		}
		return nil, err
	}
	return &updated, nil
}

func (r *MongoRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// MemoryRepository is an in-memory Repository for tests and storeless runs.
type MemoryRepository struct {
	mu    sync.RWMutex
	seq   int
	store map[string]*Admin
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: make(map[string]*Admin)}
}

func (r *MemoryRepository) GetByEmail(ctx context.Context, email string) (*Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if a, ok := r.store[normalize(email)]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (r *MemoryRepository) Upsert(ctx context.Context, a *Admin) (*Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	a.Email = normalize(a.Email)
	if existing, ok := r.store[a.Email]; ok {
		a.ID = existing.ID
		a.CreatedAt = existing.CreatedAt
	} else {
		r.seq++
		a.ID = normalize(a.Email)
		a.CreatedAt = now
	}
	a.UpdatedAt = now
	cp := *a
	r.store[a.Email] = &cp
	return a, nil
}

func (r *MemoryRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.store)), nil
}
