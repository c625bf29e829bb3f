package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/assetcare/asset-admin/internal/core/domain"
)

const collectionResources = "resources"

// ResourceRepository persists uploaded file metadata. The blob itself lives
// in the configured blob store; only the path is recorded here.
type ResourceRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewResourceRepository(db *mongo.Database) *ResourceRepository {
	return &ResourceRepository{db: db, col: db.Collection(collectionResources)}
}

func (r *ResourceRepository) Create(ctx context.Context, res *domain.FileResource) (*domain.FileResource, error) {
	id, err := nextID(ctx, r.db, collectionResources)
	if err != nil {
		return nil, err
	}
	res.ID = id

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *ResourceRepository) ByIDs(ctx context.Context, ids []int64) ([]domain.FileResource, error) {
	if len(ids) == 0 {
		return []domain.FileResource{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var resources []domain.FileResource
	if err := cursor.All(ctx, &resources); err != nil {
		return nil, err
	}
	return resources, nil
}

// Exist reports whether every id refers to a stored resource.
func (r *ResourceRepository) Exist(ctx context.Context, ids []int64) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	count, err := r.col.CountDocuments(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return false, err
	}
	return count == int64(len(uniqueIDs(ids))), nil
}
