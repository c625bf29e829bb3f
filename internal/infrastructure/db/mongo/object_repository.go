package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/assetcare/asset-admin/internal/core/domain"
	"github.com/assetcare/asset-admin/internal/core/filter"
)

const collectionObjects = "objects"

// ObjectRepository persists tracked objects. Removed rows stay in the
// collection but every read excludes them.
type ObjectRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewObjectRepository(db *mongo.Database) *ObjectRepository {
	return &ObjectRepository{db: db, col: db.Collection(collectionObjects)}
}

func activeObjects() bson.M {
	return bson.M{"state": bson.M{"$ne": domain.ObjectRemoved}}
}

func (r *ObjectRepository) Create(ctx context.Context, obj *domain.Object) (*domain.Object, error) {
	id, err := nextID(ctx, r.db, collectionObjects)
	if err != nil {
		return nil, err
	}
	obj.ID = id

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, obj); err != nil {
		return nil, err
	}
	return obj, nil
}

func (r *ObjectRepository) ByID(ctx context.Context, id int64) (*domain.Object, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := activeObjects()
	query["_id"] = id

	var obj domain.Object
	err := r.col.FindOne(ctx, query).Decode(&obj)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &obj, nil
}

func (r *ObjectRepository) List(ctx context.Context, pred *filter.Predicate) ([]*domain.Object, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx,
		predicateFilter(activeObjects(), pred),
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var objects []*domain.Object
	if err := cursor.All(ctx, &objects); err != nil {
		return nil, err
	}
	return objects, nil
}

func (r *ObjectRepository) Update(ctx context.Context, obj *domain.Object) (*domain.Object, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := r.col.ReplaceOne(ctx, bson.M{"_id": obj.ID}, obj)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, domain.ErrNotFound
	}
	return obj, nil
}

// Exist reports whether every id refers to an active object.
func (r *ObjectRepository) Exist(ctx context.Context, ids []int64) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := activeObjects()
	query["_id"] = bson.M{"$in": ids}

	count, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return false, err
	}
	return count == int64(len(uniqueIDs(ids))), nil
}

// uniqueIDs deduplicates an id list so repeated references still count once.
func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
