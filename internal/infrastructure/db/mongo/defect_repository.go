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

const collectionDefects = "defects"

// DefectRepository persists defect reports. Rows marked for deletion remain
// readable and listable so they stay reachable through filters.
type DefectRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewDefectRepository(db *mongo.Database) *DefectRepository {
	return &DefectRepository{db: db, col: db.Collection(collectionDefects)}
}

func (r *DefectRepository) Create(ctx context.Context, d *domain.Defect) (*domain.Defect, error) {
	id, err := nextID(ctx, r.db, collectionDefects)
	if err != nil {
		return nil, err
	}
	d.ID = id

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (r *DefectRepository) ByID(ctx context.Context, id int64) (*domain.Defect, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d domain.Defect
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *DefectRepository) List(ctx context.Context, pred *filter.Predicate) ([]*domain.Defect, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx,
		predicateFilter(nil, pred),
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var defects []*domain.Defect
	if err := cursor.All(ctx, &defects); err != nil {
		return nil, err
	}
	return defects, nil
}

func (r *DefectRepository) Update(ctx context.Context, d *domain.Defect) (*domain.Defect, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := r.col.ReplaceOne(ctx, bson.M{"_id": d.ID}, d)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, domain.ErrNotFound
	}
	return d, nil
}
