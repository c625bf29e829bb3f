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

const collectionEquipments = "equipments"

// EquipmentRepository persists equipment units. Removed rows stay in the
// collection but every read excludes them.
type EquipmentRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewEquipmentRepository(db *mongo.Database) *EquipmentRepository {
	return &EquipmentRepository{db: db, col: db.Collection(collectionEquipments)}
}

func activeEquipments() bson.M {
	return bson.M{"state": bson.M{"$ne": domain.EquipmentRemoved}}
}

func (r *EquipmentRepository) Create(ctx context.Context, eq *domain.Equipment) (*domain.Equipment, error) {
	id, err := nextID(ctx, r.db, collectionEquipments)
	if err != nil {
		return nil, err
	}
	eq.ID = id

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, eq); err != nil {
		return nil, err
	}
	return eq, nil
}

func (r *EquipmentRepository) ByID(ctx context.Context, id int64) (*domain.Equipment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := activeEquipments()
	query["_id"] = id

	var eq domain.Equipment
	err := r.col.FindOne(ctx, query).Decode(&eq)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &eq, nil
}

func (r *EquipmentRepository) List(ctx context.Context, pred *filter.Predicate) ([]*domain.Equipment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx,
		predicateFilter(activeEquipments(), pred),
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var units []*domain.Equipment
	if err := cursor.All(ctx, &units); err != nil {
		return nil, err
	}
	return units, nil
}

func (r *EquipmentRepository) Update(ctx context.Context, eq *domain.Equipment) (*domain.Equipment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := r.col.ReplaceOne(ctx, bson.M{"_id": eq.ID}, eq)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, domain.ErrNotFound
	}
	return eq, nil
}

func (r *EquipmentRepository) Exists(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := activeEquipments()
	query["_id"] = id

	count, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
