package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/assetcare/asset-admin/internal/core/domain"
)

const collectionRegions = "regions"

// RegionRepository reads the fixed region catalog. The catalog is seeded at
// startup and never written through the API.
type RegionRepository struct {
	col *mongo.Collection
}

func NewRegionRepository(db *mongo.Database) *RegionRepository {
	return &RegionRepository{col: db.Collection(collectionRegions)}
}

func (r *RegionRepository) ByID(ctx context.Context, id int64) (*domain.Region, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var region domain.Region
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&region)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &region, nil
}

func (r *RegionRepository) ByIDs(ctx context.Context, ids []int64) ([]domain.Region, error) {
	if len(ids) == 0 {
		return []domain.Region{}, nil
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

	var regions []domain.Region
	if err := cursor.All(ctx, &regions); err != nil {
		return nil, err
	}
	return regions, nil
}

// Seed upserts the region catalog. Safe to run on every start.
func (r *RegionRepository) Seed(ctx context.Context, regions []domain.Region) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	for _, region := range regions {
		_, err := r.col.ReplaceOne(ctx,
			bson.M{"_id": region.ID},
			region,
			options.Replace().SetUpsert(true),
		)
		if err != nil {
			return err
		}
	}
	return nil
}
