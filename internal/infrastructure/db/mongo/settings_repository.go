package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/assetcare/asset-admin/internal/core/domain"
)

const (
	collectionSettings = "settings"
	settingsDocID      = "global"
)

// SettingsRepository reads and writes the single settings document.
type SettingsRepository struct {
	col *mongo.Collection
}

func NewSettingsRepository(db *mongo.Database) *SettingsRepository {
	return &SettingsRepository{col: db.Collection(collectionSettings)}
}

// Get returns the stored settings, or the defaults when the document was
// never saved.
func (r *SettingsRepository) Get(ctx context.Context) (domain.Settings, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc struct {
		Settings domain.Settings `bson:"settings"`
	}
	err := r.col.FindOne(ctx, bson.M{"_id": settingsDocID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.DefaultSettings(), nil
		}
		return domain.Settings{}, err
	}
	return doc.Settings, nil
}

func (r *SettingsRepository) Save(ctx context.Context, s domain.Settings) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.ReplaceOne(ctx,
		bson.M{"_id": settingsDocID},
		bson.M{"_id": settingsDocID, "settings": s},
		options.Replace().SetUpsert(true),
	)
	return err
}
