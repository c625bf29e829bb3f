package mongo

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/assetcare/asset-admin/internal/core/filter"
)

var mongoOps = map[filter.Op]string{
	filter.OpEq:  "$eq",
	filter.OpNe:  "$ne",
	filter.OpGt:  "$gt",
	filter.OpLt:  "$lt",
	filter.OpGte: "$gte",
	filter.OpLte: "$lte",
}

// predicateFilter translates a parsed predicate into a bson query, merged
// into base. Numeric values compare as numbers, everything else as strings.
// The "id" field maps to the Mongo primary key.
func predicateFilter(base bson.M, pred *filter.Predicate) bson.M {
	if base == nil {
		base = bson.M{}
	}
	if pred == nil {
		return base
	}

	field := pred.Field
	if field == "id" {
		field = "_id"
	}

	var value interface{} = pred.Value
	if n, ok := pred.Int64(); ok {
		value = n
	}

	base[field] = bson.M{mongoOps[pred.Op]: value}
	return base
}
