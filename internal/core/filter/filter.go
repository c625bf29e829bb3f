// Package filter implements the single-predicate query mini-language used by
// every list endpoint: `field op value`, e.g. `id eq 42`.
package filter

import (
	"strconv"
	"strings"

	"github.com/assetcare/asset-admin/internal/core/domain"
)

// Op is a comparison operator token. Only eq is exercised by the observed
// clients; the rest are implemented through the same strategy table.
type Op string

const (
	OpEq  Op = "eq"
	OpNe  Op = "ne"
	OpGt  Op = "gt"
	OpLt  Op = "lt"
	OpGte Op = "gte"
	OpLte Op = "lte"
)

// comparators maps an operator to its verdict over a three-way comparison
// result (-1, 0, 1).
var comparators = map[Op]func(cmp int) bool{
	OpEq:  func(cmp int) bool { return cmp == 0 },
	OpNe:  func(cmp int) bool { return cmp != 0 },
	OpGt:  func(cmp int) bool { return cmp > 0 },
	OpLt:  func(cmp int) bool { return cmp < 0 },
	OpGte: func(cmp int) bool { return cmp >= 0 },
	OpLte: func(cmp int) bool { return cmp <= 0 },
}

// Predicate is a parsed, validated filter expression.
type Predicate struct {
	Field string
	Op    Op
	Value string
}

// Parse parses raw into a Predicate. raw must already be percent-decoded;
// echo's QueryParam hands it over that way, and decoding again would mangle
// values holding a literal % or +. fields is the allow-list of filterable
// field names for the target kind; an unknown field fails fast instead of
// silently matching nothing. An empty raw query yields a nil predicate.
func Parse(raw string, fields []string) (*Predicate, error) {
	if raw == "" {
		return nil, nil
	}

	parts := strings.Fields(raw)
	if len(parts) != 3 {
		return nil, domain.ErrMalformedFilter
	}

	op := Op(parts[1])
	if _, ok := comparators[op]; !ok {
		return nil, domain.ErrMalformedFilter
	}

	field := parts[0]
	known := false
	for _, f := range fields {
		if f == field {
			known = true
			break
		}
	}
	if !known {
		return nil, domain.ErrMalformedFilter
	}

	return &Predicate{Field: field, Op: op, Value: parts[2]}, nil
}

// Int64 returns the predicate value as an integer when it parses as one.
func (p *Predicate) Int64() (int64, bool) {
	n, err := strconv.ParseInt(p.Value, 10, 64)
	return n, err == nil
}

// Match evaluates the predicate against a single record field value, rendered
// as a string by the caller. Both sides are compared numerically when they
// both parse as integers, lexicographically otherwise.
func (p *Predicate) Match(value string) bool {
	verdict := comparators[p.Op]
	if want, ok := p.Int64(); ok {
		if got, err := strconv.ParseInt(value, 10, 64); err == nil {
			return verdict(compareInt64(got, want))
		}
	}
	return verdict(strings.Compare(value, p.Value))
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Filterable field allow-lists, one per kind. Kept next to the engine so the
// parser and the repositories agree on the vocabulary.
var (
	UserFields         = []string{"id", "login", "state", "roleId", "email"}
	ObjectFields       = []string{"id", "name", "state", "regionId", "district", "organizationName"}
	EquipmentFields    = []string{"id", "objectId", "state", "systemType", "brand", "model", "categoryId"}
	OrganizationFields = []string{"id", "name", "state", "inn"}
	DefectFields       = []string{"id", "equipmentId", "organizationId", "state", "stringId"}
)
