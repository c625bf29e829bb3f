package filter

import (
	"errors"
	"testing"

	"github.com/assetcare/asset-admin/internal/core/domain"
)

func TestParse_Valid(t *testing.T) {
	p, err := Parse("id eq 42", DefectFields)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if p.Field != "id" || p.Op != OpEq || p.Value != "42" {
		t.Fatalf("unexpected predicate: %+v", p)
	}
}

// Parse receives already-decoded query values, so characters that are also
// percent-encoding syntax must pass through untouched.
func TestParse_LiteralPercentAndPlus(t *testing.T) {
	cases := map[string]string{
		"name eq 50%":  "50%",
		"name eq a+b":  "a+b",
		"name eq %2B":  "%2B",
	}
	for raw, want := range cases {
		p, err := Parse(raw, ObjectFields)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", raw, err)
		}
		if p.Value != want {
			t.Fatalf("Parse(%q): value %q, want %q", raw, p.Value, want)
		}
	}
}

func TestParse_Empty(t *testing.T) {
	p, err := Parse("", UserFields)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if p != nil {
		t.Fatalf("expected nil predicate for empty query, got %+v", p)
	}
}

func TestParse_Malformed(t *testing.T) {
	cases := []string{
		"id eq",              // missing value
		"id",                 // missing op and value
		"id equals 42",       // unknown operator
		"id eq 1 and id eq 2",// composition not supported
	}
	for _, raw := range cases {
		if _, err := Parse(raw, DefectFields); !errors.Is(err, domain.ErrMalformedFilter) {
			t.Fatalf("Parse(%q): expected ErrMalformedFilter, got %v", raw, err)
		}
	}
}

func TestParse_UnknownField(t *testing.T) {
	if _, err := Parse("payload eq 1", DefectFields); !errors.Is(err, domain.ErrMalformedFilter) {
		t.Fatalf("expected ErrMalformedFilter for unknown field, got %v", err)
	}
}

func TestMatch_Numeric(t *testing.T) {
	p, err := Parse("id gte 10", EquipmentFields)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	// "9" < "10" lexicographically but 9 < 10 numerically; numeric must win.
	if p.Match("9") {
		t.Fatalf("9 should not match gte 10")
	}
	if !p.Match("10") || !p.Match("11") {
		t.Fatalf("10 and 11 should match gte 10")
	}
}

func TestMatch_String(t *testing.T) {
	p, err := Parse("name eq depot", ObjectFields)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if !p.Match("depot") {
		t.Fatalf("exact string should match")
	}
	if p.Match("Depot") {
		t.Fatalf("comparison must be case-sensitive")
	}
}

func TestMatch_Operators(t *testing.T) {
	cases := []struct {
		op    Op
		value string
		want  bool
	}{
		{OpEq, "5", true},
		{OpNe, "5", false},
		{OpGt, "4", true},
		{OpLt, "6", true},
		{OpGte, "5", true},
		{OpLte, "4", false},
	}
	for _, tc := range cases {
		p := &Predicate{Field: "id", Op: tc.op, Value: tc.value}
		if got := p.Match("5"); got != tc.want {
			t.Fatalf("5 %s %s: expected %v, got %v", tc.op, tc.value, tc.want, got)
		}
	}
}
