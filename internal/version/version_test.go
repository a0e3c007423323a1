package version

import (
	"testing"

	"github.com/Masterminds/semver/v3"
)

func TestBestMatchPicksHighestSatisfying(t *testing.T) {
	installed := []*semver.Version{
		MustParse("12.0.0"),
		MustParse("14.2.0"),
		MustParse("14.1.3"),
		MustParse("16.0.0"),
	}

	got, ok := BestMatch(MustRequirement("^14.0.0"), installed)
	if !ok {
		t.Fatal("expected a match for ^14.0.0")
	}
	if got.String() != "14.2.0" {
		t.Fatalf("expected 14.2.0, got %s", got)
	}
}

func TestBestMatchExactVersion(t *testing.T) {
	installed := []*semver.Version{MustParse("1.22.0"), MustParse("1.22.5")}

	got, ok := BestMatch(MustRequirement("1.22.0"), installed)
	if !ok || got.String() != "1.22.0" {
		t.Fatalf("expected exact 1.22.0, got %v (ok=%v)", got, ok)
	}
}

func TestBestMatchNone(t *testing.T) {
	installed := []*semver.Version{MustParse("14.2.0")}
	if got, ok := BestMatch(MustRequirement("^16.0.0"), installed); ok {
		t.Fatalf("expected no match, got %s", got)
	}
	if _, ok := BestMatch(MustRequirement("^16.0.0"), nil); ok {
		t.Fatal("expected no match for empty inventory")
	}
}

func TestParseRequirementErrors(t *testing.T) {
	for _, raw := range []string{"", "   ", "not-a-range!"} {
		if _, err := ParseRequirement(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestRequirementString(t *testing.T) {
	r := MustRequirement(" ^16.0.0 ")
	if r.String() != "^16.0.0" {
		t.Fatalf("expected trimmed requirement, got %q", r.String())
	}
	if r.IsZero() {
		t.Fatal("parsed requirement should not be zero")
	}
	if !(Requirement{}).IsZero() {
		t.Fatal("zero requirement should report IsZero")
	}
}

func TestParseTolerantOfPrefix(t *testing.T) {
	v, err := Parse("v14.2.0")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if v.String() != "14.2.0" {
		t.Fatalf("expected 14.2.0, got %s", v)
	}
}

func TestSortAndEqual(t *testing.T) {
	vs := []*semver.Version{MustParse("16.0.0"), MustParse("12.0.0"), MustParse("14.2.0")}
	Sort(vs)
	if vs[0].String() != "12.0.0" || vs[2].String() != "16.0.0" {
		t.Fatalf("unexpected order: %v", vs)
	}
	if !Equal(MustParse("14.2.0"), MustParse("v14.2.0")) {
		t.Fatal("expected versions to be equal")
	}
	if Equal(nil, MustParse("1.0.0")) || !Equal(nil, nil) {
		t.Fatal("unexpected nil comparison result")
	}
}
