package grades

import (
	"testing"

	"github.com/gradeflow/gradeflow-backend/pkg/enums"
	pkgerrors "github.com/gradeflow/gradeflow-backend/pkg/errors"
)

func pairsOf(dist []SizePairs) []int {
	out := make([]int, len(dist))
	for i, entry := range dist {
		out[i] = entry.Pairs
	}
	return out
}

func sameInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestHalfGradeDistributionAuto(t *testing.T) {
	v := gradeVariation(0, []string{"34", "35", "36", "37", "38", "39"}, []int64{1, 2, 3, 3, 2, 1})
	cfg := DefaultFlexibleGradeConfig()
	cfg.AllowHalfGrade = true

	dist, err := HalfGradeDistribution(v, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := pairsOf(dist); !sameInts(got, []int{0, 1, 2, 2, 1, 0}) {
		t.Fatalf("unexpected distribution %v", got)
	}
	if dist[2].Size != "36" {
		t.Fatalf("expected sizes kept in grade order, got %+v", dist)
	}
}

func TestHalfGradeDistributionHonorsMinimum(t *testing.T) {
	v := gradeVariation(0, []string{"34", "35", "36", "37", "38", "39"}, []int64{1, 2, 3, 3, 2, 1})
	cfg := DefaultFlexibleGradeConfig()
	cfg.HalfGradeMinPairs = 8

	dist, err := HalfGradeDistribution(v, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := pairsOf(dist); !sameInts(got, []int{1, 1, 2, 2, 1, 1}) {
		t.Fatalf("unexpected distribution %v", got)
	}

	cfg.HalfGradeMinPairs = 50
	dist, _ = HalfGradeDistribution(v, cfg)
	if got := pairsOf(dist); !sameInts(got, []int{1, 2, 3, 3, 2, 1}) {
		t.Fatalf("expected the whole grade at most, got %v", got)
	}
}

func TestHalfGradeDistributionCustom(t *testing.T) {
	v := gradeVariation(0, []string{"36", "37", "38"}, []int64{4, 4, 4})
	cfg := DefaultFlexibleGradeConfig()
	cfg.HalfGradeDistribution = enums.HalfGradeDistributionCustom
	cfg.HalfGradeCustomSizes = []string{"36", "38"}
	cfg.HalfGradeCustomPairs = []int{2, 3}

	dist, err := HalfGradeDistribution(v, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dist) != 2 || dist[1].Size != "38" || dist[1].Pairs != 3 {
		t.Fatalf("unexpected distribution %+v", dist)
	}

	cfg.HalfGradeCustomSizes = []string{"36", "44"}
	if _, err := HalfGradeDistribution(v, cfg); !pkgerrors.HasCode(err, pkgerrors.CodeInvalidGradeConfig) {
		t.Fatalf("expected invalid config for unknown size, got %v", err)
	}
}

func TestHalfGradeDistributionRequiresGrade(t *testing.T) {
	v := gradeVariation(0, []string{"36"}, []int64{4})
	v.IsGrade = false
	if _, err := HalfGradeDistribution(v, DefaultFlexibleGradeConfig()); err == nil {
		t.Fatalf("expected error for a plain variation")
	}
}
