package grades

import (
	"math"
	"sort"

	"github.com/gradeflow/gradeflow-backend/pkg/db/models"
	"github.com/gradeflow/gradeflow-backend/pkg/enums"
	pkgerrors "github.com/gradeflow/gradeflow-backend/pkg/errors"
)

// SizePairs is the number of pairs of one size shipped in a half grade.
type SizePairs struct {
	Size  string `json:"size"`
	Pairs int    `json:"pairs"`
}

// HalfGradeDistribution spreads a half grade across the grade's sizes.
func HalfGradeDistribution(v models.Variation, cfg FlexibleGradeConfig) ([]SizePairs, error) {
	if !v.IsGrade {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "variation is not a grade")
	}
	if err := v.CheckGradeShape(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "invalid grade shape")
	}

	switch cfg.HalfGradeDistribution {
	case enums.HalfGradeDistributionCustom:
		return customHalfGrade(v, cfg)
	case enums.HalfGradeDistributionAuto, "":
		return autoHalfGrade(v, cfg), nil
	default:
		return nil, pkgerrors.Newf(pkgerrors.CodeInvalidGradeConfig, "unknown half grade distribution %q", cfg.HalfGradeDistribution)
	}
}

func customHalfGrade(v models.Variation, cfg FlexibleGradeConfig) ([]SizePairs, error) {
	if len(cfg.HalfGradeCustomSizes) == 0 || len(cfg.HalfGradeCustomSizes) != len(cfg.HalfGradeCustomPairs) {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidGradeConfig, "custom half grade needs matching sizes and pairs")
	}
	known := make(map[string]struct{}, len(v.GradeSizes))
	for _, size := range v.GradeSizes {
		known[size] = struct{}{}
	}

	out := make([]SizePairs, 0, len(cfg.HalfGradeCustomSizes))
	for i, size := range cfg.HalfGradeCustomSizes {
		if _, ok := known[size]; !ok {
			return nil, pkgerrors.Newf(pkgerrors.CodeInvalidGradeConfig, "custom half grade size %q is not part of the grade", size).
				WithDetails(map[string]any{"size": size})
		}
		if cfg.HalfGradeCustomPairs[i] < 0 {
			return nil, pkgerrors.Newf(pkgerrors.CodeInvalidGradeConfig, "custom half grade size %q has negative pairs", size)
		}
		out = append(out, SizePairs{Size: size, Pairs: cfg.HalfGradeCustomPairs[i]})
	}
	return out, nil
}

// autoHalfGrade floors every size's share and hands the remainder to the largest fractions,
// then to the sizes with most pairs, until the target is met.
func autoHalfGrade(v models.Variation, cfg FlexibleGradeConfig) []SizePairs {
	total := v.GradeQuantity()
	target := HalfGradePairs(total, cfg.HalfGradePercentage)
	if target < cfg.HalfGradeMinPairs {
		target = cfg.HalfGradeMinPairs
	}
	if target > total {
		target = total
	}

	out := make([]SizePairs, len(v.GradeSizes))
	fractions := make([]float64, len(v.GradeSizes))
	assigned := 0
	for i, size := range v.GradeSizes {
		exact := float64(v.GradePairs[i]) * float64(cfg.HalfGradePercentage) / 100
		whole := math.Floor(exact)
		out[i] = SizePairs{Size: size, Pairs: int(whole)}
		fractions[i] = exact - whole
		assigned += int(whole)
	}

	order := make([]int, len(out))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ia, ib := order[a], order[b]
		if fractions[ia] != fractions[ib] {
			return fractions[ia] > fractions[ib]
		}
		return v.GradePairs[ia] > v.GradePairs[ib]
	})

	for assigned < target {
		progressed := false
		for _, i := range order {
			if assigned >= target {
				break
			}
			if out[i].Pairs < int(v.GradePairs[i]) {
				out[i].Pairs++
				assigned++
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}
	return out
}
