package enums

import "fmt"

// GradeMode is the way a buyer purchases a grade.
type GradeMode string

const (
	GradeModeFull   GradeMode = "full"
	GradeModeHalf   GradeMode = "half"
	GradeModeCustom GradeMode = "custom"
)

var validGradeModes = []GradeMode{
	GradeModeFull,
	GradeModeHalf,
	GradeModeCustom,
}

// String implements fmt.Stringer.
func (v GradeMode) String() string {
	return string(v)
}

// IsValid reports whether the value is a known GradeMode.
func (v GradeMode) IsValid() bool {
	for _, candidate := range validGradeModes {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseGradeMode converts raw input into a GradeMode.
func ParseGradeMode(value string) (GradeMode, error) {
	for _, candidate := range validGradeModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid grade mode %q", value)
}

// HalfGradeDistribution controls how half-grade pairs are spread across sizes.
type HalfGradeDistribution string

const (
	HalfGradeDistributionAuto   HalfGradeDistribution = "auto"
	HalfGradeDistributionCustom HalfGradeDistribution = "custom"
)

var validHalfGradeDistributions = []HalfGradeDistribution{
	HalfGradeDistributionAuto,
	HalfGradeDistributionCustom,
}

// String implements fmt.Stringer.
func (v HalfGradeDistribution) String() string {
	return string(v)
}

// IsValid reports whether the value is a known HalfGradeDistribution.
func (v HalfGradeDistribution) IsValid() bool {
	for _, candidate := range validHalfGradeDistributions {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseHalfGradeDistribution converts raw input into a HalfGradeDistribution.
func ParseHalfGradeDistribution(value string) (HalfGradeDistribution, error) {
	for _, candidate := range validHalfGradeDistributions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid half grade distribution %q", value)
}

// GradePricingMode selects flat grade pricing or quantity tiers.
type GradePricingMode string

const (
	GradePricingModeFlat      GradePricingMode = "flat"
	GradePricingModeTierBased GradePricingMode = "tier_based"
)

var validGradePricingModes = []GradePricingMode{
	GradePricingModeFlat,
	GradePricingModeTierBased,
}

// String implements fmt.Stringer.
func (v GradePricingMode) String() string {
	return string(v)
}

// IsValid reports whether the value is a known GradePricingMode.
func (v GradePricingMode) IsValid() bool {
	for _, candidate := range validGradePricingModes {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseGradePricingMode converts raw input into a GradePricingMode.
func ParseGradePricingMode(value string) (GradePricingMode, error) {
	for _, candidate := range validGradePricingModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid grade pricing mode %q", value)
}

// TierCalculationMode chooses which quantity feeds tier selection for grades.
type TierCalculationMode string

const (
	TierCalculationModePerGrade TierCalculationMode = "per_grade"
	TierCalculationModePerOrder TierCalculationMode = "per_order"
)

var validTierCalculationModes = []TierCalculationMode{
	TierCalculationModePerGrade,
	TierCalculationModePerOrder,
}

// String implements fmt.Stringer.
func (v TierCalculationMode) String() string {
	return string(v)
}

// IsValid reports whether the value is a known TierCalculationMode.
func (v TierCalculationMode) IsValid() bool {
	for _, candidate := range validTierCalculationModes {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParseTierCalculationMode converts raw input into a TierCalculationMode.
func ParseTierCalculationMode(value string) (TierCalculationMode, error) {
	for _, candidate := range validTierCalculationModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid tier calculation mode %q", value)
}
