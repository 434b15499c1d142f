package grades

import (
	"github.com/shopspring/decimal"

	"github.com/gradeflow/gradeflow-backend/pkg/config"
	"github.com/gradeflow/gradeflow-backend/pkg/enums"
)

// FlexibleGradeConfig holds the selling rules a store authors for one grade.
type FlexibleGradeConfig struct {
	AllowFullGrade bool `json:"allow_full_grade"`
	AllowHalfGrade bool `json:"allow_half_grade"`
	AllowCustomMix bool `json:"allow_custom_mix"`

	HalfGradePercentage   int                         `json:"half_grade_percentage"`
	HalfGradeMinPairs     int                         `json:"half_grade_min_pairs"`
	HalfGradeDistribution enums.HalfGradeDistribution `json:"half_grade_distribution"`
	HalfGradeCustomSizes  []string                    `json:"half_grade_custom_sizes,omitempty"`
	HalfGradeCustomPairs  []int                       `json:"half_grade_custom_pairs,omitempty"`

	CustomMixMinPairs        int              `json:"custom_mix_min_pairs"`
	CustomMixMaxColors       int              `json:"custom_mix_max_colors"`
	CustomMixAllowAnySize    bool             `json:"custom_mix_allow_any_size"`
	CustomMixPresetSizes     []string         `json:"custom_mix_preset_sizes,omitempty"`
	CustomMixPriceAdjustment *decimal.Decimal `json:"custom_mix_price_adjustment,omitempty"`

	PricingMode                 enums.GradePricingMode    `json:"pricing_mode"`
	ApplyQuantityTiers          bool                      `json:"apply_quantity_tiers"`
	TierCalculationMode         enums.TierCalculationMode `json:"tier_calculation_mode"`
	HalfGradeDiscountPercentage *float64                  `json:"half_grade_discount_percentage,omitempty"`
}

// DefaultFlexibleGradeConfig is the seed configuration of a new grade: full grade only.
func DefaultFlexibleGradeConfig() FlexibleGradeConfig {
	return FlexibleGradeConfig{
		AllowFullGrade:        true,
		HalfGradePercentage:   50,
		HalfGradeMinPairs:     1,
		HalfGradeDistribution: enums.HalfGradeDistributionAuto,
		CustomMixMinPairs:     6,
		CustomMixMaxColors:    3,
		CustomMixAllowAnySize: true,
		PricingMode:           enums.GradePricingModeFlat,
		TierCalculationMode:   enums.TierCalculationModePerOrder,
	}
}

// DefaultsFromConfig applies the service-wide seed overrides to the default configuration.
func DefaultsFromConfig(cfg config.GradesConfig) FlexibleGradeConfig {
	out := DefaultFlexibleGradeConfig()
	if cfg.DefaultHalfGradePercentage > 0 {
		out.HalfGradePercentage = cfg.DefaultHalfGradePercentage
	}
	if cfg.DefaultCustomMixMinPairs > 0 {
		out.CustomMixMinPairs = cfg.DefaultCustomMixMinPairs
	}
	if cfg.DefaultCustomMixMaxColors > 0 {
		out.CustomMixMaxColors = cfg.DefaultCustomMixMaxColors
	}
	return out
}

// UsesQuantityTiers reports whether grade prices are looked up in the product's quantity tiers.
func (c FlexibleGradeConfig) UsesQuantityTiers() bool {
	return c.PricingMode == enums.GradePricingModeTierBased && c.ApplyQuantityTiers
}

// ModeAllowed reports whether the grade can be bought in the given mode.
func (c FlexibleGradeConfig) ModeAllowed(mode enums.GradeMode) bool {
	switch mode {
	case enums.GradeModeFull:
		return c.AllowFullGrade
	case enums.GradeModeHalf:
		return c.AllowHalfGrade
	case enums.GradeModeCustom:
		return c.AllowCustomMix
	}
	return false
}

// CustomGradeItem is one color/size line of a custom mix.
type CustomGradeItem struct {
	Color     string           `json:"color"`
	Size      string           `json:"size"`
	Quantity  int              `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// CustomGradeSelection is a buyer-assembled custom mix.
type CustomGradeSelection struct {
	Items          []CustomGradeItem `json:"items"`
	TotalPairs     int               `json:"total_pairs"`
	MeetsMinimum   bool              `json:"meets_minimum"`
	EstimatedPrice decimal.Decimal   `json:"estimated_price"`
}

// Issue is a single validation error or warning.
type Issue struct {
	Code    enums.IssueCode `json:"code"`
	Message string          `json:"message"`
}

// ValidationResult carries blocking errors and advisory warnings. Warnings never affect IsValid.
type ValidationResult struct {
	IsValid  bool    `json:"is_valid"`
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

func newValidationResult() ValidationResult {
	return ValidationResult{Errors: []Issue{}, Warnings: []Issue{}}
}

func (r *ValidationResult) addError(code enums.IssueCode, message string) {
	r.Errors = append(r.Errors, Issue{Code: code, Message: message})
}

func (r *ValidationResult) addWarning(code enums.IssueCode, message string) {
	r.Warnings = append(r.Warnings, Issue{Code: code, Message: message})
}

func (r *ValidationResult) finish() ValidationResult {
	r.IsValid = len(r.Errors) == 0
	return *r
}

// HasError reports whether an error with the given code was recorded.
func (r ValidationResult) HasError(code enums.IssueCode) bool {
	for _, issue := range r.Errors {
		if issue.Code == code {
			return true
		}
	}
	return false
}

// HasWarning reports whether a warning with the given code was recorded.
func (r ValidationResult) HasWarning(code enums.IssueCode) bool {
	for _, issue := range r.Warnings {
		if issue.Code == code {
			return true
		}
	}
	return false
}
