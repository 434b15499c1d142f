package enums

// IssueCode identifies a validation error or warning so clients can react without parsing text.
type IssueCode string

const (
	IssueNoSellingMode            IssueCode = "no_selling_mode"
	IssueHalfGradePercentage      IssueCode = "half_grade_percentage"
	IssueHalfGradeMinPairs        IssueCode = "half_grade_min_pairs"
	IssueHalfGradeCustomSizes     IssueCode = "half_grade_custom_sizes"
	IssueHalfGradeCustomMismatch  IssueCode = "half_grade_custom_mismatch"
	IssueHalfGradeDistribution    IssueCode = "half_grade_distribution"
	IssueCustomMixMinPairs        IssueCode = "custom_mix_min_pairs"
	IssueCustomMixMaxColors       IssueCode = "custom_mix_max_colors"
	IssueCustomMixHighMinimum     IssueCode = "custom_mix_high_minimum"
	IssuePricingMode              IssueCode = "pricing_mode"
	IssueTierBasedWithoutTiers    IssueCode = "tier_based_without_tiers"
	IssueTierCalculationMode      IssueCode = "tier_calculation_mode"
	IssuePerGradeTiers            IssueCode = "per_grade_tiers"
	IssueHalfGradeDiscountRange   IssueCode = "half_grade_discount_range"
	IssueHalfGradeDiscountHigh    IssueCode = "half_grade_discount_high"
	IssueCustomMixAdjustmentLarge IssueCode = "custom_mix_adjustment_large"

	IssueEmptySelection      IssueCode = "empty_selection"
	IssueCustomMixDisabled   IssueCode = "custom_mix_disabled"
	IssueBelowMinimumPairs   IssueCode = "below_minimum_pairs"
	IssueTooManyColors       IssueCode = "too_many_colors"
	IssueSizeNotPreset       IssueCode = "size_not_preset"
	IssueSizeUnavailable     IssueCode = "size_unavailable"
	IssueNonPositiveQuantity IssueCode = "non_positive_quantity"
	IssueSmallOrder          IssueCode = "small_order"
	IssueSingleColor         IssueCode = "single_color"
	IssueManySingleUnits     IssueCode = "many_single_units"
	IssueUnitPriceConflict   IssueCode = "unit_price_conflict"

	IssueInsufficientStock IssueCode = "insufficient_stock"
	IssueLowStock          IssueCode = "low_stock"
)

// String implements fmt.Stringer.
func (c IssueCode) String() string {
	return string(c)
}
