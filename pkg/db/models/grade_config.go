package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/gradeflow/gradeflow-backend/pkg/enums"
)

// GradeConfig persists the flexible selling rules authored for a grade variation.
type GradeConfig struct {
	VariationID uuid.UUID `gorm:"column:variation_id;type:uuid;primaryKey"`
	StoreID     uuid.UUID `gorm:"column:store_id;type:uuid;not null"`

	AllowFullGrade bool `gorm:"column:allow_full_grade;not null"`
	AllowHalfGrade bool `gorm:"column:allow_half_grade;not null"`
	AllowCustomMix bool `gorm:"column:allow_custom_mix;not null"`

	HalfGradePercentage   int                         `gorm:"column:half_grade_percentage;not null"`
	HalfGradeMinPairs     int                         `gorm:"column:half_grade_min_pairs;not null"`
	HalfGradeDistribution enums.HalfGradeDistribution `gorm:"column:half_grade_distribution;not null;default:auto"`
	HalfGradeCustomSizes  pq.StringArray              `gorm:"column:half_grade_custom_sizes;type:text[]"`
	HalfGradeCustomPairs  pq.Int64Array               `gorm:"column:half_grade_custom_pairs;type:bigint[]"`

	CustomMixMinPairs        int                 `gorm:"column:custom_mix_min_pairs;not null"`
	CustomMixMaxColors       int                 `gorm:"column:custom_mix_max_colors;not null"`
	CustomMixAllowAnySize    bool                `gorm:"column:custom_mix_allow_any_size;not null"`
	CustomMixPresetSizes     pq.StringArray      `gorm:"column:custom_mix_preset_sizes;type:text[]"`
	CustomMixPriceAdjustment decimal.NullDecimal `gorm:"column:custom_mix_price_adjustment;type:numeric(12,2)"`

	PricingMode                 enums.GradePricingMode    `gorm:"column:pricing_mode;not null;default:flat"`
	ApplyQuantityTiers          bool                      `gorm:"column:apply_quantity_tiers;not null"`
	TierCalculationMode         enums.TierCalculationMode `gorm:"column:tier_calculation_mode;not null;default:per_order"`
	HalfGradeDiscountPercentage *float64                  `gorm:"column:half_grade_discount_percentage;type:numeric(5,2)"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
