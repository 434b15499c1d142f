package grades

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/gradeflow/gradeflow-backend/pkg/enums"
	pkgerrors "github.com/gradeflow/gradeflow-backend/pkg/errors"
)

var shapeValidator = newShapeValidator()

func newShapeValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// configDocument is the wire shape of a grade configuration. Pointers distinguish
// missing fields from zero values.
type configDocument struct {
	AllowFullGrade *bool `json:"allow_full_grade" validate:"required"`
	AllowHalfGrade *bool `json:"allow_half_grade" validate:"required"`
	AllowCustomMix *bool `json:"allow_custom_mix" validate:"required"`

	HalfGradePercentage   *int     `json:"half_grade_percentage"`
	HalfGradeMinPairs     *int     `json:"half_grade_min_pairs"`
	HalfGradeDistribution *string  `json:"half_grade_distribution"`
	HalfGradeCustomSizes  []string `json:"half_grade_custom_sizes" validate:"omitempty,dive,required"`
	HalfGradeCustomPairs  []int    `json:"half_grade_custom_pairs"`

	CustomMixMinPairs        *int             `json:"custom_mix_min_pairs"`
	CustomMixMaxColors       *int             `json:"custom_mix_max_colors"`
	CustomMixAllowAnySize    *bool            `json:"custom_mix_allow_any_size"`
	CustomMixPresetSizes     []string         `json:"custom_mix_preset_sizes" validate:"omitempty,dive,required"`
	CustomMixPriceAdjustment *decimal.Decimal `json:"custom_mix_price_adjustment"`

	PricingMode                 *string  `json:"pricing_mode" validate:"required"`
	ApplyQuantityTiers          *bool    `json:"apply_quantity_tiers" validate:"required"`
	TierCalculationMode         *string  `json:"tier_calculation_mode" validate:"required"`
	HalfGradeDiscountPercentage *float64 `json:"half_grade_discount_percentage"`
}

// ParseConfig strictly decodes a stored or submitted configuration document. Missing
// required fields or unknown keys fail fast; range and enum rules are left to ValidateConfig
// so they surface as structured issues.
func ParseConfig(raw []byte) (FlexibleGradeConfig, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var doc configDocument
	if err := dec.Decode(&doc); err != nil {
		return FlexibleGradeConfig{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid grade config document")
	}
	if err := shapeValidator.Struct(doc); err != nil {
		return FlexibleGradeConfig{}, shapeError(err)
	}

	var missing []string
	if *doc.AllowHalfGrade {
		missing = appendMissing(missing, doc.HalfGradePercentage == nil, "half_grade_percentage")
		missing = appendMissing(missing, doc.HalfGradeMinPairs == nil, "half_grade_min_pairs")
		missing = appendMissing(missing, doc.HalfGradeDistribution == nil, "half_grade_distribution")
	}
	if *doc.AllowCustomMix {
		missing = appendMissing(missing, doc.CustomMixMinPairs == nil, "custom_mix_min_pairs")
		missing = appendMissing(missing, doc.CustomMixMaxColors == nil, "custom_mix_max_colors")
		missing = appendMissing(missing, doc.CustomMixAllowAnySize == nil, "custom_mix_allow_any_size")
	}
	if len(missing) > 0 {
		details := make(map[string]string, len(missing))
		for _, field := range missing {
			details[field] = "required"
		}
		return FlexibleGradeConfig{}, pkgerrors.New(pkgerrors.CodeValidation, "grade config is missing required fields").
			WithDetails(details)
	}

	return doc.toConfig(), nil
}

func (doc configDocument) toConfig() FlexibleGradeConfig {
	cfg := DefaultFlexibleGradeConfig()
	cfg.AllowFullGrade = *doc.AllowFullGrade
	cfg.AllowHalfGrade = *doc.AllowHalfGrade
	cfg.AllowCustomMix = *doc.AllowCustomMix

	if doc.HalfGradePercentage != nil {
		cfg.HalfGradePercentage = *doc.HalfGradePercentage
	}
	if doc.HalfGradeMinPairs != nil {
		cfg.HalfGradeMinPairs = *doc.HalfGradeMinPairs
	}
	if doc.HalfGradeDistribution != nil {
		cfg.HalfGradeDistribution = enums.HalfGradeDistribution(*doc.HalfGradeDistribution)
	}
	cfg.HalfGradeCustomSizes = doc.HalfGradeCustomSizes
	cfg.HalfGradeCustomPairs = doc.HalfGradeCustomPairs

	if doc.CustomMixMinPairs != nil {
		cfg.CustomMixMinPairs = *doc.CustomMixMinPairs
	}
	if doc.CustomMixMaxColors != nil {
		cfg.CustomMixMaxColors = *doc.CustomMixMaxColors
	}
	if doc.CustomMixAllowAnySize != nil {
		cfg.CustomMixAllowAnySize = *doc.CustomMixAllowAnySize
	}
	cfg.CustomMixPresetSizes = doc.CustomMixPresetSizes
	cfg.CustomMixPriceAdjustment = doc.CustomMixPriceAdjustment

	cfg.PricingMode = enums.GradePricingMode(*doc.PricingMode)
	cfg.ApplyQuantityTiers = *doc.ApplyQuantityTiers
	cfg.TierCalculationMode = enums.TierCalculationMode(*doc.TierCalculationMode)
	cfg.HalfGradeDiscountPercentage = doc.HalfGradeDiscountPercentage
	return cfg
}

func appendMissing(missing []string, absent bool, field string) []string {
	if absent {
		return append(missing, field)
	}
	return missing
}

func shapeError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid grade config document")
	}
	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[fe.Field()] = fmt.Sprintf("failed %s validation", fe.Tag())
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "grade config is missing required fields").
		WithDetails(details)
}
