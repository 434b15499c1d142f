package grades

import (
	"testing"

	"github.com/gradeflow/gradeflow-backend/pkg/enums"
	pkgerrors "github.com/gradeflow/gradeflow-backend/pkg/errors"
)

func TestParseConfigFullDocument(t *testing.T) {
	raw := []byte(`{
		"allow_full_grade": true,
		"allow_half_grade": true,
		"allow_custom_mix": false,
		"half_grade_percentage": 40,
		"half_grade_min_pairs": 4,
		"half_grade_distribution": "auto",
		"pricing_mode": "tier_based",
		"apply_quantity_tiers": true,
		"tier_calculation_mode": "per_grade",
		"half_grade_discount_percentage": 5
	}`)

	cfg, err := ParseConfig(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.AllowHalfGrade || cfg.HalfGradePercentage != 40 || cfg.HalfGradeMinPairs != 4 {
		t.Fatalf("unexpected half grade fields %+v", cfg)
	}
	if cfg.PricingMode != enums.GradePricingModeTierBased || cfg.TierCalculationMode != enums.TierCalculationModePerGrade {
		t.Fatalf("unexpected pricing fields %+v", cfg)
	}
	if cfg.HalfGradeDiscountPercentage == nil || *cfg.HalfGradeDiscountPercentage != 5 {
		t.Fatalf("expected discount to be decoded")
	}
}

func TestParseConfigKeepsUnknownEnumsForValidation(t *testing.T) {
	raw := []byte(`{"allow_full_grade":true,"allow_half_grade":false,"allow_custom_mix":false,
		"pricing_mode":"volume","apply_quantity_tiers":false,"tier_calculation_mode":"per_order"}`)

	cfg, err := ParseConfig(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res := ValidateConfig(cfg); !res.HasError(enums.IssuePricingMode) {
		t.Fatalf("expected pricing mode error, got %+v", res.Errors)
	}
}

func TestParseConfigFailsFast(t *testing.T) {
	cases := map[string]string{
		"missing flag":      `{"allow_full_grade":true,"allow_half_grade":false,"pricing_mode":"flat","apply_quantity_tiers":false,"tier_calculation_mode":"per_order"}`,
		"unknown field":     `{"allow_full_grade":true,"allow_half_grade":false,"allow_custom_mix":false,"pricing_mode":"flat","apply_quantity_tiers":false,"tier_calculation_mode":"per_order","colour":"x"}`,
		"half fields":       `{"allow_full_grade":true,"allow_half_grade":true,"allow_custom_mix":false,"pricing_mode":"flat","apply_quantity_tiers":false,"tier_calculation_mode":"per_order"}`,
		"custom fields":     `{"allow_full_grade":true,"allow_half_grade":false,"allow_custom_mix":true,"custom_mix_min_pairs":6,"pricing_mode":"flat","apply_quantity_tiers":false,"tier_calculation_mode":"per_order"}`,
		"malformed":         `{"allow_full_grade":`,
		"missing pricing":   `{"allow_full_grade":true,"allow_half_grade":false,"allow_custom_mix":false,"apply_quantity_tiers":false,"tier_calculation_mode":"per_order"}`,
		"blank preset size": `{"allow_full_grade":true,"allow_half_grade":false,"allow_custom_mix":false,"custom_mix_preset_sizes":[""],"pricing_mode":"flat","apply_quantity_tiers":false,"tier_calculation_mode":"per_order"}`,
	}
	for name, raw := range cases {
		if _, err := ParseConfig([]byte(raw)); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
			t.Fatalf("%s: expected validation error, got %v", name, err)
		}
	}
}
