package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/gradeflow/gradeflow-backend/pkg/enums"
)

// GradePriceInput describes one grade purchase. OrderQuantity is the pair count of the whole
// order and only matters for per_order tier calculation.
type GradePriceInput struct {
	Mode                        enums.GradeMode
	Pairs                       int
	OrderQuantity               int
	ApplyQuantityTiers          bool
	TierCalculationMode         enums.TierCalculationMode
	HalfGradeDiscountPercentage *float64
	CustomMixPriceAdjustment    *decimal.Decimal
	VariationAdjustment         decimal.Decimal
}

// GradeQuote is the per-pair and total price of a grade purchase.
type GradeQuote struct {
	Base                 Quote           `json:"base"`
	Mode                 enums.GradeMode `json:"mode"`
	Pairs                int             `json:"pairs"`
	TierQuantity         int             `json:"tier_quantity"`
	UnitPrice            decimal.Decimal `json:"unit_price"`
	Total                decimal.Decimal `json:"total"`
	HalfGradeDiscount    decimal.Decimal `json:"half_grade_discount"`
	CustomMixAdjustment  decimal.Decimal `json:"custom_mix_adjustment"`
	QuantityTiersApplied bool            `json:"quantity_tiers_applied"`
}

// TierQuantity is the quantity used for tier lookup: the grade's own pairs for per_grade,
// the whole order for per_order.
func (in GradePriceInput) TierQuantity() int {
	if in.ApplyQuantityTiers && in.TierCalculationMode == enums.TierCalculationModePerOrder && in.OrderQuantity > in.Pairs {
		return in.OrderQuantity
	}
	return in.Pairs
}

// GradePrice prices a full, half or custom grade purchase.
// Without quantity tiers gradual products are priced at base, other models keep their own rules.
func (e *Engine) GradePrice(settings Settings, in GradePriceInput) GradeQuote {
	pairs := in.Pairs
	if pairs < 0 {
		pairs = 0
	}
	tierQty := in.TierQuantity()

	effective := settings
	if !in.ApplyQuantityTiers && settings.PriceModel == enums.PriceModelGradualWholesale {
		effective.Tiers = [MaxTiers]PriceTier{}
		effective.UseBootstrapTiers = false
	}
	base := e.UnitPrice(effective, tierQty)

	unit := base.UnitPrice.Add(in.VariationAdjustment)
	out := GradeQuote{
		Base:                 base,
		Mode:                 in.Mode,
		Pairs:                pairs,
		TierQuantity:         tierQty,
		HalfGradeDiscount:    decimal.Zero,
		CustomMixAdjustment:  decimal.Zero,
		QuantityTiersApplied: in.ApplyQuantityTiers && base.AppliedTier != nil,
	}

	switch in.Mode {
	case enums.GradeModeHalf:
		if in.HalfGradeDiscountPercentage != nil && *in.HalfGradeDiscountPercentage > 0 {
			pct := decimal.NewFromFloat(*in.HalfGradeDiscountPercentage)
			discount := unit.Mul(pct).Div(hundred).Round(priceScale)
			out.HalfGradeDiscount = discount
			unit = unit.Sub(discount)
		}
	case enums.GradeModeCustom:
		if in.CustomMixPriceAdjustment != nil {
			out.CustomMixAdjustment = in.CustomMixPriceAdjustment.Round(priceScale)
			unit = unit.Add(out.CustomMixAdjustment)
		}
	}
	if unit.IsNegative() {
		unit = decimal.Zero
	}

	out.UnitPrice = unit.Round(priceScale)
	out.Total = out.UnitPrice.Mul(decimal.NewFromInt(int64(pairs))).Round(priceScale)
	return out
}
