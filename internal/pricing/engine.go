package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/gradeflow/gradeflow-backend/pkg/enums"
	pkgerrors "github.com/gradeflow/gradeflow-backend/pkg/errors"
)

const priceScale = 2

var hundred = decimal.NewFromInt(100)

// Engine derives unit prices from pricing settings. It holds no mutable state.
type Engine struct {
	bootstrap BootstrapConfig
}

// NewEngine builds an engine seeding empty gradual products with the given bootstrap tiers.
func NewEngine(bootstrap BootstrapConfig) *Engine {
	return &Engine{bootstrap: bootstrap}
}

// UnitPrice quotes qty units under the product's price model.
func (e *Engine) UnitPrice(settings Settings, qty int) Quote {
	if qty < 0 {
		qty = 0
	}
	base := settings.BasePrice
	quote := Quote{
		Model:       settings.PriceModel,
		Quantity:    qty,
		BasePrice:   base,
		UnitPrice:   base,
		Savings:     decimal.Zero,
		ShowsRetail: settings.PriceModel.ShowsRetail(),
	}

	switch settings.PriceModel {
	case enums.PriceModelSimpleWholesale:
		minQty := settings.MinWholesaleQty
		if minQty < 1 {
			minQty = 1
		}
		wholesale := PriceTier{Index: 1, Name: "Atacado", MinQuantity: minQty, Price: settings.WholesalePrice, Enabled: true}
		if qty >= minQty {
			quote.UnitPrice = settings.WholesalePrice
			quote.AppliedTier = &wholesale
		} else {
			quote.NextTier = &wholesale
			quote.UnitsToNextTier = minQty - qty
		}
	case enums.PriceModelGradualWholesale:
		tiers := settings.ActiveTiers()
		if len(tiers) == 0 && settings.UseBootstrapTiers {
			tiers = BootstrapTiers(base, e.bootstrap)
			quote.Bootstrapped = len(tiers) > 0
		}
		if tier := SelectTier(tiers, qty); tier != nil {
			quote.UnitPrice = tier.Price
			quote.AppliedTier = tier
		}
		if next := NextTierHint(tiers, qty); next != nil {
			quote.NextTier = next
			quote.UnitsToNextTier = next.MinQuantity - qty
		}
	case enums.PriceModelWholesaleOnly:
		quote.UnitPrice = settings.WholesalePrice
	}

	quote.UnitPrice = quote.UnitPrice.Round(priceScale)
	quote.Total = quote.UnitPrice.Mul(decimal.NewFromInt(int64(qty))).Round(priceScale)
	if quote.ShowsRetail {
		quote.Savings = Savings(base, quote.UnitPrice, qty)
	}
	return quote
}

// SelectTier returns the enabled tier with the greatest MinQuantity not above qty.
func SelectTier(tiers []PriceTier, qty int) *PriceTier {
	var selected *PriceTier
	for _, tier := range tiers {
		if !tier.Enabled || tier.MinQuantity < 1 {
			continue
		}
		if tier.MinQuantity <= qty {
			if selected == nil || tier.MinQuantity > selected.MinQuantity {
				copy := tier
				selected = &copy
			}
		}
	}
	return selected
}

// NextTierHint returns the enabled tier with the smallest MinQuantity strictly above qty.
func NextTierHint(tiers []PriceTier, qty int) *PriceTier {
	var next *PriceTier
	for _, tier := range tiers {
		if !tier.Enabled || tier.MinQuantity <= qty {
			continue
		}
		if next == nil || tier.MinQuantity < next.MinQuantity {
			copy := tier
			next = &copy
		}
	}
	return next
}

// Savings is (base - tierPrice) * qty, floored at zero.
func Savings(base, tierPrice decimal.Decimal, qty int) decimal.Decimal {
	diff := base.Sub(tierPrice)
	if diff.IsNegative() || qty <= 0 {
		return decimal.Zero
	}
	return diff.Mul(decimal.NewFromInt(int64(qty))).Round(priceScale)
}

// BootstrapTiers seeds one tier per threshold, each StepPercent cheaper than the previous.
func BootstrapTiers(base decimal.Decimal, cfg BootstrapConfig) []PriceTier {
	tiers := make([]PriceTier, 0, len(cfg.Thresholds))
	step := decimal.NewFromFloat(cfg.StepPercent)
	for i, threshold := range cfg.Thresholds {
		if i >= MaxTiers || threshold < 1 {
			break
		}
		discount := step.Mul(decimal.NewFromInt(int64(i)))
		if discount.GreaterThanOrEqual(hundred) {
			break
		}
		price := base.Mul(hundred.Sub(discount)).Div(hundred).Round(priceScale)
		tiers = append(tiers, PriceTier{
			Index:       i + 1,
			Name:        fmt.Sprintf("Faixa %d", i+1),
			MinQuantity: threshold,
			Price:       price,
			Enabled:     true,
		})
	}
	return tiers
}

// ValidateTiers rejects tier lists that cannot be priced deterministically.
func ValidateTiers(tiers []PriceTier) error {
	if len(tiers) > MaxTiers {
		return pkgerrors.Newf(pkgerrors.CodeValidation, "at most %d price tiers are allowed", MaxTiers)
	}
	seen := make(map[int]struct{}, len(tiers))
	for i, tier := range tiers {
		if tier.Price.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "price tier price must be non-negative").
				WithDetails(map[string]any{"slot": i + 1})
		}
		if !tier.Enabled {
			continue
		}
		if tier.MinQuantity < 1 {
			return pkgerrors.New(pkgerrors.CodeValidation, "price tier min_quantity must be at least 1").
				WithDetails(map[string]any{"slot": i + 1})
		}
		if _, ok := seen[tier.MinQuantity]; ok {
			return pkgerrors.New(pkgerrors.CodeValidation, "duplicate price tier min_quantity").
				WithDetails(map[string]any{"slot": i + 1, "min_quantity": tier.MinQuantity})
		}
		seen[tier.MinQuantity] = struct{}{}
	}
	return nil
}

// ValidateSettings checks the whole settings value before it is stored.
func ValidateSettings(s Settings) error {
	if !s.PriceModel.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid price model").
			WithDetails(map[string]any{"price_model": s.PriceModel.String()})
	}
	if s.BasePrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "base_price must be non-negative")
	}
	if s.WholesalePrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "wholesale_price must be non-negative")
	}
	if s.PriceModel == enums.PriceModelSimpleWholesale && s.MinWholesaleQty < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "min_wholesale_qty must be at least 1")
	}
	return ValidateTiers(s.Tiers[:])
}
