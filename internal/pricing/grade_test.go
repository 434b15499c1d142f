package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/gradeflow/gradeflow-backend/pkg/enums"
)

func floatPtr(v float64) *float64 { return &v }

func TestGradePriceFullGrade(t *testing.T) {
	engine := NewEngine(DefaultBootstrapConfig())
	settings := gradualSettings("100", tier(1, "100"), tier(12, "90"), tier(48, "80"))

	q := engine.GradePrice(settings, GradePriceInput{
		Mode:                enums.GradeModeFull,
		Pairs:               12,
		ApplyQuantityTiers:  true,
		TierCalculationMode: enums.TierCalculationModePerGrade,
		VariationAdjustment: dec("2.50"),
	})
	if q.TierQuantity != 12 || !q.QuantityTiersApplied {
		t.Fatalf("expected per-grade tiering at 12, got %d", q.TierQuantity)
	}
	if !q.UnitPrice.Equal(dec("92.50")) || !q.Total.Equal(dec("1110")) {
		t.Fatalf("unexpected full grade quote unit=%s total=%s", q.UnitPrice, q.Total)
	}
}

func TestGradePricePerOrderUsesOrderQuantity(t *testing.T) {
	engine := NewEngine(DefaultBootstrapConfig())
	settings := gradualSettings("100", tier(1, "100"), tier(12, "90"), tier(48, "80"))

	in := GradePriceInput{
		Mode:                enums.GradeModeFull,
		Pairs:               12,
		OrderQuantity:       48,
		ApplyQuantityTiers:  true,
		TierCalculationMode: enums.TierCalculationModePerOrder,
	}
	perOrder := engine.GradePrice(settings, in)
	if perOrder.TierQuantity != 48 || !perOrder.UnitPrice.Equal(dec("80")) {
		t.Fatalf("expected per-order tier price 80, got %s at %d", perOrder.UnitPrice, perOrder.TierQuantity)
	}

	in.TierCalculationMode = enums.TierCalculationModePerGrade
	perGrade := engine.GradePrice(settings, in)
	if !perGrade.UnitPrice.Equal(dec("90")) {
		t.Fatalf("expected per-grade tier price 90, got %s", perGrade.UnitPrice)
	}
}

func TestGradePriceWithoutQuantityTiersUsesBase(t *testing.T) {
	engine := NewEngine(DefaultBootstrapConfig())
	settings := gradualSettings("100", tier(1, "100"), tier(12, "90"))
	settings.UseBootstrapTiers = true

	q := engine.GradePrice(settings, GradePriceInput{Mode: enums.GradeModeFull, Pairs: 24})
	if !q.UnitPrice.Equal(dec("100")) || q.QuantityTiersApplied {
		t.Fatalf("expected flat base price, got %s", q.UnitPrice)
	}
	if settings.Tiers[1].MinQuantity != 12 {
		t.Fatal("settings must not be mutated")
	}
}

func TestGradePriceHalfGradeDiscount(t *testing.T) {
	engine := NewEngine(DefaultBootstrapConfig())
	settings := Settings{PriceModel: enums.PriceModelWholesaleOnly, BasePrice: dec("80"), WholesalePrice: dec("40")}

	q := engine.GradePrice(settings, GradePriceInput{
		Mode:                        enums.GradeModeHalf,
		Pairs:                       6,
		HalfGradeDiscountPercentage: floatPtr(12.5),
	})
	if !q.HalfGradeDiscount.Equal(dec("5")) || !q.UnitPrice.Equal(dec("35")) || !q.Total.Equal(dec("210")) {
		t.Fatalf("unexpected half grade quote %+v", q)
	}
}

func TestGradePriceCustomMixAdjustment(t *testing.T) {
	engine := NewEngine(DefaultBootstrapConfig())
	settings := Settings{PriceModel: enums.PriceModelRetailOnly, BasePrice: dec("30")}
	adj := decimal.RequireFromString("4.5")

	q := engine.GradePrice(settings, GradePriceInput{Mode: enums.GradeModeCustom, Pairs: 8, CustomMixPriceAdjustment: &adj})
	if !q.CustomMixAdjustment.Equal(dec("4.5")) || !q.UnitPrice.Equal(dec("34.5")) || !q.Total.Equal(dec("276")) {
		t.Fatalf("unexpected custom quote %+v", q)
	}

	negative := decimal.RequireFromString("-50")
	q = engine.GradePrice(settings, GradePriceInput{Mode: enums.GradeModeCustom, Pairs: 8, CustomMixPriceAdjustment: &negative})
	if !q.UnitPrice.IsZero() {
		t.Fatalf("unit price must not go negative, got %s", q.UnitPrice)
	}
}
