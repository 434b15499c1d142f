package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/gradeflow/gradeflow-backend/pkg/config"
	"github.com/gradeflow/gradeflow-backend/pkg/enums"
	pkgerrors "github.com/gradeflow/gradeflow-backend/pkg/errors"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func tier(minQty int, price string) PriceTier {
	return PriceTier{MinQuantity: minQty, Price: dec(price), Enabled: true}
}

func gradualSettings(base string, tiers ...PriceTier) Settings {
	s := Settings{PriceModel: enums.PriceModelGradualWholesale, BasePrice: dec(base)}
	s.SetTiers(tiers)
	return s
}

func TestSelectTierMonotonic(t *testing.T) {
	tiers := []PriceTier{tier(1, "100"), tier(10, "90"), tier(50, "80")}
	cases := map[int]string{9: "100", 10: "90", 49: "90", 50: "80", 500: "80"}
	for qty, want := range cases {
		got := SelectTier(tiers, qty)
		if got == nil || !got.Price.Equal(dec(want)) {
			t.Fatalf("qty %d: expected %s, got %+v", qty, want, got)
		}
	}
	if SelectTier(tiers, 0) != nil {
		t.Fatal("expected no tier for zero quantity")
	}
}

func TestSelectTierIgnoresDisabledAndOrder(t *testing.T) {
	disabled := tier(10, "50")
	disabled.Enabled = false
	tiers := []PriceTier{tier(50, "80"), disabled, tier(1, "100")}
	got := SelectTier(tiers, 20)
	if got == nil || !got.Price.Equal(dec("100")) {
		t.Fatalf("expected base tier, got %+v", got)
	}
}

func TestUnitPriceGradualFollowsTiers(t *testing.T) {
	engine := NewEngine(DefaultBootstrapConfig())
	settings := gradualSettings("100", tier(1, "100"), tier(10, "90"), tier(50, "80"))

	for qty, want := range map[int]string{9: "100", 10: "90", 49: "90", 50: "80"} {
		q := engine.UnitPrice(settings, qty)
		if !q.UnitPrice.Equal(dec(want)) {
			t.Fatalf("qty %d: expected %s, got %s", qty, want, q.UnitPrice)
		}
		if q.Bootstrapped {
			t.Fatalf("qty %d: configured tiers must not be bootstrapped", qty)
		}
	}

	q := engine.UnitPrice(settings, 12)
	if !q.Savings.Equal(dec("120")) {
		t.Fatalf("expected savings 120, got %s", q.Savings)
	}
	if q.NextTier == nil || q.NextTier.MinQuantity != 50 || q.UnitsToNextTier != 38 {
		t.Fatalf("unexpected next tier %+v (%d)", q.NextTier, q.UnitsToNextTier)
	}
	if !q.Total.Equal(dec("1080")) {
		t.Fatalf("expected total 1080, got %s", q.Total)
	}

	top := engine.UnitPrice(settings, 80)
	if top.NextTier != nil || top.UnitsToNextTier != 0 {
		t.Fatalf("expected no next tier at the top, got %+v", top.NextTier)
	}
}

func TestUnitPriceGradualWithoutQualifyingTierFallsBackToBase(t *testing.T) {
	engine := NewEngine(DefaultBootstrapConfig())
	settings := gradualSettings("70", tier(12, "60"))
	q := engine.UnitPrice(settings, 5)
	if !q.UnitPrice.Equal(dec("70")) || q.AppliedTier != nil {
		t.Fatalf("expected base price fallback, got %s (%+v)", q.UnitPrice, q.AppliedTier)
	}
	if !q.Savings.IsZero() {
		t.Fatalf("expected no savings, got %s", q.Savings)
	}
}

func TestUnitPriceBootstrapScenario(t *testing.T) {
	engine := NewEngine(DefaultBootstrapConfig())

	withBootstrap := Settings{PriceModel: enums.PriceModelGradualWholesale, BasePrice: dec("50"), UseBootstrapTiers: true}
	q := engine.UnitPrice(withBootstrap, 60)
	if !q.UnitPrice.Equal(dec("40")) {
		t.Fatalf("expected 40.00 with bootstrap tiers, got %s", q.UnitPrice)
	}
	if !q.Bootstrapped || q.AppliedTier == nil || q.AppliedTier.MinQuantity != 50 {
		t.Fatalf("expected bootstrap tier 50, got %+v", q.AppliedTier)
	}
	if !q.Savings.Equal(dec("600")) {
		t.Fatalf("expected savings 600, got %s", q.Savings)
	}

	withoutBootstrap := withBootstrap
	withoutBootstrap.UseBootstrapTiers = false
	q = engine.UnitPrice(withoutBootstrap, 60)
	if !q.UnitPrice.Equal(dec("50")) || q.Bootstrapped {
		t.Fatalf("expected 50.00 without bootstrap tiers, got %s", q.UnitPrice)
	}
}

func TestUnitPriceSimpleWholesale(t *testing.T) {
	engine := NewEngine(DefaultBootstrapConfig())
	settings := Settings{
		PriceModel:      enums.PriceModelSimpleWholesale,
		BasePrice:       dec("59.90"),
		WholesalePrice:  dec("39.90"),
		MinWholesaleQty: 12,
	}

	below := engine.UnitPrice(settings, 11)
	if !below.UnitPrice.Equal(dec("59.90")) {
		t.Fatalf("expected retail below minimum, got %s", below.UnitPrice)
	}
	if below.NextTier == nil || below.UnitsToNextTier != 1 {
		t.Fatalf("expected hint towards wholesale, got %+v", below.NextTier)
	}

	at := engine.UnitPrice(settings, 12)
	if !at.UnitPrice.Equal(dec("39.90")) || !at.Savings.Equal(dec("240")) {
		t.Fatalf("unexpected wholesale quote %s savings %s", at.UnitPrice, at.Savings)
	}
}

func TestUnitPriceRetailAndWholesaleOnly(t *testing.T) {
	engine := NewEngine(DefaultBootstrapConfig())

	retail := engine.UnitPrice(Settings{PriceModel: enums.PriceModelRetailOnly, BasePrice: dec("10"), WholesalePrice: dec("5")}, 1000)
	if !retail.UnitPrice.Equal(dec("10")) || !retail.Savings.IsZero() {
		t.Fatalf("retail must ignore quantity, got %s", retail.UnitPrice)
	}

	wholesale := engine.UnitPrice(Settings{PriceModel: enums.PriceModelWholesaleOnly, BasePrice: dec("10"), WholesalePrice: dec("5")}, 1)
	if !wholesale.UnitPrice.Equal(dec("5")) {
		t.Fatalf("expected wholesale price, got %s", wholesale.UnitPrice)
	}
	if wholesale.ShowsRetail || !wholesale.Savings.IsZero() {
		t.Fatal("wholesale_only must hide retail fields")
	}
}

func TestSavingsNeverNegative(t *testing.T) {
	if got := Savings(dec("10"), dec("12"), 5); !got.IsZero() {
		t.Fatalf("expected zero savings, got %s", got)
	}
	if got := Savings(dec("10"), dec("7.5"), 4); !got.Equal(dec("10")) {
		t.Fatalf("expected 10, got %s", got)
	}
}

func TestNextTierHint(t *testing.T) {
	tiers := []PriceTier{tier(50, "80"), tier(10, "90"), tier(1, "100")}
	if got := NextTierHint(tiers, 10); got == nil || got.MinQuantity != 50 {
		t.Fatalf("expected 50, got %+v", got)
	}
	if got := NextTierHint(tiers, 0); got == nil || got.MinQuantity != 1 {
		t.Fatalf("expected 1, got %+v", got)
	}
	if got := NextTierHint(tiers, 50); got != nil {
		t.Fatalf("expected nil at top tier, got %+v", got)
	}
}

func TestBootstrapTiers(t *testing.T) {
	tiers := BootstrapTiers(dec("50"), DefaultBootstrapConfig())
	want := []struct {
		min   int
		price string
	}{{1, "50"}, {10, "45"}, {50, "40"}, {100, "35"}}
	if len(tiers) != len(want) {
		t.Fatalf("expected %d tiers, got %d", len(want), len(tiers))
	}
	for i, w := range want {
		if tiers[i].MinQuantity != w.min || !tiers[i].Price.Equal(dec(w.price)) || tiers[i].Index != i+1 {
			t.Fatalf("tier %d: got %+v", i, tiers[i])
		}
	}

	custom := BootstrapTiers(dec("19.99"), BootstrapConfig{Thresholds: []int{1, 6}, StepPercent: 5})
	if len(custom) != 2 || !custom[1].Price.Equal(dec("18.99")) {
		t.Fatalf("unexpected custom bootstrap %+v", custom)
	}

	capped := BootstrapTiers(dec("10"), BootstrapConfig{Thresholds: []int{1, 2, 3, 4, 5, 6}, StepPercent: 5})
	if len(capped) != MaxTiers {
		t.Fatalf("expected at most %d tiers, got %d", MaxTiers, len(capped))
	}
}

func TestBootstrapFromConfig(t *testing.T) {
	got := BootstrapFromConfig(config.PricingConfig{BootstrapThresholds: []int{1, 20}, BootstrapStepPercent: 15})
	if len(got.Thresholds) != 2 || got.Thresholds[1] != 20 || got.StepPercent != 15 {
		t.Fatalf("unexpected bootstrap %+v", got)
	}
	if def := BootstrapFromConfig(config.PricingConfig{}); len(def.Thresholds) != 4 {
		t.Fatalf("expected defaults, got %+v", def)
	}
}

func TestValidateTiers(t *testing.T) {
	if err := ValidateTiers([]PriceTier{tier(1, "10"), tier(10, "9")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	disabled := PriceTier{Name: "vazio"}
	if err := ValidateTiers([]PriceTier{tier(1, "10"), disabled}); err != nil {
		t.Fatalf("disabled empty slots must be accepted: %v", err)
	}

	cases := map[string][]PriceTier{
		"duplicate":      {tier(10, "10"), tier(10, "9")},
		"negative price": {tier(1, "-1")},
		"zero minimum":   {tier(0, "10")},
		"too many":       {tier(1, "5"), tier(2, "4"), tier(3, "3"), tier(4, "2"), tier(5, "1")},
	}
	for name, tiers := range cases {
		t.Run(name, func(t *testing.T) {
			if err := ValidateTiers(tiers); !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestValidateSettings(t *testing.T) {
	ok := Settings{PriceModel: enums.PriceModelSimpleWholesale, BasePrice: dec("10"), WholesalePrice: dec("8"), MinWholesaleQty: 6}
	if err := ValidateSettings(ok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := ok
	bad.MinWholesaleQty = 0
	if err := ValidateSettings(bad); err == nil {
		t.Fatal("expected error for missing wholesale minimum")
	}
	bad = ok
	bad.PriceModel = "bulk"
	if err := ValidateSettings(bad); err == nil {
		t.Fatal("expected error for unknown price model")
	}
}
