package pricing

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gradeflow/gradeflow-backend/pkg/config"
	"github.com/gradeflow/gradeflow-backend/pkg/enums"
)

// MaxTiers is the number of gradual wholesale slots a product can configure.
const MaxTiers = 4

// PriceTier is a quantity threshold at which a different unit price applies.
// Index is the 1-based slot the tier occupies.
type PriceTier struct {
	ID          uuid.UUID       `json:"id"`
	Index       int             `json:"index"`
	Name        string          `json:"name"`
	MinQuantity int             `json:"min_quantity"`
	Price       decimal.Decimal `json:"price"`
	Enabled     bool            `json:"enabled"`
}

// Settings is the typed pricing configuration of a product.
type Settings struct {
	PriceModel        enums.PriceModel    `json:"price_model"`
	BasePrice         decimal.Decimal     `json:"base_price"`
	WholesalePrice    decimal.Decimal     `json:"wholesale_price"`
	MinWholesaleQty   int                 `json:"min_wholesale_qty"`
	Tiers             [MaxTiers]PriceTier `json:"tiers"`
	UseBootstrapTiers bool                `json:"use_bootstrap_tiers"`
}

// ActiveTiers returns enabled tiers with a usable threshold, ordered by MinQuantity.
func (s Settings) ActiveTiers() []PriceTier {
	return activeTiers(s.Tiers[:])
}

// SetTiers fills the fixed slots from a list, assigning indexes by position.
func (s *Settings) SetTiers(tiers []PriceTier) {
	s.Tiers = [MaxTiers]PriceTier{}
	for i := 0; i < len(tiers) && i < MaxTiers; i++ {
		tier := tiers[i]
		tier.Index = i + 1
		s.Tiers[i] = tier
	}
}

func activeTiers(tiers []PriceTier) []PriceTier {
	out := make([]PriceTier, 0, len(tiers))
	for _, tier := range tiers {
		if tier.Enabled && tier.MinQuantity >= 1 {
			out = append(out, tier)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MinQuantity < out[j].MinQuantity
	})
	return out
}

// BootstrapConfig seeds gradual wholesale tiers when a product has none.
type BootstrapConfig struct {
	Thresholds  []int
	StepPercent float64
}

// DefaultBootstrapConfig steps the price down 10% at 1, 10, 50 and 100 units.
func DefaultBootstrapConfig() BootstrapConfig {
	return BootstrapConfig{Thresholds: []int{1, 10, 50, 100}, StepPercent: 10}
}

// BootstrapFromConfig reads the store-wide defaults from the service configuration.
func BootstrapFromConfig(cfg config.PricingConfig) BootstrapConfig {
	if len(cfg.BootstrapThresholds) == 0 {
		return DefaultBootstrapConfig()
	}
	thresholds := make([]int, len(cfg.BootstrapThresholds))
	copy(thresholds, cfg.BootstrapThresholds)
	return BootstrapConfig{Thresholds: thresholds, StepPercent: cfg.BootstrapStepPercent}
}

// Quote is the resolved price of a quantity under a product's settings.
type Quote struct {
	Model           enums.PriceModel `json:"model"`
	Quantity        int              `json:"quantity"`
	BasePrice       decimal.Decimal  `json:"base_price"`
	UnitPrice       decimal.Decimal  `json:"unit_price"`
	Total           decimal.Decimal  `json:"total"`
	Savings         decimal.Decimal  `json:"savings"`
	ShowsRetail     bool             `json:"shows_retail"`
	AppliedTier     *PriceTier       `json:"applied_tier,omitempty"`
	NextTier        *PriceTier       `json:"next_tier,omitempty"`
	UnitsToNextTier int              `json:"units_to_next_tier,omitempty"`
	Bootstrapped    bool             `json:"bootstrapped"`
}
