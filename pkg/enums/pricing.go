package enums

import "fmt"

// PriceModel selects how a product's unit price is derived from quantity.
type PriceModel string

const (
	PriceModelRetailOnly       PriceModel = "retail_only"
	PriceModelSimpleWholesale  PriceModel = "simple_wholesale"
	PriceModelGradualWholesale PriceModel = "gradual_wholesale"
	PriceModelWholesaleOnly    PriceModel = "wholesale_only"
)

var validPriceModels = []PriceModel{
	PriceModelRetailOnly,
	PriceModelSimpleWholesale,
	PriceModelGradualWholesale,
	PriceModelWholesaleOnly,
}

// String implements fmt.Stringer.
func (v PriceModel) String() string {
	return string(v)
}

// IsValid reports whether the value is a known PriceModel.
func (v PriceModel) IsValid() bool {
	for _, candidate := range validPriceModels {
		if candidate == v {
			return true
		}
	}
	return false
}

// ParsePriceModel converts raw input into a PriceModel.
func ParsePriceModel(value string) (PriceModel, error) {
	for _, candidate := range validPriceModels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid price model %q", value)
}

// ShowsRetail reports whether the retail price is meaningful to buyers under this model.
func (v PriceModel) ShowsRetail() bool {
	return v != PriceModelWholesaleOnly
}

// UsesTiers reports whether the model selects prices from quantity tiers.
func (v PriceModel) UsesTiers() bool {
	return v == PriceModelGradualWholesale
}
