package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/gradeflow/gradeflow-backend/api/middleware"
	"github.com/gradeflow/gradeflow-backend/api/responses"
	"github.com/gradeflow/gradeflow-backend/api/validators"
	"github.com/gradeflow/gradeflow-backend/internal/pricing"
	"github.com/gradeflow/gradeflow-backend/pkg/enums"
	pkgerrors "github.com/gradeflow/gradeflow-backend/pkg/errors"
	"github.com/gradeflow/gradeflow-backend/pkg/logger"
)

type priceQuoteRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

type priceTierRequest struct {
	Name        string          `json:"name" validate:"max=64"`
	MinQuantity int             `json:"min_quantity" validate:"required,min=1"`
	Price       decimal.Decimal `json:"price"`
	Enabled     *bool           `json:"enabled,omitempty"`
}

type pricingSettingsRequest struct {
	PriceModel        string             `json:"price_model" validate:"required,oneof=retail_only simple_wholesale gradual_wholesale wholesale_only"`
	BasePrice         decimal.Decimal    `json:"base_price"`
	WholesalePrice    decimal.Decimal    `json:"wholesale_price"`
	MinWholesaleQty   int                `json:"min_wholesale_qty" validate:"omitempty,min=1"`
	Tiers             []priceTierRequest `json:"tiers" validate:"max=4,dive"`
	UseBootstrapTiers *bool              `json:"use_bootstrap_tiers,omitempty"`
}

func (r pricingSettingsRequest) toSettings() (pricing.Settings, error) {
	model, err := enums.ParsePriceModel(r.PriceModel)
	if err != nil {
		return pricing.Settings{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price model")
	}
	settings := pricing.Settings{
		PriceModel:        model,
		BasePrice:         r.BasePrice,
		WholesalePrice:    r.WholesalePrice,
		MinWholesaleQty:   r.MinWholesaleQty,
		UseBootstrapTiers: r.UseBootstrapTiers == nil || *r.UseBootstrapTiers,
	}
	if settings.MinWholesaleQty == 0 {
		settings.MinWholesaleQty = 1
	}
	tiers := make([]pricing.PriceTier, 0, len(r.Tiers))
	for _, t := range r.Tiers {
		tiers = append(tiers, pricing.PriceTier{
			Name:        t.Name,
			MinQuantity: t.MinQuantity,
			Price:       t.Price,
			Enabled:     t.Enabled == nil || *t.Enabled,
		})
	}
	settings.SetTiers(tiers)
	return settings, nil
}

// ProductPricingFetch returns a product's pricing settings.
func ProductPricingFetch(svc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}
		productID, err := validators.PathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		settings, err := svc.Settings(r.Context(), middleware.StoreIDFromContext(r.Context()), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, settings)
	}
}

// ProductPricingSave replaces a product's pricing settings.
func ProductPricingSave(svc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}
		productID, err := validators.PathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload pricingSettingsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		settings, err := payload.toSettings()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.SaveSettings(r.Context(), middleware.StoreIDFromContext(r.Context()), productID, settings); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, settings)
	}
}

// ProductPriceQuote prices a quantity of a product.
func ProductPriceQuote(svc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}
		productID, err := validators.PathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload priceQuoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quote, err := svc.Quote(r.Context(), middleware.StoreIDFromContext(r.Context()), productID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}
