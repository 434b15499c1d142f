package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gradeflow/gradeflow-backend/api/middleware"
	"github.com/gradeflow/gradeflow-backend/api/responses"
	"github.com/gradeflow/gradeflow-backend/api/validators"
	"github.com/gradeflow/gradeflow-backend/internal/variations"
	pkgerrors "github.com/gradeflow/gradeflow-backend/pkg/errors"
	"github.com/gradeflow/gradeflow-backend/pkg/logger"
)

type generateVariationsRequest struct {
	GroupIDs []uuid.UUID               `json:"group_ids" validate:"required,dive,required"`
	ValueIDs map[uuid.UUID][]uuid.UUID `json:"value_ids"`
}

type draftResponse struct {
	ID                   uuid.UUID       `json:"id"`
	Key                  string          `json:"key"`
	Color                *string         `json:"color,omitempty"`
	Size                 *string         `json:"size,omitempty"`
	Material             *string         `json:"material,omitempty"`
	CustomAttributeValue *string         `json:"custom_attribute_value,omitempty"`
	SwatchColor          *string         `json:"swatch_color,omitempty"`
	PriceAdjustment      decimal.Decimal `json:"price_adjustment"`
	Stock                int             `json:"stock"`
	IsActive             bool            `json:"is_active"`
	DisplayOrder         int             `json:"display_order"`
}

// GenerateVariations expands the selected attribute values into draft variations.
func GenerateVariations(svc variations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "variations service unavailable"))
			return
		}
		storeID := middleware.StoreIDFromContext(r.Context())

		var payload generateVariationsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		drafts, err := svc.GenerateForStore(r.Context(), storeID, variations.Selection{
			GroupIDs: payload.GroupIDs,
			ValueIDs: payload.ValueIDs,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]draftResponse, 0, len(drafts))
		for _, d := range drafts {
			out = append(out, draftResponse{
				ID:                   d.ID,
				Key:                  d.Key(),
				Color:                d.Color,
				Size:                 d.Size,
				Material:             d.Material,
				CustomAttributeValue: d.CustomAttributeValue,
				SwatchColor:          d.SwatchColor,
				PriceAdjustment:      d.PriceAdjustment,
				Stock:                d.Stock,
				IsActive:             d.IsActive,
				DisplayOrder:         d.DisplayOrder,
			})
		}
		responses.WriteSuccess(w, map[string]any{
			"drafts": out,
			"empty":  len(out) == 0,
		})
	}
}
