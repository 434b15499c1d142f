package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/gradeflow/gradeflow-backend/api/middleware"
	"github.com/gradeflow/gradeflow-backend/api/responses"
	"github.com/gradeflow/gradeflow-backend/api/validators"
	"github.com/gradeflow/gradeflow-backend/internal/grades"
	"github.com/gradeflow/gradeflow-backend/pkg/enums"
	pkgerrors "github.com/gradeflow/gradeflow-backend/pkg/errors"
	"github.com/gradeflow/gradeflow-backend/pkg/logger"
	"github.com/gradeflow/gradeflow-backend/pkg/types"
)

type selectionItemRequest struct {
	Color     string           `json:"color" validate:"required"`
	Size      string           `json:"size" validate:"required"`
	Quantity  float64          `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

type selectionRequest struct {
	Items []selectionItemRequest `json:"items" validate:"dive"`
}

func (r selectionRequest) toSelection() grades.CustomGradeSelection {
	items := make([]grades.CustomGradeItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, grades.CustomGradeItem{
			Color:     item.Color,
			Size:      item.Size,
			Quantity:  grades.QuantityFromFloat(item.Quantity),
			UnitPrice: item.UnitPrice,
		})
	}
	return grades.CustomGradeSelection{Items: items}
}

type gradeQuoteRequest struct {
	Mode          string                 `json:"mode" validate:"required,oneof=full half custom"`
	OrderQuantity int                    `json:"order_quantity" validate:"omitempty,min=1"`
	Items         []selectionItemRequest `json:"items,omitempty" validate:"dive"`
}

func validationDTO(res grades.ValidationResult) types.ValidationResultDTO {
	out := types.ValidationResultDTO{
		IsValid:  res.IsValid,
		Errors:   make([]types.IssueDTO, 0, len(res.Errors)),
		Warnings: make([]types.IssueDTO, 0, len(res.Warnings)),
	}
	for _, issue := range res.Errors {
		out.Errors = append(out.Errors, types.IssueDTO{Code: issue.Code.String(), Message: issue.Message})
	}
	for _, issue := range res.Warnings {
		out.Warnings = append(out.Warnings, types.IssueDTO{Code: issue.Code.String(), Message: issue.Message})
	}
	return out
}

// GradeConfigValidate checks a configuration document without saving it.
func GradeConfigValidate(svc grades.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "grades service unavailable"))
			return
		}
		raw, err := validators.ReadBody(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		cfg, err := grades.ParseConfig(raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, validationDTO(svc.ValidateConfig(r.Context(), cfg)))
	}
}

// GradeConfigFetch returns the stored configuration of a grade, or the defaults.
func GradeConfigFetch(svc grades.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "grades service unavailable"))
			return
		}
		variationID, err := validators.PathUUID(r, "variationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		cfg, err := svc.GetConfig(r.Context(), middleware.StoreIDFromContext(r.Context()), variationID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cfg)
	}
}

// GradeConfigSave validates and stores a grade configuration.
func GradeConfigSave(svc grades.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "grades service unavailable"))
			return
		}
		variationID, err := validators.PathUUID(r, "variationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		raw, err := validators.ReadBody(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		cfg, err := grades.ParseConfig(raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		res, err := svc.SaveConfig(r.Context(), middleware.StoreIDFromContext(r.Context()), variationID, cfg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"config":     cfg,
			"validation": validationDTO(res),
		})
	}
}

// CustomSelectionValidate checks a custom mix against the grade's configuration.
func CustomSelectionValidate(svc grades.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "grades service unavailable"))
			return
		}
		variationID, err := validators.PathUUID(r, "variationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload selectionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		res, err := svc.ValidateSelection(r.Context(), middleware.StoreIDFromContext(r.Context()), variationID, payload.toSelection())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, validationDTO(res))
	}
}

// GradeQuote prices a full grade, a half grade or a custom mix.
func GradeQuote(svc grades.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "grades service unavailable"))
			return
		}
		variationID, err := validators.PathUUID(r, "variationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var payload gradeQuoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		mode, err := enums.ParseGradeMode(payload.Mode)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid mode"))
			return
		}
		storeID := middleware.StoreIDFromContext(r.Context())

		if mode == enums.GradeModeCustom {
			quote, err := svc.QuoteCustomSelection(r.Context(), grades.QuoteInput{
				StoreID:       storeID,
				VariationID:   variationID,
				Selection:     selectionRequest{Items: payload.Items}.toSelection(),
				OrderQuantity: payload.OrderQuantity,
			})
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, quote)
			return
		}

		quote, err := svc.QuoteGrade(r.Context(), grades.GradeQuoteInput{
			StoreID:       storeID,
			VariationID:   variationID,
			Mode:          mode,
			OrderQuantity: payload.OrderQuantity,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}
