// Package inventory decrements variation stock when an order is committed. Reserve is the
// commit-time entry point for the order placement flow, which re-validates the quote first;
// the quoting services never call it.
package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gradeflow/gradeflow-backend/pkg/db/models"
	pkgerrors "github.com/gradeflow/gradeflow-backend/pkg/errors"
)

// Reasons reported for reservations that could not be applied.
const (
	ReasonInsufficientStock = "insufficient_stock"
	ReasonNotFound          = "variation_not_found"
)

// ReservationRequest asks for Qty pairs of a store's variation.
type ReservationRequest struct {
	LineID      uuid.UUID
	StoreID     uuid.UUID
	VariationID uuid.UUID
	Qty         int
}

// ReservationResult reports whether a request was applied.
type ReservationResult struct {
	LineID      uuid.UUID `json:"line_id"`
	VariationID uuid.UUID `json:"variation_id"`
	Qty         int       `json:"qty"`
	Reserved    bool      `json:"reserved"`
	Reason      string    `json:"reason,omitempty"`
}

// Reserve applies every request with a guarded decrement so concurrent orders never drive
// stock below zero. Requests are applied in order; a failed request does not roll back
// earlier ones, the caller decides by inspecting the results and its transaction.
func Reserve(ctx context.Context, tx *gorm.DB, requests []ReservationRequest) ([]ReservationResult, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction required")
	}
	for i, req := range requests {
		if req.Qty <= 0 {
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "reservation %d: qty must be positive", i).
				WithDetails(map[string]any{"variation_id": req.VariationID.String(), "qty": req.Qty})
		}
		if req.VariationID == uuid.Nil || req.StoreID == uuid.Nil {
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "reservation %d: store and variation ids are required", i)
		}
	}

	results := make([]ReservationResult, 0, len(requests))
	for _, req := range requests {
		result := ReservationResult{LineID: req.LineID, VariationID: req.VariationID, Qty: req.Qty}

		res := tx.WithContext(ctx).
			Model(&models.Variation{}).
			Where("id = ? AND store_id = ? AND stock >= ?", req.VariationID, req.StoreID, req.Qty).
			Update("stock", gorm.Expr("stock - ?", req.Qty))
		if res.Error != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "reserve variation stock")
		}

		if res.RowsAffected == 1 {
			result.Reserved = true
		} else {
			reason, err := missReason(ctx, tx, req)
			if err != nil {
				return nil, err
			}
			result.Reason = reason
		}
		results = append(results, result)
	}
	return results, nil
}

// Release returns previously reserved pairs to stock.
func Release(ctx context.Context, tx *gorm.DB, results []ReservationResult, storeID uuid.UUID) error {
	for _, r := range results {
		if !r.Reserved {
			continue
		}
		if err := tx.WithContext(ctx).
			Model(&models.Variation{}).
			Where("id = ? AND store_id = ?", r.VariationID, storeID).
			Update("stock", gorm.Expr("stock + ?", r.Qty)).Error; err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "release variation stock")
		}
	}
	return nil
}

// AllReserved reports whether every result was applied.
func AllReserved(results []ReservationResult) bool {
	for _, r := range results {
		if !r.Reserved {
			return false
		}
	}
	return true
}

func missReason(ctx context.Context, tx *gorm.DB, req ReservationRequest) (string, error) {
	var count int64
	if err := tx.WithContext(ctx).
		Model(&models.Variation{}).
		Where("id = ? AND store_id = ?", req.VariationID, req.StoreID).
		Count(&count).Error; err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check variation")
	}
	if count == 0 {
		return ReasonNotFound, nil
	}
	return ReasonInsufficientStock, nil
}
