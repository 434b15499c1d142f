package grades

import (
	"fmt"
	"math"

	"github.com/gradeflow/gradeflow-backend/pkg/db/models"
	"github.com/gradeflow/gradeflow-backend/pkg/enums"
	pkgerrors "github.com/gradeflow/gradeflow-backend/pkg/errors"
)

// InsufficientItem is a custom mix line that could not be served from the stock snapshot.
type InsufficientItem struct {
	Color     string `json:"color"`
	Size      string `json:"size"`
	Requested int    `json:"requested"`
}

// StockValidationResult compares a stock snapshot with the pairs a purchase needs.
type StockValidationResult struct {
	ValidationResult
	AvailableStock    int                `json:"available_stock"`
	RequestedStock    int                `json:"requested_stock"`
	InsufficientItems []InsufficientItem `json:"insufficient_items,omitempty"`
}

// ValidateStock checks the variation's stock snapshot against the requested purchase. It does
// not lock or re-read stock; reservation happens at order commit. The error return is reserved
// for calls that cannot be evaluated at all.
func ValidateStock(mode enums.GradeMode, v models.Variation, cfg *FlexibleGradeConfig, sel *CustomGradeSelection) (StockValidationResult, error) {
	var requested int
	switch mode {
	case enums.GradeModeFull:
		requested = v.GradeQuantity()
	case enums.GradeModeHalf:
		if cfg == nil {
			return StockValidationResult{}, pkgerrors.New(pkgerrors.CodeValidation, "half grade stock check requires a grade config")
		}
		requested = HalfGradePairs(v.GradeQuantity(), cfg.HalfGradePercentage)
	case enums.GradeModeCustom:
		if sel == nil {
			return StockValidationResult{}, pkgerrors.New(pkgerrors.CodeValidation, "custom stock check requires a selection")
		}
		requested = sel.TotalPairs
		if requested == 0 {
			for _, item := range sel.Items {
				if item.Quantity > 0 {
					requested += item.Quantity
				}
			}
		}
	default:
		return StockValidationResult{}, pkgerrors.Newf(pkgerrors.CodeValidation, "unknown grade mode %q", mode)
	}

	res := evaluateStock(v.Stock, requested)
	if !res.IsValid && mode == enums.GradeModeCustom {
		for _, item := range sel.Items {
			res.InsufficientItems = append(res.InsufficientItems, InsufficientItem{
				Color:     item.Color,
				Size:      item.Size,
				Requested: item.Quantity,
			})
		}
	}
	return res, nil
}

func evaluateStock(available, requested int) StockValidationResult {
	res := StockValidationResult{
		ValidationResult: newValidationResult(),
		AvailableStock:   available,
		RequestedStock:   requested,
	}
	if available < requested {
		res.addError(enums.IssueInsufficientStock,
			fmt.Sprintf("Estoque insuficiente. Disponível: %d, Necessário: %d", available, requested))
	} else if available < requested*2 {
		res.addWarning(enums.IssueLowStock,
			fmt.Sprintf("Estoque baixo. Disponível: %d, Necessário: %d", available, requested))
	}
	res.ValidationResult = res.finish()
	return res
}

// HalfGradePairs is the pair count of a half grade: round(gradeQuantity * pct / 100).
func HalfGradePairs(gradeQuantity, pct int) int {
	return int(math.Round(float64(gradeQuantity) * float64(pct) / 100))
}
