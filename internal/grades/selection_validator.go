package grades

import (
	"fmt"
	"strings"

	"github.com/gradeflow/gradeflow-backend/pkg/enums"
)

const (
	smallOrderPairs      = 6
	manySingleUnitsLimit = 5
)

// ValidateCustomSelection checks a buyer's custom mix against the grade configuration and,
// when availableSizes is non-nil, against the sizes defined on the grade.
func ValidateCustomSelection(sel CustomGradeSelection, cfg FlexibleGradeConfig, availableSizes []string) ValidationResult {
	res := newValidationResult()

	if len(sel.Items) == 0 {
		res.addError(enums.IssueEmptySelection, "Selecione ao menos um item para o mix personalizado")
		return res.finish()
	}

	totalPairs := 0
	singleUnits := 0
	nonPositive := false
	colors := make(map[string]struct{}, len(sel.Items))
	for _, item := range sel.Items {
		totalPairs += item.Quantity
		colors[item.Color] = struct{}{}
		if item.Quantity <= 0 {
			nonPositive = true
		}
		if item.Quantity == 1 {
			singleUnits++
		}
	}

	if totalPairs < cfg.CustomMixMinPairs {
		res.addError(enums.IssueBelowMinimumPairs,
			fmt.Sprintf("Mínimo de %d pares necessário. Você selecionou %d", cfg.CustomMixMinPairs, totalPairs))
	}
	if len(colors) > cfg.CustomMixMaxColors {
		res.addError(enums.IssueTooManyColors,
			fmt.Sprintf("Máximo de %d cores permitido. Você selecionou %d cores", cfg.CustomMixMaxColors, len(colors)))
	}

	if !cfg.CustomMixAllowAnySize && len(cfg.CustomMixPresetSizes) > 0 {
		if offending := sizesOutside(sel.Items, cfg.CustomMixPresetSizes); len(offending) > 0 {
			res.addError(enums.IssueSizeNotPreset,
				fmt.Sprintf("Tamanhos não permitidos no mix personalizado: %s", strings.Join(offending, ", ")))
		}
	}
	if availableSizes != nil {
		if offending := sizesOutside(sel.Items, availableSizes); len(offending) > 0 {
			res.addError(enums.IssueSizeUnavailable,
				fmt.Sprintf("Tamanhos indisponíveis nesta grade: %s", strings.Join(offending, ", ")))
		}
	}

	if nonPositive {
		res.addError(enums.IssueNonPositiveQuantity, "Todos os itens devem ter quantidade maior que zero")
	}

	if totalPairs < smallOrderPairs {
		res.addWarning(enums.IssueSmallOrder,
			fmt.Sprintf("Pedidos com menos de %d pares podem ter custo unitário maior", smallOrderPairs))
	}
	if len(colors) == 1 && cfg.AllowFullGrade {
		res.addWarning(enums.IssueSingleColor,
			"Todos os itens são da mesma cor. Considere comprar a grade completa")
	}
	if singleUnits > manySingleUnitsLimit {
		res.addWarning(enums.IssueManySingleUnits,
			fmt.Sprintf("%d itens com apenas 1 par podem aumentar o custo de separação e envio", singleUnits))
	}

	return res.finish()
}

// sizesOutside returns the distinct item sizes missing from allowed, in first-seen order.
func sizesOutside(items []CustomGradeItem, allowed []string) []string {
	set := make(map[string]struct{}, len(allowed))
	for _, size := range allowed {
		set[size] = struct{}{}
	}
	seen := make(map[string]struct{})
	var out []string
	for _, item := range items {
		if _, ok := set[item.Size]; ok {
			continue
		}
		if _, dup := seen[item.Size]; dup {
			continue
		}
		seen[item.Size] = struct{}{}
		out = append(out, item.Size)
	}
	return out
}
