package grades

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/gradeflow/gradeflow-backend/pkg/enums"
)

const (
	halfGradeMinPercentage = 25
	halfGradeMaxPercentage = 75
	customMixMaxColorsCap  = 10
	customMixHighMinimum   = 100
	halfGradeHighDiscount  = 50.0
)

var customMixLargeAdjustment = decimal.NewFromInt(1000)

// ValidateConfig checks a grade configuration. Every rule runs on every call so the author
// sees all problems at once.
func ValidateConfig(cfg FlexibleGradeConfig) ValidationResult {
	res := newValidationResult()

	if !cfg.AllowFullGrade && !cfg.AllowHalfGrade && !cfg.AllowCustomMix {
		res.addError(enums.IssueNoSellingMode,
			"Habilite ao menos um modo de venda: grade completa, meia grade ou mix personalizado")
	}

	if cfg.AllowHalfGrade {
		validateHalfGrade(cfg, &res)
	}

	if cfg.AllowCustomMix {
		if cfg.CustomMixMinPairs < 1 {
			res.addError(enums.IssueCustomMixMinPairs,
				fmt.Sprintf("Mínimo de pares do mix personalizado deve ser pelo menos 1 (atual: %d)", cfg.CustomMixMinPairs))
		} else if cfg.CustomMixMinPairs > customMixHighMinimum {
			res.addWarning(enums.IssueCustomMixHighMinimum,
				fmt.Sprintf("Mínimo de %d pares no mix personalizado pode afastar compradores", cfg.CustomMixMinPairs))
		}
		if cfg.CustomMixMaxColors < 1 || cfg.CustomMixMaxColors > customMixMaxColorsCap {
			res.addError(enums.IssueCustomMixMaxColors,
				fmt.Sprintf("Máximo de cores do mix personalizado deve estar entre 1 e %d (atual: %d)",
					customMixMaxColorsCap, cfg.CustomMixMaxColors))
		}
		if adj := cfg.CustomMixPriceAdjustment; adj != nil && adj.Abs().GreaterThan(customMixLargeAdjustment) {
			res.addWarning(enums.IssueCustomMixAdjustmentLarge,
				fmt.Sprintf("Ajuste de preço do mix personalizado (%s) parece alto; confira a unidade", adj.StringFixed(2)))
		}
	}

	if !cfg.PricingMode.IsValid() {
		res.addError(enums.IssuePricingMode, fmt.Sprintf("Modo de precificação inválido: %q", cfg.PricingMode))
	} else if cfg.PricingMode == enums.GradePricingModeTierBased && !cfg.ApplyQuantityTiers {
		res.addWarning(enums.IssueTierBasedWithoutTiers,
			"Precificação por faixas sem aplicar faixas de quantidade usará o preço base")
	}

	if !cfg.TierCalculationMode.IsValid() {
		res.addError(enums.IssueTierCalculationMode,
			fmt.Sprintf("Modo de cálculo de faixas inválido: %q", cfg.TierCalculationMode))
	} else if cfg.TierCalculationMode == enums.TierCalculationModePerGrade && cfg.ApplyQuantityTiers {
		res.addWarning(enums.IssuePerGradeTiers,
			"Cálculo de faixas por grade costuma resultar em descontos menores que por pedido")
	}

	if pct := cfg.HalfGradeDiscountPercentage; pct != nil {
		switch {
		case *pct < 0 || *pct > 100:
			res.addError(enums.IssueHalfGradeDiscountRange,
				fmt.Sprintf("Desconto da meia grade deve estar entre 0%% e 100%% (atual: %s%%)", formatPercent(*pct)))
		case *pct > halfGradeHighDiscount:
			res.addWarning(enums.IssueHalfGradeDiscountHigh,
				fmt.Sprintf("Desconto de %s%% na meia grade pode comprometer a margem", formatPercent(*pct)))
		}
	}

	return res.finish()
}

func validateHalfGrade(cfg FlexibleGradeConfig, res *ValidationResult) {
	if cfg.HalfGradePercentage < halfGradeMinPercentage || cfg.HalfGradePercentage > halfGradeMaxPercentage {
		res.addError(enums.IssueHalfGradePercentage,
			fmt.Sprintf("Percentual da meia grade deve estar entre %d%% e %d%% (atual: %d%%)",
				halfGradeMinPercentage, halfGradeMaxPercentage, cfg.HalfGradePercentage))
	}
	if cfg.HalfGradeMinPairs < 1 {
		res.addError(enums.IssueHalfGradeMinPairs,
			fmt.Sprintf("Mínimo de pares da meia grade deve ser pelo menos 1 (atual: %d)", cfg.HalfGradeMinPairs))
	}

	switch cfg.HalfGradeDistribution {
	case enums.HalfGradeDistributionAuto:
	case enums.HalfGradeDistributionCustom:
		if len(cfg.HalfGradeCustomSizes) == 0 {
			res.addError(enums.IssueHalfGradeCustomSizes,
				"Distribuição personalizada da meia grade exige ao menos um tamanho")
		}
		sizes, pairs := len(cfg.HalfGradeCustomSizes), len(cfg.HalfGradeCustomPairs)
		if sizes > 0 && pairs > 0 && sizes != pairs {
			res.addError(enums.IssueHalfGradeCustomMismatch,
				fmt.Sprintf("Tamanhos (%d) e quantidades (%d) da meia grade personalizada não correspondem",
					sizes, pairs))
		}
	default:
		res.addError(enums.IssueHalfGradeDistribution,
			fmt.Sprintf("Distribuição da meia grade inválida: %q", cfg.HalfGradeDistribution))
	}
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
