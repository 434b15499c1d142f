package grades

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gradeflow/gradeflow-backend/pkg/db/models"
)

// Repository loads grade variations and persists their selling configuration.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindVariation loads a store's variation.
func (r *Repository) FindVariation(ctx context.Context, storeID, variationID uuid.UUID) (*models.Variation, error) {
	var v models.Variation
	if err := r.db.WithContext(ctx).
		Where("id = ? AND store_id = ?", variationID, storeID).
		First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// FindConfig loads the configuration row of a grade variation.
func (r *Repository) FindConfig(ctx context.Context, storeID, variationID uuid.UUID) (*models.GradeConfig, error) {
	var row models.GradeConfig
	if err := r.db.WithContext(ctx).
		Where("variation_id = ? AND store_id = ?", variationID, storeID).
		First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// UpsertConfig inserts or replaces the configuration row of a grade variation.
func (r *Repository) UpsertConfig(ctx context.Context, row *models.GradeConfig) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "variation_id"}},
			UpdateAll: true,
		}).
		Create(row).Error
}

func configFromModel(row *models.GradeConfig) FlexibleGradeConfig {
	cfg := FlexibleGradeConfig{
		AllowFullGrade:              row.AllowFullGrade,
		AllowHalfGrade:              row.AllowHalfGrade,
		AllowCustomMix:              row.AllowCustomMix,
		HalfGradePercentage:         row.HalfGradePercentage,
		HalfGradeMinPairs:           row.HalfGradeMinPairs,
		HalfGradeDistribution:       row.HalfGradeDistribution,
		HalfGradeCustomSizes:        []string(row.HalfGradeCustomSizes),
		CustomMixMinPairs:           row.CustomMixMinPairs,
		CustomMixMaxColors:          row.CustomMixMaxColors,
		CustomMixAllowAnySize:       row.CustomMixAllowAnySize,
		CustomMixPresetSizes:        []string(row.CustomMixPresetSizes),
		PricingMode:                 row.PricingMode,
		ApplyQuantityTiers:          row.ApplyQuantityTiers,
		TierCalculationMode:         row.TierCalculationMode,
		HalfGradeDiscountPercentage: row.HalfGradeDiscountPercentage,
	}
	if len(row.HalfGradeCustomPairs) > 0 {
		cfg.HalfGradeCustomPairs = make([]int, len(row.HalfGradeCustomPairs))
		for i, pairs := range row.HalfGradeCustomPairs {
			cfg.HalfGradeCustomPairs[i] = int(pairs)
		}
	}
	if row.CustomMixPriceAdjustment.Valid {
		adj := row.CustomMixPriceAdjustment.Decimal
		cfg.CustomMixPriceAdjustment = &adj
	}
	return cfg
}

func modelFromConfig(storeID, variationID uuid.UUID, cfg FlexibleGradeConfig) *models.GradeConfig {
	row := &models.GradeConfig{
		VariationID:                 variationID,
		StoreID:                     storeID,
		AllowFullGrade:              cfg.AllowFullGrade,
		AllowHalfGrade:              cfg.AllowHalfGrade,
		AllowCustomMix:              cfg.AllowCustomMix,
		HalfGradePercentage:         cfg.HalfGradePercentage,
		HalfGradeMinPairs:           cfg.HalfGradeMinPairs,
		HalfGradeDistribution:       cfg.HalfGradeDistribution,
		HalfGradeCustomSizes:        pq.StringArray(cfg.HalfGradeCustomSizes),
		CustomMixMinPairs:           cfg.CustomMixMinPairs,
		CustomMixMaxColors:          cfg.CustomMixMaxColors,
		CustomMixAllowAnySize:       cfg.CustomMixAllowAnySize,
		CustomMixPresetSizes:        pq.StringArray(cfg.CustomMixPresetSizes),
		PricingMode:                 cfg.PricingMode,
		ApplyQuantityTiers:          cfg.ApplyQuantityTiers,
		TierCalculationMode:         cfg.TierCalculationMode,
		HalfGradeDiscountPercentage: cfg.HalfGradeDiscountPercentage,
	}
	if len(cfg.HalfGradeCustomPairs) > 0 {
		row.HalfGradeCustomPairs = make(pq.Int64Array, len(cfg.HalfGradeCustomPairs))
		for i, pairs := range cfg.HalfGradeCustomPairs {
			row.HalfGradeCustomPairs[i] = int64(pairs)
		}
	}
	if cfg.CustomMixPriceAdjustment != nil {
		row.CustomMixPriceAdjustment = decimal.NewNullDecimal(*cfg.CustomMixPriceAdjustment)
	}
	return row
}
