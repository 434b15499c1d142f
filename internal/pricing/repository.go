package pricing

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gradeflow/gradeflow-backend/pkg/db/models"
)

// Repository persists product pricing settings and their tier slots.
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

// FindByProduct loads the pricing row of a store's product with its tiers ordered by slot.
func (r *Repository) FindByProduct(ctx context.Context, storeID, productID uuid.UUID) (*models.ProductPricing, error) {
	var row models.ProductPricing
	if err := r.db.WithContext(ctx).
		Preload("Tiers", func(db *gorm.DB) *gorm.DB {
			return db.Order("slot_index ASC")
		}).
		Where("product_id = ? AND store_id = ?", productID, storeID).
		First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Upsert writes the pricing row and replaces all of its tiers in one transaction.
func (r *Repository) Upsert(ctx context.Context, row *models.ProductPricing) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "product_id"}},
				UpdateAll: true,
			}).
			Create(row).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", row.ProductID).Delete(&models.PriceTier{}).Error; err != nil {
			return err
		}
		if len(row.Tiers) == 0 {
			return nil
		}
		for i := range row.Tiers {
			row.Tiers[i].ProductID = row.ProductID
			if row.Tiers[i].ID == uuid.Nil {
				row.Tiers[i].ID = uuid.New()
			}
		}
		return tx.Create(&row.Tiers).Error
	})
}

func settingsFromModel(row *models.ProductPricing) Settings {
	s := Settings{
		PriceModel:        row.PriceModel,
		BasePrice:         row.BasePrice,
		WholesalePrice:    row.WholesalePrice,
		MinWholesaleQty:   row.MinWholesaleQty,
		UseBootstrapTiers: row.UseBootstrapTiers,
	}
	for _, tier := range row.Tiers {
		if tier.SlotIndex < 0 || tier.SlotIndex >= MaxTiers {
			continue
		}
		s.Tiers[tier.SlotIndex] = PriceTier{
			ID:          tier.ID,
			Index:       tier.SlotIndex + 1,
			Name:        tier.Name,
			MinQuantity: tier.MinQuantity,
			Price:       tier.Price,
			Enabled:     tier.Enabled,
		}
	}
	return s
}

func modelFromSettings(storeID, productID uuid.UUID, s Settings) *models.ProductPricing {
	row := &models.ProductPricing{
		ProductID:         productID,
		StoreID:           storeID,
		PriceModel:        s.PriceModel,
		BasePrice:         s.BasePrice,
		WholesalePrice:    s.WholesalePrice,
		MinWholesaleQty:   s.MinWholesaleQty,
		UseBootstrapTiers: s.UseBootstrapTiers,
	}
	for slot, tier := range s.Tiers {
		if tier.MinQuantity < 1 {
			continue
		}
		row.Tiers = append(row.Tiers, models.PriceTier{
			ID:          tier.ID,
			ProductID:   productID,
			SlotIndex:   slot,
			Name:        tier.Name,
			MinQuantity: tier.MinQuantity,
			Price:       tier.Price,
			Enabled:     tier.Enabled,
		})
	}
	return row
}
