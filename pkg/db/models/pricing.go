package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gradeflow/gradeflow-backend/pkg/enums"
)

// ProductPricing stores the active price model of a product.
type ProductPricing struct {
	ProductID         uuid.UUID        `gorm:"column:product_id;type:uuid;primaryKey"`
	StoreID           uuid.UUID        `gorm:"column:store_id;type:uuid;not null"`
	PriceModel        enums.PriceModel `gorm:"column:price_model;not null;default:retail_only"`
	BasePrice         decimal.Decimal  `gorm:"column:base_price;type:numeric(12,2);not null"`
	WholesalePrice    decimal.Decimal  `gorm:"column:wholesale_price;type:numeric(12,2);not null"`
	MinWholesaleQty   int              `gorm:"column:min_wholesale_qty;not null"`
	UseBootstrapTiers bool             `gorm:"column:use_bootstrap_tiers;not null"`
	Tiers             []PriceTier      `gorm:"foreignKey:ProductID;references:ProductID;constraint:OnDelete:CASCADE"`
	UpdatedAt         time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// PriceTier is one of the four gradual wholesale slots of a product.
type PriceTier struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID   uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	SlotIndex   int             `gorm:"column:slot_index;not null"`
	Name        string          `gorm:"column:name;not null"`
	MinQuantity int             `gorm:"column:min_quantity;not null"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	Enabled     bool            `gorm:"column:enabled;not null"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (ProductPricing) TableName() string {
	return "product_pricing"
}
