package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Variation is a sellable SKU; grade variations also carry their size assortment.
type Variation struct {
	ID                   uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID              uuid.UUID       `gorm:"column:store_id;type:uuid;not null"`
	ProductID            uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	SKU                  *string         `gorm:"column:sku"`
	Color                *string         `gorm:"column:color"`
	Size                 *string         `gorm:"column:size"`
	Material             *string         `gorm:"column:material"`
	CustomAttributeValue *string         `gorm:"column:custom_attribute_value"`
	SwatchColor          *string         `gorm:"column:swatch_color"`
	PriceAdjustment      decimal.Decimal `gorm:"column:price_adjustment;type:numeric(12,2);not null;default:0"`
	Stock                int             `gorm:"column:stock;not null;default:0"`
	IsActive             bool            `gorm:"column:is_active;not null"`
	IsGrade              bool            `gorm:"column:is_grade;not null"`
	GradeName            *string         `gorm:"column:grade_name"`
	GradeColor           *string         `gorm:"column:grade_color"`
	GradeSizes           pq.StringArray  `gorm:"column:grade_sizes;type:text[]"`
	GradePairs           pq.Int64Array   `gorm:"column:grade_pairs;type:bigint[]"`
	DisplayOrder         int             `gorm:"column:display_order;not null;default:0"`
	CreatedAt            time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// GradeQuantity is the total number of pairs in one full grade.
func (v Variation) GradeQuantity() int {
	total := 0
	for _, pairs := range v.GradePairs {
		total += int(pairs)
	}
	return total
}

// CheckGradeShape enforces that every grade size has a matching pair count.
func (v Variation) CheckGradeShape() error {
	if !v.IsGrade {
		return nil
	}
	if len(v.GradeSizes) != len(v.GradePairs) {
		return fmt.Errorf("grade %s has %d sizes but %d pair counts", v.ID, len(v.GradeSizes), len(v.GradePairs))
	}
	for i, pairs := range v.GradePairs {
		if pairs < 0 {
			return fmt.Errorf("grade %s size %q has negative pairs", v.ID, v.GradeSizes[i])
		}
	}
	return nil
}
