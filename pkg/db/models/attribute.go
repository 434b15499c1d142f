package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/gradeflow/gradeflow-backend/pkg/enums"
)

// AttributeGroup is a store-owned taxonomy such as "Cor" or "Tamanho".
type AttributeGroup struct {
	ID           uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID      uuid.UUID          `gorm:"column:store_id;type:uuid;not null"`
	Name         string             `gorm:"column:name;not null"`
	AttributeKey enums.AttributeKey `gorm:"column:attribute_key;not null"`
	DisplayOrder int                `gorm:"column:display_order;not null;default:0"`
	IsActive     bool               `gorm:"column:is_active;not null"`
	Values       []AttributeValue   `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// AttributeValue is one entry of a group; Value is unique per group and case-sensitive.
type AttributeValue struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	GroupID      uuid.UUID `gorm:"column:group_id;type:uuid;not null"`
	Value        string    `gorm:"column:value;not null"`
	SwatchColor  *string   `gorm:"column:swatch_color"`
	DisplayOrder int       `gorm:"column:display_order;not null;default:0"`
	IsActive     bool      `gorm:"column:is_active;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
