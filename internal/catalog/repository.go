package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gradeflow/gradeflow-backend/pkg/db/models"
)

// Reader exposes the store-scoped attribute catalog. The engine never writes through it.
type Reader interface {
	ListGroups(ctx context.Context, storeID uuid.UUID) ([]models.AttributeGroup, error)
	ListValues(ctx context.Context, storeID uuid.UUID) ([]models.AttributeValue, error)
}

// Repository reads attribute groups and values with gorm.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListGroups returns the store's groups ordered by display order.
func (r *Repository) ListGroups(ctx context.Context, storeID uuid.UUID) ([]models.AttributeGroup, error) {
	var groups []models.AttributeGroup
	if err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("display_order ASC").
		Order("name ASC").
		Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// ListValues returns every value belonging to the store's groups, ordered within each group.
func (r *Repository) ListValues(ctx context.Context, storeID uuid.UUID) ([]models.AttributeValue, error) {
	var values []models.AttributeValue
	if err := r.db.WithContext(ctx).
		Joins("JOIN attribute_groups g ON g.id = attribute_values.group_id").
		Where("g.store_id = ?", storeID).
		Order("attribute_values.group_id ASC").
		Order("attribute_values.display_order ASC").
		Order("attribute_values.value ASC").
		Find(&values).Error; err != nil {
		return nil, err
	}
	return values, nil
}
