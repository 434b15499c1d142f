package variations

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gradeflow/gradeflow-backend/pkg/db/models"
	"github.com/gradeflow/gradeflow-backend/pkg/enums"
	pkgerrors "github.com/gradeflow/gradeflow-backend/pkg/errors"
)

// repeatedKeySeparator joins values when two selected groups route into the same field.
const repeatedKeySeparator = " / "

// Selection picks groups (outermost first) and, per group, the values to combine.
type Selection struct {
	GroupIDs []uuid.UUID
	ValueIDs map[uuid.UUID][]uuid.UUID
}

// Draft is an unsaved variation produced by the generator. ID is a placeholder.
type Draft struct {
	ID                   uuid.UUID
	Color                *string
	Size                 *string
	Material             *string
	CustomAttributeValue *string
	SwatchColor          *string
	PriceAdjustment      decimal.Decimal
	Stock                int
	IsActive             bool
	DisplayOrder         int
}

// Key identifies the draft by its attribute tuple.
func (d Draft) Key() string {
	return attributeKey(d.Color, d.Size, d.Material, d.CustomAttributeValue)
}

// ToVariation converts the draft into a persistable row for the given product.
func (d Draft) ToVariation(storeID, productID uuid.UUID) models.Variation {
	return models.Variation{
		ID:                   d.ID,
		StoreID:              storeID,
		ProductID:            productID,
		Color:                d.Color,
		Size:                 d.Size,
		Material:             d.Material,
		CustomAttributeValue: d.CustomAttributeValue,
		SwatchColor:          d.SwatchColor,
		PriceAdjustment:      d.PriceAdjustment,
		Stock:                d.Stock,
		IsActive:             d.IsActive,
		DisplayOrder:         d.DisplayOrder,
	}
}

// Generate expands the selection into the Cartesian product of the selected values.
// The first selected group is outermost; the last one varies fastest.
func Generate(groups []models.AttributeGroup, values []models.AttributeValue, sel Selection) ([]Draft, error) {
	columns, err := resolveSelection(groups, values, sel)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return []Draft{}, nil
	}
	for _, col := range columns {
		if len(col.values) == 0 {
			return []Draft{}, nil
		}
	}

	var combos [][]models.AttributeValue
	if len(columns) == 1 {
		combos = make([][]models.AttributeValue, 0, len(columns[0].values))
		for _, v := range columns[0].values {
			combos = append(combos, []models.AttributeValue{v})
		}
	} else {
		combos = cartesian(columns)
	}

	drafts := make([]Draft, 0, len(combos))
	for position, combo := range combos {
		draft := Draft{
			ID:              uuid.New(),
			PriceAdjustment: decimal.Zero,
			Stock:           0,
			IsActive:        true,
			DisplayOrder:    position,
		}
		for i, value := range combo {
			routeValue(&draft, columns[i].group.AttributeKey, value)
		}
		drafts = append(drafts, draft)
	}
	return drafts, nil
}

type column struct {
	group  models.AttributeGroup
	values []models.AttributeValue
}

func cartesian(columns []column) [][]models.AttributeValue {
	acc := [][]models.AttributeValue{{}}
	for _, col := range columns {
		next := make([][]models.AttributeValue, 0, len(acc)*len(col.values))
		for _, partial := range acc {
			for _, v := range col.values {
				combo := make([]models.AttributeValue, len(partial), len(partial)+1)
				copy(combo, partial)
				next = append(next, append(combo, v))
			}
		}
		acc = next
	}
	return acc
}

func resolveSelection(groups []models.AttributeGroup, values []models.AttributeValue, sel Selection) ([]column, error) {
	groupByID := make(map[uuid.UUID]models.AttributeGroup, len(groups))
	for _, g := range groups {
		groupByID[g.ID] = g
	}
	valueByID := make(map[uuid.UUID]models.AttributeValue, len(values))
	for _, v := range values {
		valueByID[v.ID] = v
	}

	columns := make([]column, 0, len(sel.GroupIDs))
	seenGroups := make(map[uuid.UUID]struct{}, len(sel.GroupIDs))
	for _, groupID := range sel.GroupIDs {
		group, ok := groupByID[groupID]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown attribute group").
				WithDetails(map[string]any{"group_id": groupID.String()})
		}
		if _, dup := seenGroups[groupID]; dup {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "attribute group selected twice").
				WithDetails(map[string]any{"group_id": groupID.String()})
		}
		seenGroups[groupID] = struct{}{}

		valueIDs := sel.ValueIDs[groupID]
		col := column{group: group, values: make([]models.AttributeValue, 0, len(valueIDs))}
		seenValues := make(map[uuid.UUID]struct{}, len(valueIDs))
		for _, valueID := range valueIDs {
			value, ok := valueByID[valueID]
			if !ok || value.GroupID != groupID {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "attribute value does not belong to group").
					WithDetails(map[string]any{"group_id": groupID.String(), "value_id": valueID.String()})
			}
			if _, dup := seenValues[valueID]; dup {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "attribute value selected twice").
					WithDetails(map[string]any{"group_id": groupID.String(), "value_id": valueID.String()})
			}
			seenValues[valueID] = struct{}{}
			col.values = append(col.values, value)
		}
		columns = append(columns, col)
	}

	for groupID := range sel.ValueIDs {
		if _, ok := seenGroups[groupID]; !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "values selected for a group that is not selected").
				WithDetails(map[string]any{"group_id": groupID.String()})
		}
	}
	return columns, nil
}

func routeValue(d *Draft, key enums.AttributeKey, value models.AttributeValue) {
	switch key {
	case enums.AttributeKeyColor:
		d.Color = appendValue(d.Color, value.Value)
		if value.SwatchColor != nil && *value.SwatchColor != "" && d.SwatchColor == nil {
			swatch := *value.SwatchColor
			d.SwatchColor = &swatch
		}
	case enums.AttributeKeySize:
		d.Size = appendValue(d.Size, value.Value)
	case enums.AttributeKeyMaterial:
		d.Material = appendValue(d.Material, value.Value)
	default:
		d.CustomAttributeValue = appendValue(d.CustomAttributeValue, value.Value)
	}
}

func appendValue(current *string, value string) *string {
	if current == nil {
		v := value
		return &v
	}
	joined := *current + repeatedKeySeparator + value
	return &joined
}

func attributeKey(color, size, material, custom *string) string {
	parts := make([]string, 0, 4)
	for _, p := range []struct {
		name  string
		value *string
	}{
		{"color", color},
		{"size", size},
		{"material", material},
		{"custom", custom},
	} {
		if p.value == nil {
			continue
		}
		// quoted so separators inside values cannot collide with another tuple
		parts = append(parts, fmt.Sprintf("%s=%q", p.name, *p.value))
	}
	return strings.Join(parts, "|")
}
