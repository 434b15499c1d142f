package grades

import (
	"math"

	"github.com/shopspring/decimal"
)

// NormalizeCustomSelection drops non-positive lines and recomputes TotalPairs.
// Applying it to its own output returns the same selection.
func NormalizeCustomSelection(sel CustomGradeSelection) CustomGradeSelection {
	items := make([]CustomGradeItem, 0, len(sel.Items))
	total := 0
	for _, item := range sel.Items {
		if item.Quantity <= 0 {
			continue
		}
		items = append(items, item)
		total += item.Quantity
	}
	sel.Items = items
	sel.TotalPairs = total
	return sel
}

// QuantityFromFloat floors a transport quantity. Positive fractions below one become one.
func QuantityFromFloat(q float64) int {
	if math.IsNaN(q) || q <= 0 {
		return 0
	}
	if math.IsInf(q, 1) || q >= math.MaxInt32 {
		return math.MaxInt32
	}
	n := int(math.Floor(q))
	if n < 1 {
		return 1
	}
	return n
}

type itemKey struct {
	color string
	size  string
}

// MergeCustomSelectionItems sums quantities of lines sharing a color and size, keeping the
// first-seen order. The first non-nil UnitPrice of a key wins.
func MergeCustomSelectionItems(items []CustomGradeItem) []CustomGradeItem {
	out := make([]CustomGradeItem, 0, len(items))
	index := make(map[itemKey]int, len(items))
	for _, item := range items {
		key := itemKey{color: item.Color, size: item.Size}
		pos, ok := index[key]
		if !ok {
			index[key] = len(out)
			out = append(out, item)
			continue
		}
		out[pos].Quantity += item.Quantity
		if out[pos].UnitPrice == nil && item.UnitPrice != nil {
			out[pos].UnitPrice = item.UnitPrice
		}
	}
	return out
}

// PriceConflict names a color and size whose lines carried different unit prices.
type PriceConflict struct {
	Color string            `json:"color"`
	Size  string            `json:"size"`
	Kept  decimal.Decimal   `json:"kept"`
	Other []decimal.Decimal `json:"dropped"`
}

// UnitPriceConflicts lists the keys MergeCustomSelectionItems would resolve by dropping prices.
func UnitPriceConflicts(items []CustomGradeItem) []PriceConflict {
	var out []PriceConflict
	index := make(map[itemKey]int)
	for _, item := range items {
		if item.UnitPrice == nil {
			continue
		}
		key := itemKey{color: item.Color, size: item.Size}
		pos, ok := index[key]
		if !ok {
			index[key] = len(out)
			out = append(out, PriceConflict{Color: item.Color, Size: item.Size, Kept: *item.UnitPrice})
			continue
		}
		if !out[pos].Kept.Equal(*item.UnitPrice) {
			out[pos].Other = append(out[pos].Other, *item.UnitPrice)
		}
	}

	conflicts := out[:0]
	for _, c := range out {
		if len(c.Other) > 0 {
			conflicts = append(conflicts, c)
		}
	}
	if len(conflicts) == 0 {
		return nil
	}
	return conflicts
}
