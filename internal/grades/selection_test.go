package grades

import (
	"math"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

func priced(color, size string, qty int, price string) CustomGradeItem {
	p := decimal.RequireFromString(price)
	return CustomGradeItem{Color: color, Size: size, Quantity: qty, UnitPrice: &p}
}

func TestNormalizeCustomSelectionDropsNonPositive(t *testing.T) {
	sel := selectionOf(item("Black", "38", 3), item("Black", "39", 0), item("White", "38", -1), item("White", "39", 2))

	got := NormalizeCustomSelection(sel)
	if len(got.Items) != 2 || got.TotalPairs != 5 {
		t.Fatalf("unexpected normalized selection %+v", got)
	}
	if got.Items[0].Size != "38" || got.Items[1].Color != "White" {
		t.Fatalf("expected order preserved, got %+v", got.Items)
	}
}

func TestNormalizeCustomSelectionIsIdempotent(t *testing.T) {
	sel := selectionOf(item("Black", "38", 3), item("Black", "39", 0), item("White", "39", 2))
	sel.TotalPairs = 99

	once := NormalizeCustomSelection(sel)
	twice := NormalizeCustomSelection(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("expected idempotent normalize:\n%+v\n%+v", once, twice)
	}
}

func TestMergeCustomSelectionItemsSumsByKey(t *testing.T) {
	items := []CustomGradeItem{
		item("Black", "38", 2),
		item("White", "38", 1),
		item("Black", "38", 3),
		item("Black", "39", 1),
	}

	got := MergeCustomSelectionItems(items)
	if len(got) != 3 {
		t.Fatalf("expected 3 merged lines, got %+v", got)
	}
	if got[0].Color != "Black" || got[0].Size != "38" || got[0].Quantity != 5 {
		t.Fatalf("unexpected first line %+v", got[0])
	}
	if got[1].Color != "White" || got[2].Size != "39" {
		t.Fatalf("expected first-seen order, got %+v", got)
	}
	if items[0].Quantity != 2 {
		t.Fatalf("merge must not mutate its input")
	}
}

func TestMergeCustomSelectionItemsIsIdempotent(t *testing.T) {
	items := []CustomGradeItem{
		item("Black", "38", 2),
		priced("Black", "38", 1, "10"),
		priced("White", "39", 4, "12"),
	}

	once := MergeCustomSelectionItems(items)
	twice := MergeCustomSelectionItems(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("expected idempotent merge:\n%+v\n%+v", once, twice)
	}
}

func TestMergeCustomSelectionItemsFirstPriceWins(t *testing.T) {
	items := []CustomGradeItem{
		item("Black", "38", 1),
		priced("Black", "38", 1, "10"),
		priced("Black", "38", 1, "12"),
	}

	got := MergeCustomSelectionItems(items)
	if len(got) != 1 || got[0].UnitPrice == nil || !got[0].UnitPrice.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("expected first non-nil price to win, got %+v", got)
	}

	conflicts := UnitPriceConflicts(items)
	if len(conflicts) != 1 {
		t.Fatalf("expected one conflict, got %+v", conflicts)
	}
	if !conflicts[0].Kept.Equal(decimal.NewFromInt(10)) || len(conflicts[0].Other) != 1 {
		t.Fatalf("unexpected conflict %+v", conflicts[0])
	}
}

func TestUnitPriceConflictsIgnoresAgreeingPrices(t *testing.T) {
	items := []CustomGradeItem{
		priced("Black", "38", 1, "10"),
		priced("Black", "38", 1, "10.00"),
		priced("White", "38", 1, "11"),
	}
	if conflicts := UnitPriceConflicts(items); conflicts != nil {
		t.Fatalf("expected no conflicts, got %+v", conflicts)
	}
}

func TestQuantityFromFloat(t *testing.T) {
	cases := map[float64]int{
		-2:          0,
		0:           0,
		0.4:         1,
		1:           1,
		2.9:         2,
		math.NaN():  0,
		math.Inf(1): math.MaxInt32,
	}
	for in, want := range cases {
		if got := QuantityFromFloat(in); got != want {
			t.Fatalf("QuantityFromFloat(%v) = %d, want %d", in, got, want)
		}
	}
}
