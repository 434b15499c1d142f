package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gradeflow/gradeflow-backend/pkg/db/dbtest"
	"github.com/gradeflow/gradeflow-backend/pkg/db/models"
	pkgerrors "github.com/gradeflow/gradeflow-backend/pkg/errors"
)

func seedVariation(t *testing.T, conn *gorm.DB, storeID uuid.UUID, stock int) uuid.UUID {
	t.Helper()
	v := models.Variation{
		ID:         uuid.New(),
		StoreID:    storeID,
		ProductID:  uuid.New(),
		Stock:      stock,
		IsActive:   true,
		IsGrade:    true,
		GradeSizes: pq.StringArray{"38", "39"},
		GradePairs: pq.Int64Array{3, 3},
	}
	require.NoError(t, conn.Create(&v).Error)
	return v.ID
}

func stockOf(t *testing.T, conn *gorm.DB, id uuid.UUID) int {
	t.Helper()
	var v models.Variation
	require.NoError(t, conn.First(&v, "id = ?", id).Error)
	return v.Stock
}

func TestReserve(t *testing.T) {
	t.Parallel()

	conn := dbtest.Open(t)
	ctx := context.Background()
	storeID := uuid.New()
	gradeA := seedVariation(t, conn, storeID, 5)
	gradeB := seedVariation(t, conn, storeID, 1)

	requests := []ReservationRequest{
		{LineID: uuid.New(), StoreID: storeID, VariationID: gradeA, Qty: 3},
		{LineID: uuid.New(), StoreID: storeID, VariationID: gradeA, Qty: 4},
		{LineID: uuid.New(), StoreID: storeID, VariationID: gradeB, Qty: 1},
		{LineID: uuid.New(), StoreID: storeID, VariationID: uuid.New(), Qty: 1},
	}

	var results []ReservationResult
	err := conn.Transaction(func(tx *gorm.DB) error {
		var terr error
		results, terr = Reserve(ctx, tx, requests)
		return terr
	})
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.True(t, results[0].Reserved)
	assert.Empty(t, results[0].Reason)
	assert.False(t, results[1].Reserved)
	assert.Equal(t, ReasonInsufficientStock, results[1].Reason)
	assert.True(t, results[2].Reserved)
	assert.Equal(t, ReasonNotFound, results[3].Reason)
	assert.False(t, AllReserved(results))

	assert.Equal(t, 2, stockOf(t, conn, gradeA))
	assert.Equal(t, 0, stockOf(t, conn, gradeB))

	require.NoError(t, Release(ctx, conn, results, storeID))
	assert.Equal(t, 5, stockOf(t, conn, gradeA))
	assert.Equal(t, 1, stockOf(t, conn, gradeB))
}

func TestReserveScopesByStore(t *testing.T) {
	t.Parallel()

	conn := dbtest.Open(t)
	grade := seedVariation(t, conn, uuid.New(), 5)

	results, err := Reserve(context.Background(), conn, []ReservationRequest{
		{StoreID: uuid.New(), VariationID: grade, Qty: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, ReasonNotFound, results[0].Reason)
	assert.Equal(t, 5, stockOf(t, conn, grade))
}

func TestReserveInvalidQty(t *testing.T) {
	t.Parallel()

	conn := dbtest.Open(t)
	storeID := uuid.New()
	grade := seedVariation(t, conn, storeID, 5)

	_, err := Reserve(context.Background(), conn, []ReservationRequest{{StoreID: storeID, VariationID: grade, Qty: 0}})
	require.Error(t, err)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error: %v", err)
	}
	assert.Equal(t, 5, stockOf(t, conn, grade))
}
