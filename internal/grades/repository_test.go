package grades

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gradeflow/gradeflow-backend/pkg/db"
	"github.com/gradeflow/gradeflow-backend/pkg/db/dbtest"
	"github.com/gradeflow/gradeflow-backend/pkg/db/models"
	"github.com/gradeflow/gradeflow-backend/pkg/enums"
)

func seedGrade(t *testing.T, conn *gorm.DB, stock int) models.Variation {
	t.Helper()
	v := gradeVariation(stock, []string{"34", "35", "36", "37", "38", "39"}, []int64{1, 2, 3, 3, 2, 1})
	require.NoError(t, conn.Create(&v).Error)
	return v
}

func TestRepositoryConfigRoundTrip(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewRepository(conn)
	ctx := context.Background()
	v := seedGrade(t, conn, 10)

	discount := 7.5
	adjustment := decimal.RequireFromString("2.50")
	cfg := DefaultFlexibleGradeConfig()
	cfg.AllowHalfGrade = true
	cfg.AllowCustomMix = true
	cfg.HalfGradeDistribution = enums.HalfGradeDistributionCustom
	cfg.HalfGradeCustomSizes = []string{"36", "37"}
	cfg.HalfGradeCustomPairs = []int{2, 2}
	cfg.CustomMixAllowAnySize = false
	cfg.CustomMixPresetSizes = []string{"36", "37", "38"}
	cfg.CustomMixPriceAdjustment = &adjustment
	cfg.HalfGradeDiscountPercentage = &discount

	require.NoError(t, repo.UpsertConfig(ctx, modelFromConfig(v.StoreID, v.ID, cfg)))

	row, err := repo.FindConfig(ctx, v.StoreID, v.ID)
	require.NoError(t, err)
	loaded := configFromModel(row)
	assert.Equal(t, cfg.HalfGradeCustomSizes, loaded.HalfGradeCustomSizes)
	assert.Equal(t, []int{2, 2}, loaded.HalfGradeCustomPairs)
	assert.Equal(t, []string{"36", "37", "38"}, loaded.CustomMixPresetSizes)
	assert.False(t, loaded.CustomMixAllowAnySize)
	require.NotNil(t, loaded.CustomMixPriceAdjustment)
	assert.True(t, loaded.CustomMixPriceAdjustment.Equal(adjustment))
	require.NotNil(t, loaded.HalfGradeDiscountPercentage)
	assert.Equal(t, 7.5, *loaded.HalfGradeDiscountPercentage)

	cfg.AllowCustomMix = false
	cfg.CustomMixPriceAdjustment = nil
	require.NoError(t, repo.UpsertConfig(ctx, modelFromConfig(v.StoreID, v.ID, cfg)))
	row, err = repo.FindConfig(ctx, v.StoreID, v.ID)
	require.NoError(t, err)
	assert.False(t, row.AllowCustomMix)
	assert.False(t, row.CustomMixPriceAdjustment.Valid)
}

func TestRepositoryFindVariationScopesByStore(t *testing.T) {
	conn := dbtest.Open(t)
	repo := NewRepository(conn)
	ctx := context.Background()
	v := seedGrade(t, conn, 10)

	found, err := repo.FindVariation(ctx, v.StoreID, v.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, found.GradeQuantity())
	assert.Equal(t, "36", found.GradeSizes[2])

	_, err = repo.FindVariation(ctx, uuid.New(), v.ID)
	assert.True(t, db.IsNotFound(err))

	_, err = repo.FindConfig(ctx, v.StoreID, v.ID)
	assert.True(t, db.IsNotFound(err))
}
