package grades

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gradeflow/gradeflow-backend/internal/pricing"
	"github.com/gradeflow/gradeflow-backend/pkg/db/dbtest"
	"github.com/gradeflow/gradeflow-backend/pkg/enums"
	pkgerrors "github.com/gradeflow/gradeflow-backend/pkg/errors"
)

type stubPricer struct {
	calls []pricing.GradePriceInput
	unit  decimal.Decimal
}

func (s *stubPricer) QuoteGrade(ctx context.Context, storeID, productID uuid.UUID, in pricing.GradePriceInput) (pricing.GradeQuote, error) {
	s.calls = append(s.calls, in)
	return pricing.GradeQuote{
		Mode:      in.Mode,
		Pairs:     in.Pairs,
		UnitPrice: s.unit,
		Total:     s.unit.Mul(decimal.NewFromInt(int64(in.Pairs))),
	}, nil
}

func newGradesService(t *testing.T, stock int) (Service, *stubPricer, uuid.UUID, uuid.UUID) {
	t.Helper()
	conn := dbtest.Open(t)
	v := seedGrade(t, conn, stock)
	pricer := &stubPricer{unit: decimal.NewFromInt(20)}
	svc, err := NewService(ServiceParams{
		Repo:     NewRepository(conn),
		Pricer:   pricer,
		Defaults: DefaultFlexibleGradeConfig(),
	})
	require.NoError(t, err)
	return svc, pricer, v.StoreID, v.ID
}

func TestNewServiceRequiresCollaborators(t *testing.T) {
	_, err := NewService(ServiceParams{Pricer: &stubPricer{}})
	assert.Error(t, err)
	_, err = NewService(ServiceParams{Repo: NewRepository(dbtest.Open(t))})
	assert.Error(t, err)
}

func TestServiceSaveConfigBlocksInvalid(t *testing.T) {
	svc, _, storeID, variationID := newGradesService(t, 100)
	ctx := context.Background()

	cfg := DefaultFlexibleGradeConfig()
	cfg.AllowFullGrade = false
	res, err := svc.SaveConfig(ctx, storeID, variationID, cfg)
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeInvalidGradeConfig))
	assert.False(t, res.IsValid)
	details, ok := pkgerrors.As(err).Details().(ValidationResult)
	require.True(t, ok)
	assert.True(t, details.HasError(enums.IssueNoSellingMode))

	loaded, err := svc.GetConfig(ctx, storeID, variationID)
	require.NoError(t, err)
	assert.True(t, loaded.AllowFullGrade, "invalid config must not be persisted")
}

func TestServiceSaveConfigPersistsWithWarnings(t *testing.T) {
	svc, _, storeID, variationID := newGradesService(t, 100)
	ctx := context.Background()

	cfg := DefaultFlexibleGradeConfig()
	cfg.AllowHalfGrade = true
	cfg.PricingMode = enums.GradePricingModeTierBased
	res, err := svc.SaveConfig(ctx, storeID, variationID, cfg)
	require.NoError(t, err)
	assert.True(t, res.HasWarning(enums.IssueTierBasedWithoutTiers))

	loaded, err := svc.GetConfig(ctx, storeID, variationID)
	require.NoError(t, err)
	assert.True(t, loaded.AllowHalfGrade)
	assert.Equal(t, enums.GradePricingModeTierBased, loaded.PricingMode)

	_, err = svc.SaveConfig(ctx, storeID, uuid.New(), cfg)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestServiceQuoteCustomSelectionMergesLines(t *testing.T) {
	svc, pricer, storeID, variationID := newGradesService(t, 100)
	ctx := context.Background()

	adjustment := decimal.NewFromInt(1)
	cfg := DefaultFlexibleGradeConfig()
	cfg.AllowCustomMix = true
	cfg.CustomMixPriceAdjustment = &adjustment
	cfg.PricingMode = enums.GradePricingModeTierBased
	cfg.ApplyQuantityTiers = true
	_, err := svc.SaveConfig(ctx, storeID, variationID, cfg)
	require.NoError(t, err)

	p10, p12 := decimal.NewFromInt(10), decimal.NewFromInt(12)
	quote, err := svc.QuoteCustomSelection(ctx, QuoteInput{
		StoreID:     storeID,
		VariationID: variationID,
		Selection: CustomGradeSelection{Items: []CustomGradeItem{
			{Color: "Black", Size: "36", Quantity: 2, UnitPrice: &p10},
			{Color: "White", Size: "37", Quantity: 3},
			{Color: "Black", Size: "36", Quantity: 2, UnitPrice: &p12},
		}},
		OrderQuantity: 40,
	})
	require.NoError(t, err)

	require.Len(t, quote.Selection.Items, 2)
	assert.Equal(t, 4, quote.Selection.Items[0].Quantity)
	assert.Equal(t, 7, quote.Selection.TotalPairs)
	assert.True(t, quote.Selection.MeetsMinimum)
	assert.True(t, quote.Selection.EstimatedPrice.Equal(decimal.NewFromInt(140)))
	assert.True(t, quote.Validation.HasWarning(enums.IssueUnitPriceConflict))
	assert.True(t, quote.Stock.IsValid)

	require.Len(t, pricer.calls, 1)
	call := pricer.calls[0]
	assert.Equal(t, enums.GradeModeCustom, call.Mode)
	assert.Equal(t, 7, call.Pairs)
	assert.Equal(t, 40, call.OrderQuantity)
	assert.True(t, call.ApplyQuantityTiers)
	require.NotNil(t, call.CustomMixPriceAdjustment)
	assert.True(t, call.CustomMixPriceAdjustment.Equal(adjustment))
}

func TestServiceQuoteCustomSelectionErrors(t *testing.T) {
	svc, pricer, storeID, variationID := newGradesService(t, 5)
	ctx := context.Background()

	_, err := svc.QuoteCustomSelection(ctx, QuoteInput{
		StoreID:     storeID,
		VariationID: variationID,
		Selection:   CustomGradeSelection{Items: []CustomGradeItem{{Color: "Black", Size: "36", Quantity: 6}}},
	})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeInvalidSelection), "custom mix is disabled by default")

	cfg := DefaultFlexibleGradeConfig()
	cfg.AllowCustomMix = true
	_, err = svc.SaveConfig(ctx, storeID, variationID, cfg)
	require.NoError(t, err)

	_, err = svc.QuoteCustomSelection(ctx, QuoteInput{
		StoreID:     storeID,
		VariationID: variationID,
		Selection:   CustomGradeSelection{Items: []CustomGradeItem{{Color: "Black", Size: "36", Quantity: 6}}},
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeInsufficientStock))
	stock, ok := pkgerrors.As(err).Details().(StockValidationResult)
	require.True(t, ok)
	assert.Equal(t, 5, stock.AvailableStock)
	assert.Equal(t, 6, stock.RequestedStock)
	assert.Empty(t, pricer.calls)
}

func TestServiceQuoteGradeHalf(t *testing.T) {
	svc, pricer, storeID, variationID := newGradesService(t, 100)
	ctx := context.Background()

	_, err := svc.QuoteGrade(ctx, GradeQuoteInput{StoreID: storeID, VariationID: variationID, Mode: enums.GradeModeHalf})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeInvalidSelection), "half grade is disabled by default")

	discount := 10.0
	cfg := DefaultFlexibleGradeConfig()
	cfg.AllowHalfGrade = true
	cfg.HalfGradeDiscountPercentage = &discount
	_, err = svc.SaveConfig(ctx, storeID, variationID, cfg)
	require.NoError(t, err)

	quote, err := svc.QuoteGrade(ctx, GradeQuoteInput{StoreID: storeID, VariationID: variationID, Mode: enums.GradeModeHalf})
	require.NoError(t, err)
	assert.Equal(t, 6, quote.Stock.RequestedStock)
	require.Len(t, quote.Distribution, 6)

	require.Len(t, pricer.calls, 1)
	assert.Equal(t, 6, pricer.calls[0].Pairs)
	require.NotNil(t, pricer.calls[0].HalfGradeDiscountPercentage)
	assert.Equal(t, 10.0, *pricer.calls[0].HalfGradeDiscountPercentage)
	assert.False(t, pricer.calls[0].ApplyQuantityTiers)
}

func TestServiceQuoteGradeFull(t *testing.T) {
	svc, pricer, storeID, variationID := newGradesService(t, 100)

	quote, err := svc.QuoteGrade(context.Background(), GradeQuoteInput{StoreID: storeID, VariationID: variationID, Mode: enums.GradeModeFull})
	require.NoError(t, err)
	assert.Equal(t, 12, quote.Price.Pairs)
	assert.True(t, quote.Price.Total.Equal(decimal.NewFromInt(240)))
	assert.Nil(t, pricer.calls[0].HalfGradeDiscountPercentage)

	_, err = svc.QuoteGrade(context.Background(), GradeQuoteInput{StoreID: storeID, VariationID: variationID, Mode: enums.GradeModeCustom})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

func TestServiceQuoteGradeHalfChecksShippedPairs(t *testing.T) {
	cases := []struct {
		name   string
		adjust func(cfg *FlexibleGradeConfig)
	}{
		{
			name: "min pairs above percentage share",
			adjust: func(cfg *FlexibleGradeConfig) {
				cfg.HalfGradeMinPairs = 8
			},
		},
		{
			name: "custom pairs above percentage share",
			adjust: func(cfg *FlexibleGradeConfig) {
				cfg.HalfGradeDistribution = enums.HalfGradeDistributionCustom
				cfg.HalfGradeCustomSizes = []string{"36", "37"}
				cfg.HalfGradeCustomPairs = []int{4, 4}
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, pricer, storeID, variationID := newGradesService(t, 7)
			ctx := context.Background()

			cfg := DefaultFlexibleGradeConfig()
			cfg.AllowHalfGrade = true
			tc.adjust(&cfg)
			_, err := svc.SaveConfig(ctx, storeID, variationID, cfg)
			require.NoError(t, err)

			_, err = svc.QuoteGrade(ctx, GradeQuoteInput{StoreID: storeID, VariationID: variationID, Mode: enums.GradeModeHalf})
			require.Error(t, err)
			assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeInsufficientStock))
			stock, ok := pkgerrors.As(err).Details().(StockValidationResult)
			require.True(t, ok)
			assert.Equal(t, 7, stock.AvailableStock)
			assert.Equal(t, 8, stock.RequestedStock)
			assert.Empty(t, pricer.calls)
		})
	}
}

func TestServiceValidateSelectionCustomMixDisabled(t *testing.T) {
	svc, _, storeID, variationID := newGradesService(t, 100)

	sel := CustomGradeSelection{Items: []CustomGradeItem{{Color: "Black", Size: "36", Quantity: 6}}}
	res, err := svc.ValidateSelection(context.Background(), storeID, variationID, sel)
	require.NoError(t, err)
	assert.False(t, res.IsValid)
	require.NotEmpty(t, res.Errors)
	assert.Equal(t, enums.IssueCustomMixDisabled, res.Errors[0].Code)
}
