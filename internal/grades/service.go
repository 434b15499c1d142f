package grades

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/gradeflow/gradeflow-backend/internal/pricing"
	"github.com/gradeflow/gradeflow-backend/pkg/db"
	"github.com/gradeflow/gradeflow-backend/pkg/db/models"
	"github.com/gradeflow/gradeflow-backend/pkg/enums"
	pkgerrors "github.com/gradeflow/gradeflow-backend/pkg/errors"
	"github.com/gradeflow/gradeflow-backend/pkg/logger"
	"github.com/gradeflow/gradeflow-backend/pkg/metrics"
)

const (
	validatorConfig    = "grade_config"
	validatorSelection = "custom_selection"
	validatorStock     = "stock"
)

// Service manages grade configurations and quotes grade purchases.
type Service interface {
	ValidateConfig(ctx context.Context, cfg FlexibleGradeConfig) ValidationResult
	GetConfig(ctx context.Context, storeID, variationID uuid.UUID) (FlexibleGradeConfig, error)
	SaveConfig(ctx context.Context, storeID, variationID uuid.UUID, cfg FlexibleGradeConfig) (ValidationResult, error)
	ValidateSelection(ctx context.Context, storeID, variationID uuid.UUID, sel CustomGradeSelection) (ValidationResult, error)
	QuoteCustomSelection(ctx context.Context, in QuoteInput) (*CustomQuote, error)
	QuoteGrade(ctx context.Context, in GradeQuoteInput) (*GradeQuoteResult, error)
}

type gradeStore interface {
	FindVariation(ctx context.Context, storeID, variationID uuid.UUID) (*models.Variation, error)
	FindConfig(ctx context.Context, storeID, variationID uuid.UUID) (*models.GradeConfig, error)
	UpsertConfig(ctx context.Context, row *models.GradeConfig) error
}

type gradePricer interface {
	QuoteGrade(ctx context.Context, storeID, productID uuid.UUID, in pricing.GradePriceInput) (pricing.GradeQuote, error)
}

// QuoteInput asks for the price of a custom mix. OrderQuantity is the pair count of the whole
// order and defaults to the selection's own pairs.
type QuoteInput struct {
	StoreID       uuid.UUID
	VariationID   uuid.UUID
	Selection     CustomGradeSelection
	OrderQuantity int
}

// CustomQuote is the outcome of a custom mix quote.
type CustomQuote struct {
	Selection  CustomGradeSelection  `json:"selection"`
	Validation ValidationResult      `json:"validation"`
	Stock      StockValidationResult `json:"stock"`
	Price      pricing.GradeQuote    `json:"price"`
}

// GradeQuoteInput asks for the price of one full or half grade.
type GradeQuoteInput struct {
	StoreID       uuid.UUID
	VariationID   uuid.UUID
	Mode          enums.GradeMode
	OrderQuantity int
}

// GradeQuoteResult is the outcome of a full or half grade quote.
type GradeQuoteResult struct {
	Mode         enums.GradeMode       `json:"mode"`
	Distribution []SizePairs           `json:"distribution"`
	Stock        StockValidationResult `json:"stock"`
	Price        pricing.GradeQuote    `json:"price"`
}

type service struct {
	repo     gradeStore
	pricer   gradePricer
	defaults FlexibleGradeConfig
	metrics  *metrics.EngineMetrics
	logg     *logger.Logger
}

// ServiceParams groups the service collaborators. Metrics is optional.
type ServiceParams struct {
	Repo     gradeStore
	Pricer   gradePricer
	Defaults FlexibleGradeConfig
	Metrics  *metrics.EngineMetrics
	Logger   *logger.Logger
}

// NewService constructs a grades service instance.
func NewService(p ServiceParams) (Service, error) {
	if p.Repo == nil {
		return nil, fmt.Errorf("grades repository required")
	}
	if p.Pricer == nil {
		return nil, fmt.Errorf("pricing service required")
	}
	if p.Logger == nil {
		p.Logger = logger.Nop()
	}
	if !p.Defaults.PricingMode.IsValid() {
		p.Defaults = DefaultFlexibleGradeConfig()
	}
	return &service{
		repo:     p.Repo,
		pricer:   p.Pricer,
		defaults: p.Defaults,
		metrics:  p.Metrics,
		logg:     p.Logger,
	}, nil
}

func (s *service) ValidateConfig(ctx context.Context, cfg FlexibleGradeConfig) ValidationResult {
	res := ValidateConfig(cfg)
	s.record(validatorConfig, res)
	return res
}

func (s *service) GetConfig(ctx context.Context, storeID, variationID uuid.UUID) (FlexibleGradeConfig, error) {
	if _, err := s.loadGrade(ctx, storeID, variationID); err != nil {
		return FlexibleGradeConfig{}, err
	}
	return s.loadConfig(ctx, storeID, variationID)
}

func (s *service) SaveConfig(ctx context.Context, storeID, variationID uuid.UUID, cfg FlexibleGradeConfig) (ValidationResult, error) {
	res := s.ValidateConfig(ctx, cfg)
	if !res.IsValid {
		return res, pkgerrors.New(pkgerrors.CodeInvalidGradeConfig, res.Errors[0].Message).WithDetails(res)
	}
	if _, err := s.loadGrade(ctx, storeID, variationID); err != nil {
		return res, err
	}
	if err := s.repo.UpsertConfig(ctx, modelFromConfig(storeID, variationID, cfg)); err != nil {
		return res, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save grade config")
	}

	ctx = s.logg.WithVariationID(s.logg.WithStoreID(ctx, storeID.String()), variationID.String())
	ctx = s.logg.WithField(ctx, "warnings", len(res.Warnings))
	s.logg.Info(ctx, "grades.config_saved")
	return res, nil
}

func (s *service) ValidateSelection(ctx context.Context, storeID, variationID uuid.UUID, sel CustomGradeSelection) (ValidationResult, error) {
	v, err := s.loadGrade(ctx, storeID, variationID)
	if err != nil {
		return ValidationResult{}, err
	}
	cfg, err := s.loadConfig(ctx, storeID, variationID)
	if err != nil {
		return ValidationResult{}, err
	}
	res := validateSelectionFor(sel, cfg, *v)
	s.record(validatorSelection, res)
	return res, nil
}

func (s *service) QuoteCustomSelection(ctx context.Context, in QuoteInput) (*CustomQuote, error) {
	v, err := s.loadGrade(ctx, in.StoreID, in.VariationID)
	if err != nil {
		return nil, err
	}
	cfg, err := s.loadConfig(ctx, in.StoreID, in.VariationID)
	if err != nil {
		return nil, err
	}

	validation := validateSelectionFor(in.Selection, cfg, *v)
	for _, conflict := range UnitPriceConflicts(in.Selection.Items) {
		validation.addWarning(enums.IssueUnitPriceConflict,
			fmt.Sprintf("Preços unitários diferentes para %s %s; o primeiro preço informado foi mantido",
				conflict.Color, conflict.Size))
	}
	s.record(validatorSelection, validation)
	if !validation.IsValid {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidSelection, validation.Errors[0].Message).WithDetails(validation)
	}

	sel := NormalizeCustomSelection(CustomGradeSelection{Items: MergeCustomSelectionItems(in.Selection.Items)})
	sel.MeetsMinimum = sel.TotalPairs >= cfg.CustomMixMinPairs

	stock, err := ValidateStock(enums.GradeModeCustom, *v, &cfg, &sel)
	if err != nil {
		return nil, err
	}
	s.record(validatorStock, stock.ValidationResult)
	if !stock.IsValid {
		return nil, pkgerrors.New(pkgerrors.CodeInsufficientStock, stock.Errors[0].Message).WithDetails(stock)
	}

	price, err := s.pricer.QuoteGrade(ctx, in.StoreID, v.ProductID, pricing.GradePriceInput{
		Mode:                     enums.GradeModeCustom,
		Pairs:                    sel.TotalPairs,
		OrderQuantity:            in.OrderQuantity,
		ApplyQuantityTiers:       cfg.UsesQuantityTiers(),
		TierCalculationMode:      cfg.TierCalculationMode,
		CustomMixPriceAdjustment: cfg.CustomMixPriceAdjustment,
		VariationAdjustment:      v.PriceAdjustment,
	})
	if err != nil {
		return nil, err
	}
	sel.EstimatedPrice = price.Total

	return &CustomQuote{
		Selection:  sel,
		Validation: validation,
		Stock:      stock,
		Price:      price,
	}, nil
}

func (s *service) QuoteGrade(ctx context.Context, in GradeQuoteInput) (*GradeQuoteResult, error) {
	if in.Mode != enums.GradeModeFull && in.Mode != enums.GradeModeHalf {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "grade quote mode must be full or half, got %q", in.Mode)
	}
	v, err := s.loadGrade(ctx, in.StoreID, in.VariationID)
	if err != nil {
		return nil, err
	}
	cfg, err := s.loadConfig(ctx, in.StoreID, in.VariationID)
	if err != nil {
		return nil, err
	}
	if !cfg.ModeAllowed(in.Mode) {
		return nil, pkgerrors.Newf(pkgerrors.CodeInvalidSelection, "Modo %s não está habilitado para esta grade", in.Mode).
			WithDetails(map[string]any{"mode": in.Mode})
	}

	distribution, err := s.distribution(*v, cfg, in.Mode)
	if err != nil {
		return nil, err
	}
	pairs := 0
	for _, entry := range distribution {
		pairs += entry.Pairs
	}

	stock, err := ValidateStock(in.Mode, *v, &cfg, nil)
	if err != nil {
		return nil, err
	}
	// the distribution can exceed the percentage share (min pairs, custom pairs) and it is what ships
	if pairs > stock.RequestedStock {
		stock = evaluateStock(v.Stock, pairs)
	}
	s.record(validatorStock, stock.ValidationResult)
	if !stock.IsValid {
		return nil, pkgerrors.New(pkgerrors.CodeInsufficientStock, stock.Errors[0].Message).WithDetails(stock)
	}

	input := pricing.GradePriceInput{
		Mode:                in.Mode,
		Pairs:               pairs,
		OrderQuantity:       in.OrderQuantity,
		ApplyQuantityTiers:  cfg.UsesQuantityTiers(),
		TierCalculationMode: cfg.TierCalculationMode,
		VariationAdjustment: v.PriceAdjustment,
	}
	if in.Mode == enums.GradeModeHalf {
		input.HalfGradeDiscountPercentage = cfg.HalfGradeDiscountPercentage
	}
	price, err := s.pricer.QuoteGrade(ctx, in.StoreID, v.ProductID, input)
	if err != nil {
		return nil, err
	}

	return &GradeQuoteResult{
		Mode:         in.Mode,
		Distribution: distribution,
		Stock:        stock,
		Price:        price,
	}, nil
}

// validateSelectionFor adds the per-grade custom mix switch on top of the selection rules.
func validateSelectionFor(sel CustomGradeSelection, cfg FlexibleGradeConfig, v models.Variation) ValidationResult {
	res := ValidateCustomSelection(sel, cfg, availableSizes(&v))
	if !cfg.AllowCustomMix {
		disabled := Issue{Code: enums.IssueCustomMixDisabled, Message: "Mix personalizado não está habilitado para esta grade"}
		res.Errors = append([]Issue{disabled}, res.Errors...)
		res.IsValid = false
	}
	return res
}

func (s *service) distribution(v models.Variation, cfg FlexibleGradeConfig, mode enums.GradeMode) ([]SizePairs, error) {
	if mode == enums.GradeModeHalf {
		return HalfGradeDistribution(v, cfg)
	}
	out := make([]SizePairs, len(v.GradeSizes))
	for i, size := range v.GradeSizes {
		out[i] = SizePairs{Size: size, Pairs: int(v.GradePairs[i])}
	}
	return out, nil
}

func (s *service) loadGrade(ctx context.Context, storeID, variationID uuid.UUID) (*models.Variation, error) {
	if storeID == uuid.Nil || variationID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id and variation id are required")
	}
	v, err := s.repo.FindVariation(ctx, storeID, variationID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "variation not found").
				WithDetails(map[string]any{"variation_id": variationID.String()})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variation")
	}
	if !v.IsGrade {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "variation is not a grade").
			WithDetails(map[string]any{"variation_id": variationID.String()})
	}
	if err := v.CheckGradeShape(); err != nil {
		s.logg.Error(s.logg.WithVariationID(ctx, variationID.String()), "grades.invalid_shape", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "grade has inconsistent sizes")
	}
	return v, nil
}

func (s *service) loadConfig(ctx context.Context, storeID, variationID uuid.UUID) (FlexibleGradeConfig, error) {
	row, err := s.repo.FindConfig(ctx, storeID, variationID)
	if err != nil {
		if db.IsNotFound(err) {
			return s.defaults, nil
		}
		return FlexibleGradeConfig{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load grade config")
	}
	return configFromModel(row), nil
}

func (s *service) record(validator string, res ValidationResult) {
	s.metrics.ObserveValidation(validator, res.IsValid)
	for _, issue := range res.Errors {
		s.metrics.IncIssue(validator, "error", issue.Code.String())
	}
	for _, issue := range res.Warnings {
		s.metrics.IncIssue(validator, "warning", issue.Code.String())
	}
}

func availableSizes(v *models.Variation) []string {
	if len(v.GradeSizes) == 0 {
		return []string{}
	}
	return []string(v.GradeSizes)
}
