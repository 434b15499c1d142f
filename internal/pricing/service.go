package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gradeflow/gradeflow-backend/pkg/db"
	"github.com/gradeflow/gradeflow-backend/pkg/db/models"
	pkgerrors "github.com/gradeflow/gradeflow-backend/pkg/errors"
	"github.com/gradeflow/gradeflow-backend/pkg/logger"
	"github.com/gradeflow/gradeflow-backend/pkg/metrics"
	"github.com/gradeflow/gradeflow-backend/pkg/redis"
)

// Service loads product pricing settings and quotes quantities against them.
type Service interface {
	Settings(ctx context.Context, storeID, productID uuid.UUID) (Settings, error)
	SaveSettings(ctx context.Context, storeID, productID uuid.UUID, settings Settings) error
	Quote(ctx context.Context, storeID, productID uuid.UUID, qty int) (Quote, error)
	QuoteGrade(ctx context.Context, storeID, productID uuid.UUID, in GradePriceInput) (GradeQuote, error)
}

type settingsStore interface {
	FindByProduct(ctx context.Context, storeID, productID uuid.UUID) (*models.ProductPricing, error)
	Upsert(ctx context.Context, row *models.ProductPricing) error
}

type settingsCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	PricingSettingsKey(storeID, productID string) string
}

type service struct {
	repo     settingsStore
	cache    settingsCache
	cacheTTL time.Duration
	engine   *Engine
	metrics  *metrics.EngineMetrics
	logg     *logger.Logger
}

// ServiceParams groups the service collaborators. Cache and Metrics are optional.
type ServiceParams struct {
	Repo     settingsStore
	Cache    settingsCache
	CacheTTL time.Duration
	Engine   *Engine
	Metrics  *metrics.EngineMetrics
	Logger   *logger.Logger
}

// NewService constructs a pricing service instance.
func NewService(p ServiceParams) (Service, error) {
	if p.Repo == nil {
		return nil, fmt.Errorf("pricing repository required")
	}
	if p.Engine == nil {
		return nil, fmt.Errorf("pricing engine required")
	}
	if p.Logger == nil {
		p.Logger = logger.Nop()
	}
	return &service{
		repo:     p.Repo,
		cache:    p.Cache,
		cacheTTL: p.CacheTTL,
		engine:   p.Engine,
		metrics:  p.Metrics,
		logg:     p.Logger,
	}, nil
}

func (s *service) Settings(ctx context.Context, storeID, productID uuid.UUID) (Settings, error) {
	if cached, ok := s.readCache(ctx, storeID, productID); ok {
		return cached, nil
	}

	row, err := s.repo.FindByProduct(ctx, storeID, productID)
	if err != nil {
		if db.IsNotFound(err) {
			return Settings{}, pkgerrors.New(pkgerrors.CodeNotFound, "pricing settings not found").
				WithDetails(map[string]any{"product_id": productID.String()})
		}
		return Settings{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load pricing settings")
	}
	settings := settingsFromModel(row)
	s.writeCache(ctx, storeID, productID, settings)
	return settings, nil
}

func (s *service) SaveSettings(ctx context.Context, storeID, productID uuid.UUID, settings Settings) error {
	if storeID == uuid.Nil || productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "store id and product id are required")
	}
	if err := ValidateSettings(settings); err != nil {
		return err
	}
	if err := s.repo.Upsert(ctx, modelFromSettings(storeID, productID, settings)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save pricing settings")
	}
	s.invalidate(ctx, storeID, productID)
	return nil
}

func (s *service) Quote(ctx context.Context, storeID, productID uuid.UUID, qty int) (Quote, error) {
	if qty < 1 {
		return Quote{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	settings, err := s.Settings(ctx, storeID, productID)
	if err != nil {
		return Quote{}, err
	}
	quote := s.engine.UnitPrice(settings, qty)
	s.metrics.IncPriceQuote(settings.PriceModel.String(), appliedSlot(quote.AppliedTier))
	return quote, nil
}

func (s *service) QuoteGrade(ctx context.Context, storeID, productID uuid.UUID, in GradePriceInput) (GradeQuote, error) {
	settings, err := s.Settings(ctx, storeID, productID)
	if err != nil {
		return GradeQuote{}, err
	}
	quote := s.engine.GradePrice(settings, in)
	s.metrics.IncPriceQuote(settings.PriceModel.String(), appliedSlot(quote.Base.AppliedTier))
	return quote, nil
}

func (s *service) readCache(ctx context.Context, storeID, productID uuid.UUID) (Settings, bool) {
	if s.cache == nil {
		return Settings{}, false
	}
	key := s.cache.PricingSettingsKey(storeID.String(), productID.String())
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, redis.ErrCacheMiss) {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "pricing.cache_read_failed")
		}
		return Settings{}, false
	}
	var settings Settings
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "pricing.cache_decode_failed")
		return Settings{}, false
	}
	return settings, true
}

func (s *service) writeCache(ctx context.Context, storeID, productID uuid.UUID, settings Settings) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	payload, err := json.Marshal(settings)
	if err != nil {
		return
	}
	key := s.cache.PricingSettingsKey(storeID.String(), productID.String())
	if err := s.cache.Set(ctx, key, string(payload), s.cacheTTL); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "pricing.cache_write_failed")
	}
}

func (s *service) invalidate(ctx context.Context, storeID, productID uuid.UUID) {
	if s.cache == nil {
		return
	}
	key := s.cache.PricingSettingsKey(storeID.String(), productID.String())
	if err := s.cache.Del(ctx, key); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "pricing.cache_invalidate_failed")
	}
}

func appliedSlot(tier *PriceTier) int {
	if tier == nil {
		return -1
	}
	return tier.Index - 1
}
