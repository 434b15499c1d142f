package variations

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gradeflow/gradeflow-backend/internal/catalog"
	pkgerrors "github.com/gradeflow/gradeflow-backend/pkg/errors"
	"github.com/gradeflow/gradeflow-backend/pkg/logger"
	"github.com/gradeflow/gradeflow-backend/pkg/metrics"
)

// Service generates draft variations from a store's catalog. Drafts are never persisted here.
type Service interface {
	GenerateForStore(ctx context.Context, storeID uuid.UUID, sel Selection) ([]Draft, error)
}

type service struct {
	catalog catalog.Reader
	metrics *metrics.EngineMetrics
	logg    *logger.Logger
}

// NewService constructs a variation generation service.
func NewService(reader catalog.Reader, engineMetrics *metrics.EngineMetrics, logg *logger.Logger) (Service, error) {
	if reader == nil {
		return nil, fmt.Errorf("catalog reader required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{catalog: reader, metrics: engineMetrics, logg: logg}, nil
}

func (s *service) GenerateForStore(ctx context.Context, storeID uuid.UUID, sel Selection) ([]Draft, error) {
	if storeID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id is required")
	}
	if len(sel.GroupIDs) == 0 {
		return []Draft{}, nil
	}

	groups, err := s.catalog.ListGroups(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load attribute groups")
	}
	values, err := s.catalog.ListValues(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load attribute values")
	}

	start := time.Now()
	drafts, err := Generate(groups, values, sel)
	if err != nil {
		return nil, err
	}
	kind := "cartesian"
	if len(sel.GroupIDs) == 1 {
		kind = "single_group"
	}
	s.metrics.ObserveGeneration(kind, time.Since(start), len(drafts))

	ctx = s.logg.WithFields(ctx, map[string]any{
		"groups": len(sel.GroupIDs),
		"drafts": len(drafts),
	})
	s.logg.Debug(ctx, "variations.generated")
	return drafts, nil
}
