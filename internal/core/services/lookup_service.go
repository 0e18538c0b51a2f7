package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/SscSPs/invoice_management_app/internal/apperrors"
	"github.com/SscSPs/invoice_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invoice_management_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_management_app/internal/dto"
)

const defaultSearchLimit = 20

type lookupService struct {
	BaseService
	entities portsrepo.EntityLookup
	catalog  portsrepo.CatalogLookup
}

// NewLookupService creates a new LookupService.
func NewLookupService(entities portsrepo.EntityLookup, catalog portsrepo.CatalogLookup) portssvc.LookupSvc {
	return &lookupService{entities: entities, catalog: catalog}
}

func (s *lookupService) SearchEntities(ctx context.Context, tenantID string, params dto.SearchEntitiesParams) ([]domain.EntityRef, error) {
	if params.Kind != domain.EntityCustomer && params.Kind != domain.EntitySupplier {
		return nil, apperrors.NewFieldError("kind", "must be one of: customer, supplier")
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	refs, err := s.entities.SearchEntities(ctx, tenantID, params.Kind, strings.TrimSpace(params.Query), limit)
	if err != nil {
		s.LogError(ctx, err, "failed to search entities", slog.String("tenant_id", tenantID))
		return nil, err
	}
	return refs, nil
}

func (s *lookupService) ListCatalog(ctx context.Context, tenantID string, kind domain.CatalogKind) ([]domain.CatalogEntry, error) {
	if !kind.Valid() {
		return nil, apperrors.NewFieldError("kind", "must be one of: category, store, unit")
	}
	entries, err := s.catalog.ListCatalog(ctx, tenantID, kind)
	if err != nil {
		s.LogError(ctx, err, "failed to list catalog", slog.String("kind", string(kind)))
		return nil, err
	}
	return entries, nil
}
