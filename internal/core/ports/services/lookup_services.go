package services

import (
	"context"

	"github.com/SscSPs/invoice_management_app/internal/core/domain"
	"github.com/SscSPs/invoice_management_app/internal/dto"
)

// LookupSvc exposes the reference data an invoice form needs.
type LookupSvc interface {
	SearchEntities(ctx context.Context, tenantID string, params dto.SearchEntitiesParams) ([]domain.EntityRef, error)
	ListCatalog(ctx context.Context, tenantID string, kind domain.CatalogKind) ([]domain.CatalogEntry, error)
}
