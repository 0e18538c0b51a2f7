package repositories

import (
	"context"

	"github.com/SscSPs/invoice_management_app/internal/core/domain"
)

// EntityLookup resolves invoice counterparties.
type EntityLookup interface {
	// SearchEntities returns entities of kind whose name contains query, up to limit rows.
	SearchEntities(ctx context.Context, tenantID string, kind domain.EntityKind, query string, limit int) ([]domain.EntityRef, error)

	// FindEntityByID returns apperrors.ErrNotFound when the entity does not exist for the tenant.
	FindEntityByID(ctx context.Context, tenantID, entityID string) (*domain.EntityRef, error)
}

// CatalogLookup lists tenant reference data (categories, stores, units).
type CatalogLookup interface {
	ListCatalog(ctx context.Context, tenantID string, kind domain.CatalogKind) ([]domain.CatalogEntry, error)
}
