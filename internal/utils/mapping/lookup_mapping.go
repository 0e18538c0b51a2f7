package mapping

import (
	"github.com/SscSPs/invoice_management_app/internal/core/domain"
	"github.com/SscSPs/invoice_management_app/internal/models"
)

// ToDomainEntity converts an entities row to a domain EntityRef
func ToDomainEntity(m models.Entity) domain.EntityRef {
	return domain.EntityRef{
		EntityID: m.EntityID,
		Kind:     domain.EntityKind(m.Kind),
		Name:     m.Name,
	}
}

// ToDomainCatalogEntry converts a catalog_entries row to a domain CatalogEntry
func ToDomainCatalogEntry(m models.CatalogEntry) domain.CatalogEntry {
	return domain.CatalogEntry{
		EntryID: m.EntryID,
		Kind:    domain.CatalogKind(m.Kind),
		Name:    m.Name,
		Code:    m.Code,
	}
}
