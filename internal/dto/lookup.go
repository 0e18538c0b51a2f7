package dto

import "github.com/SscSPs/invoice_management_app/internal/core/domain"

// SearchEntitiesParams defines query parameters for the counterparty search.
type SearchEntitiesParams struct {
	Kind  domain.EntityKind `form:"kind" binding:"required,oneof=customer supplier"`
	Query string            `form:"q"`
	Limit int               `form:"limit,default=20" binding:"omitempty,min=1,max=50"`
}

// EntitiesResponse wraps the counterparty search results.
type EntitiesResponse struct {
	Entities []domain.EntityRef `json:"entities"`
}

// CatalogResponse wraps the entries of one catalog.
type CatalogResponse struct {
	Kind    domain.CatalogKind    `json:"kind"`
	Entries []domain.CatalogEntry `json:"entries"`
}
