package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/invoice_management_app/internal/apperrors"
	"github.com/SscSPs/invoice_management_app/internal/core/domain"
	"github.com/SscSPs/invoice_management_app/internal/core/services"
	"github.com/SscSPs/invoice_management_app/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupService_SearchEntities(t *testing.T) {
	ctx := context.Background()
	entities := new(MockEntityLookup)
	svc := services.NewLookupService(entities, new(MockCatalogLookup))

	want := []domain.EntityRef{{EntityID: "cust_1", Kind: domain.EntityCustomer, Name: "Acme"}}
	entities.On("SearchEntities", ctx, tenantID, domain.EntityCustomer, "acme", 20).Return(want, nil).Once()

	got, err := svc.SearchEntities(ctx, tenantID, dto.SearchEntitiesParams{Kind: domain.EntityCustomer, Query: "  acme "})

	require.NoError(t, err)
	assert.Equal(t, want, got)
	entities.AssertExpectations(t)
}

func TestLookupService_ListCatalog(t *testing.T) {
	ctx := context.Background()
	catalog := new(MockCatalogLookup)
	svc := services.NewLookupService(new(MockEntityLookup), catalog)

	t.Run("known kind", func(t *testing.T) {
		want := []domain.CatalogEntry{{EntryID: "unit_1", Kind: domain.CatalogUnit, Name: "Piece", Code: "PC"}}
		catalog.On("ListCatalog", ctx, tenantID, domain.CatalogUnit).Return(want, nil).Once()

		got, err := svc.ListCatalog(ctx, tenantID, domain.CatalogUnit)

		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := svc.ListCatalog(ctx, tenantID, domain.CatalogKind("warehouse"))

		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	catalog.AssertExpectations(t)
}
