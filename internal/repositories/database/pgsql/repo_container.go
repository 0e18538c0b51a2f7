package pgsql

import (
	portsrepo "github.com/SscSPs/invoice_management_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the Postgres repositories. The catalog repository is returned
// bare; callers may front it with a cache before handing it to services.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	lookupRepo := newPgxLookupRepository(dbPool)

	return portsrepo.RepositoryProvider{
		InvoiceRepo: newPgxInvoiceRepository(dbPool),
		EntityRepo:  lookupRepo,
		CatalogRepo: lookupRepo,
	}
}
