package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/invoice_management_app/internal/apperrors"
	"github.com/SscSPs/invoice_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_management_app/internal/core/ports/repositories"
	"github.com/SscSPs/invoice_management_app/internal/models"
	"github.com/SscSPs/invoice_management_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const maxSearchLimit = 50

type PgxLookupRepository struct {
	BaseRepository
}

func newPgxLookupRepository(pool *pgxpool.Pool) *PgxLookupRepository {
	return &PgxLookupRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var (
	_ portsrepo.EntityLookup  = (*PgxLookupRepository)(nil)
	_ portsrepo.CatalogLookup = (*PgxLookupRepository)(nil)
)

// SearchEntities matches entity names case-insensitively.
func (r *PgxLookupRepository) SearchEntities(ctx context.Context, tenantID string, kind domain.EntityKind, query string, limit int) ([]domain.EntityRef, error) {
	if limit <= 0 || limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	pattern := "%" + escapeLike(strings.TrimSpace(query)) + "%"
	rows, err := r.Pool.Query(ctx, `
		SELECT entity_id, tenant_id, kind, name
		FROM entities
		WHERE tenant_id = $1 AND kind = $2 AND name ILIKE $3
		ORDER BY name
		LIMIT $4;
	`, tenantID, string(kind), pattern, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to search entities", err)
	}
	entities, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Entity])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan entities", err)
	}

	out := make([]domain.EntityRef, len(entities))
	for i, e := range entities {
		out[i] = mapping.ToDomainEntity(e)
	}
	return out, nil
}

// FindEntityByID loads one entity of the tenant.
func (r *PgxLookupRepository) FindEntityByID(ctx context.Context, tenantID, entityID string) (*domain.EntityRef, error) {
	rows, _ := r.Pool.Query(ctx, `
		SELECT entity_id, tenant_id, kind, name FROM entities WHERE tenant_id = $1 AND entity_id = $2;
	`, tenantID, entityID)
	e, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Entity])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: entity %s", apperrors.ErrNotFound, entityID)
		}
		return nil, apperrors.NewAppError(500, "failed to find entity "+entityID, err)
	}
	ref := mapping.ToDomainEntity(e)
	return &ref, nil
}

// ListCatalog returns every entry of one catalog kind, ordered by name.
func (r *PgxLookupRepository) ListCatalog(ctx context.Context, tenantID string, kind domain.CatalogKind) ([]domain.CatalogEntry, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT entry_id, tenant_id, kind, name, code
		FROM catalog_entries
		WHERE tenant_id = $1 AND kind = $2
		ORDER BY name;
	`, tenantID, string(kind))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query catalog "+string(kind), err)
	}
	entries, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.CatalogEntry])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan catalog "+string(kind), err)
	}

	out := make([]domain.CatalogEntry, len(entries))
	for i, e := range entries {
		out[i] = mapping.ToDomainCatalogEntry(e)
	}
	return out, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
