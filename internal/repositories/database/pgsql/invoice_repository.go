package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/SscSPs/invoice_management_app/internal/apperrors"
	"github.com/SscSPs/invoice_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_management_app/internal/core/ports/repositories"
	"github.com/SscSPs/invoice_management_app/internal/models"
	"github.com/SscSPs/invoice_management_app/internal/utils/mapping"
	"github.com/SscSPs/invoice_management_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	invoiceNumberConstraint = "invoices_invoice_number_key"
	defaultListLimit        = 20

	invoiceColumns = `invoice_id, tenant_id, branch_id, invoice_number, invoice_type, invoice_kind,
		invoice_date, counterparty_id, tax_rate, discount, extra, currency_code, payment_type, notes,
		total_items, vat_amount, total_invoice, total_pays, balance, status, revision,
		created_at, created_by, last_updated_at, last_updated_by`
	itemColumns        = `item_id, invoice_id, position, name, unit_price, quantity, line_total, product_id, unit_id, store_id, category_id`
	paymentColumns     = `payment_id, invoice_id, position, payment_date, amount, method, status, notes, reference, installment_id`
	installmentColumns = `installment_id, invoice_id, position, due_date, amount, status, paid_date, paid_amount`
)

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoices and their sub-collections.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryWithTx {
	return &PgxInvoiceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.InvoiceRepositoryWithTx = (*PgxInvoiceRepository)(nil)

// SaveInvoice inserts the header and all children in one transaction.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	m := mapping.ToModelInvoice(invoice)
	return r.inTx(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO invoices (` + invoiceColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			        $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25);
		`
		_, err := tx.Exec(ctx, query,
			m.InvoiceID, m.TenantID, m.BranchID, m.InvoiceNumber, m.InvoiceType, m.InvoiceKind,
			m.InvoiceDate, m.CounterpartyID, m.TaxRate, m.Discount, m.Extra, m.CurrencyCode, m.PaymentType, m.Notes,
			m.TotalItems, m.VATAmount, m.TotalInvoice, m.TotalPays, m.Balance, m.Status, m.Revision,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
		if err != nil {
			if isUniqueViolation(err, invoiceNumberConstraint) {
				return fmt.Errorf("%w: invoice number %s", apperrors.ErrDuplicate, m.InvoiceNumber)
			}
			return apperrors.NewAppError(500, "failed to insert invoice "+m.InvoiceID, err)
		}
		return r.writeChildren(ctx, tx, invoice, false)
	})
}

// UpdateInvoice rewrites the header under the revision guard, then replaces every child row.
func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice, expectedRevision int64) error {
	m := mapping.ToModelInvoice(invoice)
	return r.inTx(ctx, func(tx pgx.Tx) error {
		query := `
			UPDATE invoices SET
				branch_id = $3, invoice_number = $4, invoice_type = $5, invoice_kind = $6, invoice_date = $7,
				counterparty_id = $8, tax_rate = $9, discount = $10, extra = $11, currency_code = $12,
				payment_type = $13, notes = $14, total_items = $15, vat_amount = $16, total_invoice = $17,
				total_pays = $18, balance = $19, status = $20, last_updated_at = $21, last_updated_by = $22,
				revision = revision + 1
			WHERE tenant_id = $1 AND invoice_id = $2 AND revision = $23;
		`
		tag, err := tx.Exec(ctx, query,
			m.TenantID, m.InvoiceID, m.BranchID, m.InvoiceNumber, m.InvoiceType, m.InvoiceKind, m.InvoiceDate,
			m.CounterpartyID, m.TaxRate, m.Discount, m.Extra, m.CurrencyCode,
			m.PaymentType, m.Notes, m.TotalItems, m.VATAmount, m.TotalInvoice,
			m.TotalPays, m.Balance, m.Status, m.LastUpdatedAt, m.LastUpdatedBy,
			expectedRevision,
		)
		if err != nil {
			if isUniqueViolation(err, invoiceNumberConstraint) {
				return fmt.Errorf("%w: invoice number %s", apperrors.ErrDuplicate, m.InvoiceNumber)
			}
			return apperrors.NewAppError(500, "failed to update invoice "+m.InvoiceID, err)
		}
		if tag.RowsAffected() == 0 {
			return r.missingOrStale(ctx, tx, m.TenantID, m.InvoiceID, expectedRevision)
		}
		return r.writeChildren(ctx, tx, invoice, true)
	})
}

func (r *PgxInvoiceRepository) missingOrStale(ctx context.Context, tx pgx.Tx, tenantID, invoiceID string, expectedRevision int64) error {
	var current int64
	err := tx.QueryRow(ctx, `SELECT revision FROM invoices WHERE tenant_id = $1 AND invoice_id = $2;`, tenantID, invoiceID).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: invoice %s", apperrors.ErrNotFound, invoiceID)
	}
	if err != nil {
		return apperrors.NewAppError(500, "failed to read revision of invoice "+invoiceID, err)
	}
	return fmt.Errorf("%w: invoice %s is at revision %d, not %d", apperrors.ErrConflict, invoiceID, current, expectedRevision)
}

// writeChildren queues the child rows of invoice into one batch, optionally clearing old rows first.
func (r *PgxInvoiceRepository) writeChildren(ctx context.Context, tx pgx.Tx, invoice domain.Invoice, replace bool) error {
	batch := &pgx.Batch{}
	if replace {
		// installments are referenced by payments, so payments go first
		batch.Queue(`DELETE FROM invoice_payments WHERE invoice_id = $1;`, invoice.InvoiceID)
		batch.Queue(`DELETE FROM invoice_installments WHERE invoice_id = $1;`, invoice.InvoiceID)
		batch.Queue(`DELETE FROM invoice_items WHERE invoice_id = $1;`, invoice.InvoiceID)
	}

	for _, it := range mapping.ToModelInvoiceItems(invoice.InvoiceID, invoice.Items) {
		batch.Queue(`INSERT INTO invoice_items (`+itemColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`,
			it.ItemID, it.InvoiceID, it.Position, it.Name, it.UnitPrice, it.Quantity, it.LineTotal,
			it.ProductID, it.UnitID, it.StoreID, it.CategoryID)
	}
	for _, in := range mapping.ToModelInvoiceInstallments(invoice.InvoiceID, invoice.Installments) {
		batch.Queue(`INSERT INTO invoice_installments (`+installmentColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
			in.InstallmentID, in.InvoiceID, in.Position, in.DueDate, in.Amount, in.Status, in.PaidDate, in.PaidAmount)
	}
	for _, p := range mapping.ToModelInvoicePayments(invoice.InvoiceID, invoice.Pays) {
		batch.Queue(`INSERT INTO invoice_payments (`+paymentColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`,
			p.PaymentID, p.InvoiceID, p.Position, p.PaymentDate, p.Amount, p.Method, p.Status, p.Notes, p.Reference, p.InstallmentID)
	}
	if batch.Len() == 0 {
		return nil
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to write children of invoice "+invoice.InvoiceID, err)
	}
	return nil
}

// FindInvoiceByID loads the header and fetches the three child collections in one batch.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, tenantID, invoiceID string) (*domain.Invoice, error) {
	rows, _ := r.Pool.Query(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE tenant_id = $1 AND invoice_id = $2;`, tenantID, invoiceID)
	header, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Invoice])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: invoice %s", apperrors.ErrNotFound, invoiceID)
		}
		return nil, apperrors.NewAppError(500, "failed to find invoice "+invoiceID, err)
	}

	batch := &pgx.Batch{}
	batch.Queue(`SELECT `+itemColumns+` FROM invoice_items WHERE invoice_id = $1 ORDER BY position;`, invoiceID)
	batch.Queue(`SELECT `+paymentColumns+` FROM invoice_payments WHERE invoice_id = $1 ORDER BY position;`, invoiceID)
	batch.Queue(`SELECT `+installmentColumns+` FROM invoice_installments WHERE invoice_id = $1 ORDER BY position;`, invoiceID)
	br := r.Pool.SendBatch(ctx, batch)
	defer br.Close()

	items, err := collectBatch[models.InvoiceItem](br)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to load items of invoice "+invoiceID, err)
	}
	pays, err := collectBatch[models.InvoicePayment](br)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to load payments of invoice "+invoiceID, err)
	}
	installments, err := collectBatch[models.InvoiceInstallment](br)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to load installments of invoice "+invoiceID, err)
	}

	inv := domain.Recompute(mapping.ToDomainInvoice(header, items, pays, installments))
	return &inv, nil
}

func collectBatch[T any](br pgx.BatchResults) ([]T, error) {
	rows, err := br.Query()
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[T])
}

// ListInvoices pages through invoice headers with a keyset cursor.
func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, tenantID string, branchID *string, limit int, nextToken *string) ([]domain.InvoiceSummary, *string, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	// fetch one extra row to learn whether another page exists
	fetchLimit := limit + 1

	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE tenant_id = $1`
	args := []any{tenantID}
	if branchID != nil && *branchID != "" {
		args = append(args, *branchID)
		query += ` AND branch_id = $` + strconv.Itoa(len(args))
	}
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		args = append(args, cursor.SortDate, cursor.CreatedAt, cursor.ID)
		n := len(args)
		query += fmt.Sprintf(` AND (invoice_date, created_at, invoice_id) < ($%d, $%d, $%d)`, n-2, n-1, n)
	}
	args = append(args, fetchLimit)
	query += ` ORDER BY invoice_date DESC, created_at DESC, invoice_id DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query invoices for tenant "+tenantID, err)
	}
	headers, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Invoice])
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to scan invoices for tenant "+tenantID, err)
	}

	var nextTokenVal *string
	if len(headers) > limit {
		last := headers[limit-1]
		token := pagination.EncodeToken(pagination.Cursor{SortDate: last.InvoiceDate, CreatedAt: last.CreatedAt, ID: last.InvoiceID})
		nextTokenVal = &token
		headers = headers[:limit]
	}

	summaries := make([]domain.InvoiceSummary, len(headers))
	for i, h := range headers {
		summaries[i] = mapping.ToDomainInvoiceSummary(h)
	}
	return summaries, nextTokenVal, nil
}

// ListInvoicesWithDueInstallments finds invoices with a pending installment due before asOf's date.
func (r *PgxInvoiceRepository) ListInvoicesWithDueInstallments(ctx context.Context, asOf time.Time, limit int) ([]domain.InvoiceRef, error) {
	query := `
		SELECT DISTINCT i.tenant_id, i.invoice_id
		FROM invoices i
		JOIN invoice_installments s ON s.invoice_id = i.invoice_id
		WHERE s.status = 'pending' AND s.due_date < $1::date
		ORDER BY i.tenant_id, i.invoice_id
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, asOf, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query invoices with due installments", err)
	}
	refs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.InvoiceRef, error) {
		var ref domain.InvoiceRef
		err := row.Scan(&ref.TenantID, &ref.InvoiceID)
		return ref, err
	})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan invoices with due installments", err)
	}
	return refs, nil
}
