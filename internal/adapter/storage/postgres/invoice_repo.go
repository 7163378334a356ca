package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mypayment-ledger/internal/core/domain"
	"mypayment-ledger/internal/core/ports"
	"mypayment-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const invoiceColumns = `id, reference, structure_id, creation, start_date, end_date, total, paid, received`

// InvoiceRepo implements ports.InvoiceRepository.
type InvoiceRepo struct {
	pool Pool
}

// NewInvoiceRepo creates a new InvoiceRepo.
func NewInvoiceRepo(pool Pool) *InvoiceRepo {
	return &InvoiceRepo{pool: pool}
}

// Create inserts an invoice and its details within a database transaction.
func (r *InvoiceRepo) Create(ctx context.Context, tx pgx.Tx, inv *domain.Invoice) error {
	query := `INSERT INTO invoices (` + invoiceColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := tx.Exec(ctx, query,
		inv.ID, inv.Reference, inv.StructureID, inv.Creation,
		inv.StartDate, inv.EndDate, inv.Total, inv.Paid, inv.Received,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.ErrAlreadyExists("Invoice")
		}
		return fmt.Errorf("insert invoice: %w", err)
	}

	for _, d := range inv.Details {
		_, err := tx.Exec(ctx,
			`INSERT INTO invoice_details (invoice_id, store_id, total) VALUES ($1, $2, $3)`,
			inv.ID, d.StoreID, d.Total,
		)
		if err != nil {
			return fmt.Errorf("insert invoice detail: %w", err)
		}
	}
	return nil
}

// GetByID fetches an invoice with its details.
func (r *InvoiceRepo) GetByID(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	return r.getOne(ctx, on(r.pool, tx), query, id)
}

// GetByIDForUpdate locks an invoice row and returns it with its details.
// This MUST be called within a transaction.
func (r *InvoiceRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1 FOR UPDATE`
	return r.getOne(ctx, tx, query, id)
}

// GetLastByStructure returns the most recent invoice of a structure, without details.
func (r *InvoiceRepo) GetLastByStructure(ctx context.Context, tx pgx.Tx, structureID uuid.UUID) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE structure_id = $1 ORDER BY end_date DESC LIMIT 1`

	inv, err := scanInvoice(on(r.pool, tx).QueryRow(ctx, query, structureID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get last invoice: %w", err)
	}
	return inv, nil
}

// SumUnreceivedByStore totals the details of a store's invoices not yet received.
func (r *InvoiceRepo) SumUnreceivedByStore(ctx context.Context, tx pgx.Tx, storeID uuid.UUID) (int64, error) {
	query := `SELECT COALESCE(SUM(d.total), 0)
		FROM invoice_details d JOIN invoices i ON i.id = d.invoice_id
		WHERE d.store_id = $1 AND i.received = FALSE`

	var sum int64
	if err := on(r.pool, tx).QueryRow(ctx, query, storeID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum unreceived invoice details: %w", err)
	}
	return sum, nil
}

// List fetches invoices with filtering and pagination, newest first.
func (r *InvoiceRepo) List(ctx context.Context, tx pgx.Tx, params ports.InvoiceListParams) ([]domain.Invoice, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if len(params.StructureIDs) > 0 {
		conditions = append(conditions, fmt.Sprintf("structure_id = ANY($%d)", argIdx))
		args = append(args, params.StructureIDs)
		argIdx++
	}
	if params.From != nil {
		conditions = append(conditions, fmt.Sprintf("end_date >= $%d", argIdx))
		args = append(args, *params.From)
		argIdx++
	}
	if params.To != nil {
		conditions = append(conditions, fmt.Sprintf("start_date <= $%d", argIdx))
		args = append(args, *params.To)
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	query := `SELECT ` + invoiceColumns + ` FROM invoices` + where + ` ORDER BY end_date DESC`
	if params.PageSize > 0 {
		page := params.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
		args = append(args, params.PageSize, (page-1)*params.PageSize)
	}

	q := on(r.pool, tx)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}

	var invoices []domain.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan invoice row: %w", err)
		}
		invoices = append(invoices, *inv)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invoice rows: %w", err)
	}

	if len(invoices) == 0 {
		return invoices, nil
	}

	ids := make([]uuid.UUID, len(invoices))
	for i := range invoices {
		ids[i] = invoices[i].ID
	}
	details, err := r.details(ctx, q, ids)
	if err != nil {
		return nil, err
	}
	for i := range invoices {
		invoices[i].Details = details[invoices[i].ID]
	}
	return invoices, nil
}

// UpdatePaid sets the paid flag of an invoice.
func (r *InvoiceRepo) UpdatePaid(ctx context.Context, tx pgx.Tx, id uuid.UUID, paid bool) error {
	tag, err := tx.Exec(ctx, `UPDATE invoices SET paid = $1 WHERE id = $2`, paid, id)
	if err != nil {
		return fmt.Errorf("update invoice paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("invoice not found: %s", id)
	}
	return nil
}

// MarkReceived flags an invoice as received.
func (r *InvoiceRepo) MarkReceived(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, `UPDATE invoices SET received = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark invoice received: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("invoice not found: %s", id)
	}
	return nil
}

// Delete removes an invoice; its details cascade.
func (r *InvoiceRepo) Delete(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	_, err := tx.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepo) getOne(ctx context.Context, q querier, query string, id uuid.UUID) (*domain.Invoice, error) {
	inv, err := scanInvoice(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}

	details, err := r.details(ctx, q, []uuid.UUID{inv.ID})
	if err != nil {
		return nil, err
	}
	inv.Details = details[inv.ID]
	return inv, nil
}

func (r *InvoiceRepo) details(ctx context.Context, q querier, ids []uuid.UUID) (map[uuid.UUID][]domain.InvoiceDetail, error) {
	rows, err := q.Query(ctx,
		`SELECT invoice_id, store_id, total FROM invoice_details WHERE invoice_id = ANY($1) ORDER BY store_id`, ids)
	if err != nil {
		return nil, fmt.Errorf("list invoice details: %w", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]domain.InvoiceDetail, len(ids))
	for rows.Next() {
		var d domain.InvoiceDetail
		if err := rows.Scan(&d.InvoiceID, &d.StoreID, &d.Total); err != nil {
			return nil, fmt.Errorf("scan invoice detail: %w", err)
		}
		out[d.InvoiceID] = append(out[d.InvoiceID], d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invoice details: %w", err)
	}
	return out, nil
}

func scanInvoice(row pgx.Row) (*domain.Invoice, error) {
	inv := &domain.Invoice{}
	err := row.Scan(
		&inv.ID, &inv.Reference, &inv.StructureID, &inv.Creation,
		&inv.StartDate, &inv.EndDate, &inv.Total, &inv.Paid, &inv.Received,
	)
	if err != nil {
		return nil, err
	}
	return inv, nil
}
