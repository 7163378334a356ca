package postgres

import (
	"context"
	"errors"
	"fmt"

	"mypayment-ledger/internal/core/domain"
	"mypayment-ledger/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// StructureRepo implements ports.StructureRepository.
type StructureRepo struct {
	pool Pool
}

// NewStructureRepo creates a new StructureRepo.
func NewStructureRepo(pool Pool) *StructureRepo {
	return &StructureRepo{pool: pool}
}

// GetByID fetches a structure and its administrators.
func (r *StructureRepo) GetByID(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Structure, error) {
	query := `SELECT id, short_id, name, manager_user_id, association_membership_id,
		siege_address_street, siege_address_city, siege_address_zipcode, siege_address_country,
		siret, iban, bic, creation
		FROM structures WHERE id = $1`

	q := on(r.pool, tx)
	s := &domain.Structure{}
	err := q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.ShortID, &s.Name, &s.ManagerUserID, &s.AssociationMembershipID,
		&s.SiegeAddressStreet, &s.SiegeAddressCity, &s.SiegeAddressZipcode, &s.SiegeAddressCountry,
		&s.Siret, &s.IBAN, &s.BIC, &s.Creation,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get structure by id: %w", err)
	}

	rows, err := q.Query(ctx, `SELECT user_id FROM structure_administrators WHERE structure_id = $1 ORDER BY user_id`, id)
	if err != nil {
		return nil, fmt.Errorf("list structure administrators: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("scan structure administrator: %w", err)
		}
		s.AdministratorIDs = append(s.AdministratorIDs, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate structure administrators: %w", err)
	}
	return s, nil
}

// AddAdministrator grants userID administrator rights on the structure.
func (r *StructureRepo) AddAdministrator(ctx context.Context, tx pgx.Tx, structureID uuid.UUID, userID string) error {
	query := `INSERT INTO structure_administrators (structure_id, user_id) VALUES ($1, $2)`

	if _, err := tx.Exec(ctx, query, structureID, userID); err != nil {
		if isUniqueViolation(err) {
			return apperror.ErrAlreadyExists("Structure administrator")
		}
		return fmt.Errorf("insert structure administrator: %w", err)
	}
	return nil
}

// RemoveAdministrator revokes userID's administrator rights on the structure.
func (r *StructureRepo) RemoveAdministrator(ctx context.Context, tx pgx.Tx, structureID uuid.UUID, userID string) error {
	query := `DELETE FROM structure_administrators WHERE structure_id = $1 AND user_id = $2`

	if _, err := tx.Exec(ctx, query, structureID, userID); err != nil {
		return fmt.Errorf("delete structure administrator: %w", err)
	}
	return nil
}
