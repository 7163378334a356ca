package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// MembershipRepo implements ports.MembershipRepository.
type MembershipRepo struct {
	pool Pool
}

// NewMembershipRepo creates a new MembershipRepo.
func NewMembershipRepo(pool Pool) *MembershipRepo {
	return &MembershipRepo{pool: pool}
}

// HasValidMembership reports whether the user holds a membership of the given
// association covering the date of at.
func (r *MembershipRepo) HasValidMembership(ctx context.Context, tx pgx.Tx, userID string, associationMembershipID uuid.UUID, at time.Time) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM memberships
		WHERE user_id = $1 AND association_membership_id = $2 AND start_date <= $3::date AND end_date >= $3::date)`

	var exists bool
	err := on(r.pool, tx).QueryRow(ctx, query, userID, associationMembershipID, at).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check membership: %w", err)
	}
	return exists, nil
}
