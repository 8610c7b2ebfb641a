package listing

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Repo persists confirmed listings to Postgres.
type Repo struct {
	db *sqlx.DB
}

// NewRepo wires the repository.
func NewRepo(db *sqlx.DB) *Repo {
	return &Repo{db: db}
}

const insertListing = `
INSERT INTO listings (
	id, party_id, display_name, house_type, has_cat,
	single_count, rent_single, double_count, rent_double,
	triple_count, rent_triple, student_age, created_at
) VALUES (
	:id, :party_id, :display_name, :house_type, :has_cat,
	:single_count, :rent_single, :double_count, :rent_double,
	:triple_count, :rent_triple, :student_age, :created_at
)`

// Insert stores one confirmed listing.
func (r *Repo) Insert(ctx context.Context, l Listing) error {
	if _, err := r.db.NamedExecContext(ctx, insertListing, l); err != nil {
		return fmt.Errorf("insert listing: %w", err)
	}
	return nil
}

// CountByParty reports how many listings a party has confirmed.
func (r *Repo) CountByParty(ctx context.Context, partyID string) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM listings WHERE party_id = $1`, partyID); err != nil {
		return 0, fmt.Errorf("count listings: %w", err)
	}
	return n, nil
}
