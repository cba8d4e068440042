package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// FailedLoginRepository is the append-only ledger of unsuccessful and blocked
// authentication attempts. Entries are never updated or deleted here; the
// throttle only reads them in aggregate.
type FailedLoginRepository struct {
	pool *pgxpool.Pool
}

func NewFailedLoginRepository(pool *pgxpool.Pool) *FailedLoginRepository {
	return &FailedLoginRepository{pool: pool}
}

func (r *FailedLoginRepository) Record(ctx context.Context, address string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO failed_logins (address, occurred_at) VALUES ($1, $2)`,
		address, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("record failed login: %w", err)
	}
	return nil
}

// CountSince counts entries for address with occurred_at strictly after since.
func (r *FailedLoginRepository) CountSince(ctx context.Context, address string, since time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM failed_logins WHERE address = $1 AND occurred_at > $2`,
		address, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count failed logins: %w", err)
	}
	return count, nil
}
