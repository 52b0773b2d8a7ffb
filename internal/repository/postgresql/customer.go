package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"

	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/db"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/repository"
)

// CustomerRepo is the read side of the external user directory.
type CustomerRepo struct {
	db db.DB
}

func NewCustomerRepo(db db.DB) *CustomerRepo {
	return &CustomerRepo{db: db}
}

func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*repository.Customer, error) {
	var c repository.Customer
	err := r.db.Get(ctx, &c, "SELECT id, full_name, phone, email FROM customers WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepo) Upsert(ctx context.Context, c *repository.Customer) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO customers (id, full_name, phone, email) VALUES ($1, $2, $3, $4)
        ON CONFLICT (id) DO UPDATE SET full_name = EXCLUDED.full_name, phone = EXCLUDED.phone, email = EXCLUDED.email
    `, c.ID, c.FullName, c.Phone, c.Email)
	if err != nil {
		return fmt.Errorf("failed to upsert customer: %w", err)
	}
	return nil
}
