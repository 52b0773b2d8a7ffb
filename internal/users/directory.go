//go:generate mockgen -source=directory.go -destination=mocks/directory.go -package=mock_users
package users

import (
	"context"
	"net/mail"
	"strings"

	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/apperrors"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/repository"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*repository.Customer, error)
	Upsert(ctx context.Context, c *repository.Customer) error
}

// Directory keeps a local copy of customer profiles pushed by the external
// identity service. Custody reads it to verify who picks up luggage.
type Directory struct {
	repo Repository
}

func NewDirectory(repo Repository) *Directory {
	return &Directory{repo: repo}
}

func (d *Directory) GetByID(ctx context.Context, id string) (*repository.Customer, error) {
	return d.repo.GetByID(ctx, strings.TrimSpace(id))
}

// Sync stores the profile, replacing an earlier copy.
func (d *Directory) Sync(ctx context.Context, c repository.Customer) (*repository.Customer, error) {
	c.ID = strings.TrimSpace(c.ID)
	c.FullName = strings.TrimSpace(c.FullName)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Email = strings.TrimSpace(c.Email)

	switch {
	case c.ID == "":
		return nil, apperrors.NewInvalidRequest("customer id is required")
	case c.FullName == "":
		return nil, apperrors.NewInvalidRequest("full name is required")
	case c.Phone == "" && c.Email == "":
		return nil, apperrors.NewInvalidRequest("phone or email is required")
	}
	if c.Email != "" {
		if _, err := mail.ParseAddress(c.Email); err != nil {
			return nil, apperrors.NewInvalidRequest("invalid email")
		}
	}

	if err := d.repo.Upsert(ctx, &c); err != nil {
		return nil, err
	}
	return &c, nil
}
