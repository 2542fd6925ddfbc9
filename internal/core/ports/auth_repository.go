package ports

import (
	"context"

	"github.com/bookinglab/admin-portal/internal/core/domain"
)

// AuthRepository defines the interface for admin credential persistence.
type AuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
