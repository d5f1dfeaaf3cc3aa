package ports

import (
	"context"

	"github.com/usermgmt/user-management-api/internal/core/domain"
)

// PageQuery carries pagination and sorting parameters for listing users.
type PageQuery struct {
	Page      int    `json:"page"`       // 0-based
	Size      int    `json:"size"`       // rows per page (capped by the service)
	SortField string `json:"sort_field"` // one of: name, email, created_at
	SortAsc   bool   `json:"sort_asc"`
}

// UserRepository defines persistence operations for user records.
//
// Implementations translate "no such record" to domain.ErrUserNotFound,
// uniqueness violations on email to domain.ErrEmailTaken, and every other
// backend failure to an error wrapping domain.ErrStoreUnavailable. The
// email uniqueness constraint is the store's, not the application's:
// concurrent writers race on it and exactly one wins.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// CreateMany is all-or-nothing: any duplicate email, inside the batch
	// or against stored records, persists none of the batch.
	CreateMany(ctx context.Context, users []*domain.User) ([]*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindAll(ctx context.Context) ([]*domain.User, error)
	// FindPage returns one page of users plus the total record count.
	FindPage(ctx context.Context, q PageQuery) ([]*domain.User, int64, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
