package ports

import (
	"context"

	"github.com/usermgmt/user-management-api/internal/core/domain"
)

// CreateUserInput is one entry of an admin batch-create request.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	// Roles replaces the default role set when non-empty.
	Roles []string
}

// UpdateUserInput carries a full-record update. Name and Email always
// replace the stored values. Password is re-hashed only when non-empty.
// Roles replaces the stored set wholesale only when non-empty; partial
// role edits are not supported.
type UpdateUserInput struct {
	Name     string
	Email    string
	Password string
	Roles    []string
}

// PageInput carries the raw pagination query parameters.
type PageInput struct {
	Page int
	Size int
	// Sort is "field,asc" or "field,desc" (e.g. "name,asc").
	Sort string
}

// PageResult is one page of users plus the pagination envelope.
// JSON tags allow the whole result to be cached verbatim.
type PageResult struct {
	Content       []*domain.User `json:"content"`
	Page          int            `json:"page"`
	Size          int            `json:"size"`
	TotalElements int64          `json:"total_elements"`
	TotalPages    int            `json:"total_pages"`
}

// UserService defines the CRUD use-cases over user records.
type UserService interface {
	CreateBatch(ctx context.Context, in []CreateUserInput) ([]*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Page(ctx context.Context, in PageInput) (*PageResult, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
