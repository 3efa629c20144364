package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/SAP-F-2025/authuser-service/internal/models"
)

// UserFilters defines the optional criteria for user list queries
type UserFilters struct {
	Email  string             // substring match on email
	Status *models.UserStatus // exact match
	Type   *models.UserType   // exact match
}

// PageRequest carries explicit pagination parameters. Page is zero-based,
// matching the public API contract.
type PageRequest struct {
	Page    int
	Size    int
	SortBy  string // whitelisted column name
	SortDir string // "asc" or "desc"
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultSortBy   = "user_id"
)

// Normalize clamps the page request to safe defaults
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 || p.Size > MaxPageSize {
		p.Size = DefaultPageSize
	}
	if p.SortBy == "" {
		p.SortBy = DefaultSortBy
	}
	if p.SortDir != "desc" {
		p.SortDir = "asc"
	}
	return p
}

func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// UserRepository is the persistence contract for user records
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns one page of users matching the filters plus the total
	// count across all pages. An empty page is a valid outcome.
	List(ctx context.Context, filters UserFilters, page PageRequest) ([]*models.User, int64, error)

	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
