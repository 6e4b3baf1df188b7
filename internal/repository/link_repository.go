package repository

import (
	"context"

	"github.com/Zfocc31/mern-url-shortener/internal/domain"
)

// LinkRepository defines the contract for link data access
// This interface allows us to swap implementations (PostgreSQL, MySQL, SQLite, etc.)
// without changing business logic
type LinkRepository interface {
	// Create stores a new link. Returns domain.ErrDuplicateCode when the
	// short code is already taken and domain.ErrDuplicateURL when another
	// record for the same original URL won the insert race; both are
	// enforced by unique constraints, not application-level checks.
	Create(ctx context.Context, link *domain.Link) error

	// FindByShortCode retrieves a link by its short code
	FindByShortCode(ctx context.Context, shortCode string) (*domain.Link, error)

	// FindByOriginalURL checks if an original URL already has a short code.
	// Exact-string match, no normalization.
	FindByOriginalURL(ctx context.Context, originalURL string) (*domain.Link, error)

	// IncrementClicks atomically adds one to the click counter and returns
	// the updated record. Must be a single storage-level update so
	// concurrent redirects never lose counts.
	IncrementClicks(ctx context.Context, id uint) (*domain.Link, error)

	// ListRecentFirst returns all links ordered by creation time descending
	ListRecentFirst(ctx context.Context) ([]domain.Link, error)
}
