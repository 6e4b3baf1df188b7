package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Zfocc31/mern-url-shortener/internal/domain"
	"github.com/Zfocc31/mern-url-shortener/internal/repository"
)

// uniqueViolation is the SQLSTATE for unique constraint violations
const uniqueViolation = "23505"

// linkRepository implements the LinkRepository interface for PostgreSQL
type linkRepository struct {
	db *gorm.DB
}

// NewLinkRepository creates a new PostgreSQL link repository
func NewLinkRepository(db *gorm.DB) repository.LinkRepository {
	return &linkRepository{db: db}
}

// Create inserts a new link record into the database.
// The unique indexes on short_code and original_url are the source of
// truth for both invariants; duplicate-key errors are translated into the
// matching domain error by inspecting the violated constraint.
func (r *linkRepository) Create(ctx context.Context, link *domain.Link) error {
	result := r.db.WithContext(ctx).Create(link)
	if result.Error != nil {
		if dupErr := translateDuplicate(result.Error); dupErr != nil {
			return dupErr
		}
		return storeFault(result.Error)
	}
	return nil
}

// FindByShortCode retrieves a link by its short code
// Returns ErrLinkNotFound if the code doesn't exist
func (r *linkRepository) FindByShortCode(ctx context.Context, shortCode string) (*domain.Link, error) {
	var link domain.Link

	result := r.db.WithContext(ctx).
		Where("short_code = ?", shortCode).
		First(&link)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLinkNotFound
		}
		return nil, storeFault(result.Error)
	}

	return &link, nil
}

// FindByOriginalURL looks up the record for an already-shortened URL.
// Exact string comparison, served by the unique index on original_url.
func (r *linkRepository) FindByOriginalURL(ctx context.Context, originalURL string) (*domain.Link, error) {
	var link domain.Link

	result := r.db.WithContext(ctx).
		Where("original_url = ?", originalURL).
		First(&link)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLinkNotFound
		}
		return nil, storeFault(result.Error)
	}

	return &link, nil
}

// IncrementClicks atomically increments the click counter in a single
// UPDATE ... RETURNING statement, so concurrent redirects of the same code
// never lose counts to a read-modify-write race.
func (r *linkRepository) IncrementClicks(ctx context.Context, id uint) (*domain.Link, error) {
	var link domain.Link

	result := r.db.WithContext(ctx).
		Model(&link).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		UpdateColumn("clicks", gorm.Expr("clicks + ?", 1))

	if result.Error != nil {
		return nil, storeFault(result.Error)
	}

	if result.RowsAffected == 0 {
		return nil, domain.ErrLinkNotFound
	}

	return &link, nil
}

// ListRecentFirst returns every link, newest first. The id tiebreak keeps
// ordering stable when two rows share a created_at timestamp.
func (r *linkRepository) ListRecentFirst(ctx context.Context) ([]domain.Link, error) {
	var links []domain.Link

	result := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&links)

	if result.Error != nil {
		return nil, storeFault(result.Error)
	}

	return links, nil
}

// storeFault classifies a failed statement: errors carrying a SQLSTATE
// were rejected by a reachable server (an internal fault), anything else
// is a transport-level failure and surfaces as store-unavailable
func storeFault(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return domain.NewInternalError(err)
	}
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}

// translateDuplicate maps a unique-violation error onto the domain error
// for the constraint that was hit. Returns nil for non-duplicate errors.
func translateDuplicate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		if strings.Contains(pgErr.ConstraintName, "original_url") {
			return domain.ErrDuplicateURL
		}
		return domain.ErrDuplicateCode
	}

	// GORM's own duplicate detection, for drivers without SQLSTATE detail
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicateCode
	}

	return nil
}
