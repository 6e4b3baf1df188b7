package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Zfocc31/mern-url-shortener/internal/cache"
	"github.com/Zfocc31/mern-url-shortener/internal/config"
	"github.com/Zfocc31/mern-url-shortener/internal/domain"
	"github.com/Zfocc31/mern-url-shortener/internal/repository"
	"github.com/Zfocc31/mern-url-shortener/internal/shortener"
	"github.com/Zfocc31/mern-url-shortener/pkg/logger"
)

// maxCodeRetries bounds the regenerate-and-retry loop when a freshly
// generated code collides with an existing one
const maxCodeRetries = 5

// cachedLink is the value stored in the redirect cache; the record id is
// carried along so a cache hit can still increment the click counter
type cachedLink struct {
	ID          uint   `json:"id"`
	OriginalURL string `json:"originalUrl"`
}

// linkService implements the LinkService interface
type linkService struct {
	repo      repository.LinkRepository
	cache     cache.Cache
	cfg       *config.Config
	logger    *logger.Logger
	generator *shortener.CodeGenerator
}

// NewLinkService creates a new link service with dependencies injected.
// cache may be nil; the service then works directly against the repository.
func NewLinkService(
	repo repository.LinkRepository,
	cache cache.Cache,
	cfg *config.Config,
	logger *logger.Logger,
) LinkService {
	return &linkService{
		repo:      repo,
		cache:     cache,
		cfg:       cfg,
		logger:    logger,
		generator: shortener.NewCodeGenerator(cfg.ShortCodeLength),
	}
}

// Shorten creates a short link for originalURL, or returns the existing
// record when the URL was shortened before. The URL is stored exactly as
// submitted; dedup is exact-string match with no normalization.
func (s *linkService) Shorten(ctx context.Context, originalURL string) (*domain.Link, bool, error) {
	if originalURL == "" {
		return nil, false, domain.NewValidationError("originalUrl is required")
	}

	// Dedup fast path: one record per distinct original URL
	existing, err := s.repo.FindByOriginalURL(ctx, originalURL)
	if err == nil {
		s.logger.Info("URL already shortened, returning existing", "short_code", existing.ShortCode)
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrLinkNotFound) {
		s.logger.Error("Failed to look up original URL", "error", err)
		return nil, false, err
	}

	// Generate a candidate code and insert; the unique constraints close
	// the check-then-act windows for both the code and the URL
	for attempt := 1; attempt <= maxCodeRetries; attempt++ {
		link := &domain.Link{
			OriginalURL: originalURL,
			ShortCode:   s.generator.Generate(),
			Clicks:      0,
		}

		err := s.repo.Create(ctx, link)
		switch {
		case err == nil:
			s.cacheFill(ctx, link)
			s.logger.Info("URL shortened", "short_code", link.ShortCode, "original_url", originalURL)
			return link, true, nil

		case errors.Is(err, domain.ErrDuplicateURL):
			// Lost the insert race to a concurrent create for the same
			// URL; the winner's record is the answer, not an error
			winner, findErr := s.repo.FindByOriginalURL(ctx, originalURL)
			if findErr != nil {
				s.logger.Error("Failed to fetch record after URL conflict", "error", findErr)
				return nil, false, findErr
			}
			return winner, false, nil

		case errors.Is(err, domain.ErrDuplicateCode):
			s.logger.Warn("Short code collision, retrying",
				"short_code", link.ShortCode,
				"attempt", attempt,
			)

		default:
			s.logger.Error("Failed to create link", "error", err)
			return nil, false, err
		}
	}

	s.logger.Error("Exhausted short code generation retries", "attempts", maxCodeRetries)
	return nil, false, domain.NewInternalError(domain.ErrCodeGenExhausted)
}

// Resolve returns the original URL for shortCode and records the click.
// Uses cache-aside on the hot path; the click increment is fire-and-forget
// so a slow or failing counter update never delays the redirect.
func (s *linkService) Resolve(ctx context.Context, shortCode string) (string, error) {
	// Codes our generator could never have issued (favicon requests,
	// crawler probes) are rejected without touching cache or store
	if !s.generator.IsValid(shortCode) {
		return "", domain.ErrLinkNotFound
	}

	if s.cache != nil {
		raw, err := s.cache.Get(ctx, shortCode)
		if err != nil {
			s.logger.Warn("Cache lookup failed", "error", err, "short_code", shortCode)
		} else if raw != "" {
			var cached cachedLink
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				s.countClick(cached.ID, shortCode)
				return cached.OriginalURL, nil
			}
			s.logger.Warn("Dropping undecodable cache entry", "short_code", shortCode)
		}
	}

	link, err := s.repo.FindByShortCode(ctx, shortCode)
	if err != nil {
		if errors.Is(err, domain.ErrLinkNotFound) {
			s.logger.Info("Short code not found", "short_code", shortCode)
		}
		return "", err
	}

	s.countClick(link.ID, shortCode)
	s.cacheFill(ctx, link)

	return link.OriginalURL, nil
}

// List returns all link records, newest first
func (s *linkService) List(ctx context.Context) ([]domain.Link, error) {
	return s.repo.ListRecentFirst(ctx)
}

// countClick increments the click counter in the background. A fresh
// context is used so the increment completes even if the client has
// already disconnected.
func (s *linkService) countClick(id uint, shortCode string) {
	go func() {
		if _, err := s.repo.IncrementClicks(context.Background(), id); err != nil {
			s.logger.Error("Failed to increment clicks", "error", err, "short_code", shortCode)
		}
	}()
}

// cacheFill stores a link in the redirect cache, best effort
func (s *linkService) cacheFill(ctx context.Context, link *domain.Link) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(cachedLink{ID: link.ID, OriginalURL: link.OriginalURL})
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, link.ShortCode, string(raw), s.cfg.CacheTTL); err != nil {
		s.logger.Warn("Failed to cache link", "error", err, "short_code", link.ShortCode)
	}
}
