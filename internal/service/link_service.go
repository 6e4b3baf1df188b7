package service

import (
	"context"

	"github.com/Zfocc31/mern-url-shortener/internal/domain"
)

// LinkService defines the business logic interface for link operations
// This layer orchestrates the code generator, repository and cache
type LinkService interface {
	// Shorten returns the link record for originalURL, creating it on
	// first request. The bool reports whether a new record was created;
	// repeat calls for the same URL return the existing record unchanged.
	Shorten(ctx context.Context, originalURL string) (*domain.Link, bool, error)

	// Resolve maps a short code to its original URL and counts the click.
	// Returns domain.ErrLinkNotFound for unissued codes.
	Resolve(ctx context.Context, shortCode string) (string, error)

	// List returns all link records, newest first
	List(ctx context.Context) ([]domain.Link, error)
}
