package port

import (
	"context"

	"freq/internal/domain"
)

// PageFetcher reads and parses the page at uri.
type PageFetcher interface {
	Fetch(ctx context.Context, uri string) (*domain.Page, error)
}
