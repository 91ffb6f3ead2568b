// package services defines interface Fetcher for producing wrapped summaries
package services

import (
	"context"

	"github.com/desertthunder/wrapped/internal/models"
)

// Fetcher produces the wrapped summary for a forum profile.
type Fetcher interface {
	// Fetch returns a validated summary for profileURL.
	// Any failure is returned as an error wrapping shared.ErrFetchFailed.
	Fetch(ctx context.Context, profileURL string) (*models.UserSummary, error)

	// Name returns the name of the backing provider (e.g., "Gemini")
	Name() string
}

// FetcherFunc adapts a function to the [Fetcher] interface.
type FetcherFunc func(ctx context.Context, profileURL string) (*models.UserSummary, error)

func (f FetcherFunc) Fetch(ctx context.Context, profileURL string) (*models.UserSummary, error) {
	return f(ctx, profileURL)
}

func (f FetcherFunc) Name() string { return "func" }
