// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/wrapped/internal/models"
)

// MockFetcher is a test double for [services.Fetcher] that records calls.
type MockFetcher struct {
	mu      sync.Mutex
	Summary *models.UserSummary
	Err     error
	// Gate, when set, blocks Fetch until it is closed.
	Gate  chan struct{}
	calls []string
}

func (m *MockFetcher) Fetch(ctx context.Context, profileURL string) (*models.UserSummary, error) {
	m.mu.Lock()
	m.calls = append(m.calls, profileURL)
	gate := m.Gate
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return m.Summary, m.Err
}

func (m *MockFetcher) Name() string { return "mock" }

// Calls returns the number of Fetch calls.
func (m *MockFetcher) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// URLs returns the profile URLs passed to Fetch, in call order.
func (m *MockFetcher) URLs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// NewSummary builds a valid summary with n slides.
func NewSummary(username, rank string, n int) *models.UserSummary {
	insights := make([]models.SlideDescriptor, n)
	for i := range insights {
		insights[i] = models.SlideDescriptor{
			Title:           fmt.Sprintf("SLIDE %d", i+1),
			Body:            fmt.Sprintf("Body of slide %d", i+1),
			Emoji:           "⚡",
			BackgroundColor: "#121212",
			TextColor:       "#FFFFFF",
			AccentColor:     "#1DB954",
		}
	}
	return &models.UserSummary{
		Username:   username,
		RankLabel:  rank,
		ProfileURL: "r10.net/profil/" + username,
		Insights:   insights,
	}
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
