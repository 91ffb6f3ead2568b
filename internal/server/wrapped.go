package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/wrapped/internal/models"
	"github.com/desertthunder/wrapped/internal/services"
	"github.com/desertthunder/wrapped/internal/session"
	"golang.org/x/sync/singleflight"
)

const maxRequestBody = 4 << 10

// WrappedRequest is the body of POST /api/wrapped.
type WrappedRequest struct {
	ProfileURL string `json:"profile_url"`
}

// WrappedHandler serves wrapped summaries over HTTP.
// Implements the [Handler] interface for registration with a [Router].
type WrappedHandler struct {
	fetcher services.Fetcher
	domain  string
	logger  *log.Logger
	group   singleflight.Group
}

// NewWrappedHandler creates a handler that accepts links on domain (default r10.net).
func NewWrappedHandler(fetcher services.Fetcher, domain string, logger *log.Logger) *WrappedHandler {
	if domain == "" {
		domain = session.DefaultProfileDomain
	}
	return &WrappedHandler{fetcher: fetcher, domain: domain, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *WrappedHandler) Routes() []string {
	return []string{"POST /api/wrapped"}
}

// ServeHTTP validates the link, fetches the summary and writes it as JSON.
func (h *WrappedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req WrappedRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Request body must be JSON with a profile_url field.")
		return
	}

	profileURL, err := session.ValidateProfileURL(req.ProfileURL, h.domain)
	if err != nil {
		h.logger.Debug("rejected profile link", "error", err)
		writeError(w, http.StatusBadRequest, session.ValidationMessageFor(h.domain))
		return
	}

	// The fetch outlives any single caller since others may be waiting on it.
	ctx := context.WithoutCancel(r.Context())
	v, err, shared := h.group.Do(profileURL, func() (any, error) {
		return h.fetcher.Fetch(ctx, profileURL)
	})
	if err != nil {
		h.logger.Error("wrapped fetch failed", "profile", profileURL, "error", err)
		writeError(w, http.StatusBadGateway, session.FailureMessageFor(h.domain))
		return
	}

	summary, ok := v.(*models.UserSummary)
	if !ok || summary == nil {
		h.logger.Error("wrapped fetch returned no summary", "profile", profileURL)
		writeError(w, http.StatusBadGateway, session.FailureMessageFor(h.domain))
		return
	}

	if shared {
		w.Header().Set("X-Wrapped-Shared", "true")
	}
	writeJSON(w, http.StatusOK, summary)
}
