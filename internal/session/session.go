package session

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/desertthunder/wrapped/internal/models"
	"github.com/desertthunder/wrapped/internal/shared"
)

// Phase is the screen the session is on.
type Phase int

const (
	Landing Phase = iota
	Loading
	Experience
	Error
)

func (p Phase) String() string {
	switch p {
	case Landing:
		return "landing"
	case Loading:
		return "loading"
	case Experience:
		return "experience"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

const DefaultProfileDomain = "r10.net"

var (
	DefaultValidationMessage = ValidationMessageFor(DefaultProfileDomain)
	DefaultFailureMessage    = FailureMessageFor(DefaultProfileDomain)
)

// ValidationMessageFor returns the message shown when a link is not on domain.
func ValidationMessageFor(domain string) string {
	return fmt.Sprintf("Please enter a valid %s profile link.", domain)
}

// FailureMessageFor returns the message shown when a fetch for a domain profile fails.
func FailureMessageFor(domain string) string {
	return fmt.Sprintf("Could not load your data. The %s servers may be down or the profile may be private.", domain)
}

// Options configures a [Session].
type Options struct {
	ID                string
	ProfileDomain     string
	LoadingMessages   []string
	ValidationMessage string
	FailureMessage    string
}

// Request is a fetch the caller must perform after a successful [Session.Submit].
type Request struct {
	Attempt    int
	ProfileURL string
}

// Session holds the state of a single visit.
type Session struct {
	id         string
	opts       Options
	phase      Phase
	profileURL string
	validation string
	errMessage string
	result     *models.UserSummary
	index      int
	attempt    int
	revision   int

	tickerActive bool
	tickerGen    int
	loadingStep  int
}

// New creates a [Session] in the Landing phase. Empty options fall back to defaults.
func New(opts Options) *Session {
	if opts.ID == "" {
		opts.ID = shared.GenerateID()
	}
	if opts.ProfileDomain == "" {
		opts.ProfileDomain = DefaultProfileDomain
	}
	if len(opts.LoadingMessages) == 0 {
		opts.LoadingMessages = []string{"Loading..."}
	}
	if opts.ValidationMessage == "" {
		opts.ValidationMessage = ValidationMessageFor(opts.ProfileDomain)
	}
	if opts.FailureMessage == "" {
		opts.FailureMessage = FailureMessageFor(opts.ProfileDomain)
	}
	opts.LoadingMessages = append([]string(nil), opts.LoadingMessages...)

	return &Session{id: opts.ID, opts: opts, phase: Landing}
}

// ValidateProfileURL trims raw and checks that it contains domain, ignoring case.
// The error wraps [shared.ErrInvalidProfileURL].
func ValidateProfileURL(raw, domain string) (string, error) {
	clean := strings.TrimSpace(raw)
	if clean == "" {
		return "", fmt.Errorf("%w: empty", shared.ErrInvalidProfileURL)
	}
	if !strings.Contains(strings.ToLower(clean), strings.ToLower(domain)) {
		return "", fmt.Errorf("%w: %q does not contain %s", shared.ErrInvalidProfileURL, clean, domain)
	}
	return clean, nil
}

// Submit validates raw and, when valid, moves to Loading and returns the fetch to perform.
//
// Returns false without changing phase when a fetch is already in flight, when the
// session is showing slides, or when raw fails validation (a validation message is set).
func (s *Session) Submit(raw string) (Request, bool) {
	if s.phase != Landing && s.phase != Error {
		return Request{}, false
	}

	clean, err := ValidateProfileURL(raw, s.opts.ProfileDomain)
	if err != nil {
		s.validation = s.opts.ValidationMessage
		s.touch()
		return Request{}, false
	}

	s.validation = ""
	s.errMessage = ""
	s.result = nil
	s.index = 0
	s.profileURL = clean
	s.phase = Loading
	s.attempt++
	s.startTicker()
	s.touch()

	return Request{Attempt: s.attempt, ProfileURL: clean}, true
}

// Complete delivers the outcome of the fetch for attempt.
//
// Stale attempts and calls outside Loading are ignored and return false.
// A nil error with a summary that fails validation is treated as a failed fetch.
func (s *Session) Complete(attempt int, summary *models.UserSummary, err error) bool {
	if s.phase != Loading || attempt != s.attempt {
		return false
	}

	s.stopTicker()

	if err == nil {
		err = summary.Validate()
	}

	if err != nil {
		s.phase = Error
		s.errMessage = s.opts.FailureMessage
		s.result = nil
		s.index = 0
		s.touch()
		return true
	}

	s.result = summary
	s.index = 0
	s.phase = Experience
	s.touch()
	return true
}

// Tick advances the loading message when generation belongs to the running ticker.
// Returns true when the caller should schedule the next tick.
func (s *Session) Tick(generation int) bool {
	if !s.tickerActive || generation != s.tickerGen {
		return false
	}
	s.loadingStep = (s.loadingStep + 1) % len(s.opts.LoadingMessages)
	s.touch()
	return true
}

// GoToNext moves to the next slide, stopping at the last one.
func (s *Session) GoToNext() {
	if s.phase != Experience {
		return
	}
	s.setIndex(min(s.index+1, s.LastIndex()))
}

// GoToPrevious moves to the previous slide, stopping at the first one.
func (s *Session) GoToPrevious() {
	if s.phase != Experience {
		return
	}
	s.setIndex(max(s.index-1, 0))
}

// OnPositionReport derives the slide index from a continuous offset.
// Returns true when the index changed.
func (s *Session) OnPositionReport(rawOffset, viewportWidth float64) bool {
	if s.phase != Experience || viewportWidth <= 0 || math.IsNaN(rawOffset) {
		return false
	}
	idx := DeriveIndex(rawOffset, viewportWidth, s.LastIndex())
	return s.setIndex(idx)
}

// DeriveIndex maps an offset to round(offset/width) clamped to [0, last].
func DeriveIndex(rawOffset, viewportWidth float64, last int) int {
	if viewportWidth <= 0 || last < 0 {
		return 0
	}
	ratio := math.Round(rawOffset / viewportWidth)
	if math.IsNaN(ratio) {
		return 0
	}
	// Clamp before converting so infinite or huge ratios stay in range.
	return int(max(0, min(ratio, float64(last))))
}

// Reset returns from Experience to a fresh Landing phase.
func (s *Session) Reset() {
	if s.phase != Experience {
		return
	}
	s.phase = Landing
	s.profileURL = ""
	s.result = nil
	s.index = 0
	s.validation = ""
	s.errMessage = ""
	s.touch()
}

// IsFinalSlide reports whether the last slide is showing.
func (s *Session) IsFinalSlide() bool {
	return s.phase == Experience && s.index == s.LastIndex()
}

func (s *Session) ID() string                  { return s.id }
func (s *Session) Phase() Phase                { return s.phase }
func (s *Session) ProfileURL() string          { return s.profileURL }
func (s *Session) ProfileDomain() string       { return s.opts.ProfileDomain }
func (s *Session) ValidationMessage() string   { return s.validation }
func (s *Session) ErrorMessage() string        { return s.errMessage }
func (s *Session) Result() *models.UserSummary { return s.result }
func (s *Session) CurrentIndex() int           { return s.index }
func (s *Session) Attempt() int                { return s.attempt }
func (s *Session) TickerActive() bool          { return s.tickerActive }
func (s *Session) TickerGeneration() int       { return s.tickerGen }
func (s *Session) LoadingStep() int            { return s.loadingStep }

// Revision counts state updates. Useful for detecting redundant re-renders.
func (s *Session) Revision() int { return s.revision }

// LastIndex returns the index of the final slide, or -1 without a result.
func (s *Session) LastIndex() int { return s.result.LastIndex() }

// LoadingMessage returns the message the loading screen should show.
func (s *Session) LoadingMessage() string {
	return s.opts.LoadingMessages[s.loadingStep]
}

// Insight returns the slide at i.
func (s *Session) Insight(i int) (models.SlideDescriptor, error) {
	if s.result == nil || i < 0 || i > s.LastIndex() {
		return models.SlideDescriptor{}, errors.New("slide index out of range")
	}
	return s.result.Insights[i], nil
}

func (s *Session) setIndex(i int) bool {
	if i == s.index {
		return false
	}
	s.index = i
	s.touch()
	return true
}

func (s *Session) startTicker() {
	s.tickerGen++
	s.tickerActive = true
	s.loadingStep = 0
}

func (s *Session) stopTicker() {
	s.tickerGen++
	s.tickerActive = false
}

func (s *Session) touch() { s.revision++ }
