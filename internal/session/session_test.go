package session

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/desertthunder/wrapped/internal/models"
	"github.com/desertthunder/wrapped/internal/shared"
)

var testMessages = []string{"one", "two", "three"}

func newSummary(n int) *models.UserSummary {
	insights := make([]models.SlideDescriptor, n)
	for i := range insights {
		insights[i] = models.SlideDescriptor{
			Title:           fmt.Sprintf("Slide %d", i+1),
			Body:            "body",
			Emoji:           "⚡",
			BackgroundColor: "#000000",
			TextColor:       "#FFFFFF",
			AccentColor:     "#1DB954",
		}
	}
	return &models.UserSummary{Username: "ahmet", RankLabel: "iTrader İmparatoru", Insights: insights}
}

func newTestSession() *Session {
	return New(Options{ID: "test", LoadingMessages: testMessages})
}

// experience returns a session showing a summary with n slides.
func experience(t *testing.T, n int) *Session {
	t.Helper()
	s := newTestSession()
	req, ok := s.Submit("r10.net/profil/ahmet")
	if !ok {
		t.Fatal("expected submit to succeed")
	}
	if !s.Complete(req.Attempt, newSummary(n), nil) {
		t.Fatal("expected completion to be accepted")
	}
	return s
}

func TestNew(t *testing.T) {
	t.Run("starts in Landing", func(t *testing.T) {
		s := New(Options{})
		if s.Phase() != Landing {
			t.Errorf("expected Landing, got %v", s.Phase())
		}
		if s.ID() == "" {
			t.Error("expected generated ID")
		}
		if s.TickerActive() {
			t.Error("expected ticker to be inactive")
		}
		if s.Result() != nil || s.LastIndex() != -1 {
			t.Error("expected no result")
		}
	})

	t.Run("copies loading messages", func(t *testing.T) {
		msgs := []string{"a", "b"}
		s := New(Options{LoadingMessages: msgs})
		msgs[0] = "changed"
		if s.LoadingMessage() != "a" {
			t.Errorf("expected a, got %s", s.LoadingMessage())
		}
	})

	t.Run("default messages name the configured domain", func(t *testing.T) {
		s := New(Options{ProfileDomain: "forum.example.org", LoadingMessages: testMessages})
		if s.ProfileDomain() != "forum.example.org" {
			t.Errorf("expected forum.example.org, got %s", s.ProfileDomain())
		}

		s.Submit("https://r10.net/profil/ahmet")
		if msg := s.ValidationMessage(); !strings.Contains(msg, "forum.example.org") || strings.Contains(msg, "r10.net") {
			t.Errorf("expected validation message for forum.example.org, got %q", msg)
		}

		req, _ := s.Submit("https://forum.example.org/u/ahmet")
		s.Complete(req.Attempt, nil, errors.New("boom"))
		if msg := s.ErrorMessage(); !strings.Contains(msg, "forum.example.org") {
			t.Errorf("expected failure message for forum.example.org, got %q", msg)
		}
	})
}

func TestPhaseString(t *testing.T) {
	for p, want := range map[Phase]string{Landing: "landing", Loading: "loading", Experience: "experience", Error: "error", Phase(9): "phase(9)"} {
		if p.String() != want {
			t.Errorf("expected %s, got %s", want, p.String())
		}
	}
}

func TestValidateProfileURL(t *testing.T) {
	tc := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{name: "bare path", input: "r10.net/profil/ahmet", want: "r10.net/profil/ahmet", ok: true},
		{name: "full url", input: "https://www.r10.net/profil/123-ahmet.html", want: "https://www.r10.net/profil/123-ahmet.html", ok: true},
		{name: "upper case", input: "HTTPS://R10.NET/PROFIL/AHMET", want: "HTTPS://R10.NET/PROFIL/AHMET", ok: true},
		{name: "surrounding whitespace", input: "  r10.net/profil/ahmet\n", want: "r10.net/profil/ahmet", ok: true},
		{name: "not a url", input: "not-a-url"},
		{name: "other domain", input: "https://example.com/ahmet"},
		{name: "empty", input: ""},
		{name: "whitespace only", input: "   "},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateProfileURL(tt.input, DefaultProfileDomain)
			if !tt.ok {
				if !errors.Is(err, shared.ErrInvalidProfileURL) {
					t.Errorf("expected ErrInvalidProfileURL, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestSubmit(t *testing.T) {
	t.Run("invalid input stays in Landing with a message", func(t *testing.T) {
		for _, input := range []string{"not-a-url", "", "example.com", "r10 net", "r10-net.com"} {
			s := newTestSession()
			fetches := 0
			if _, ok := s.Submit(input); ok {
				fetches++
			}
			if fetches != 0 {
				t.Errorf("%q: expected no fetch, got %d", input, fetches)
			}
			if s.Phase() != Landing {
				t.Errorf("%q: expected Landing, got %v", input, s.Phase())
			}
			if s.ValidationMessage() == "" {
				t.Errorf("%q: expected validation message", input)
			}
			if s.TickerActive() {
				t.Errorf("%q: expected ticker to stay inactive", input)
			}
		}
	})

	t.Run("valid input enters Loading", func(t *testing.T) {
		s := newTestSession()
		s.Submit("nope")

		req, ok := s.Submit("  R10.net/profil/ahmet ")
		if !ok {
			t.Fatal("expected submit to succeed")
		}
		if req.ProfileURL != "R10.net/profil/ahmet" || req.Attempt != 1 {
			t.Errorf("unexpected request %+v", req)
		}
		if s.Phase() != Loading {
			t.Errorf("expected Loading, got %v", s.Phase())
		}
		if s.ValidationMessage() != "" {
			t.Error("expected validation message to be cleared")
		}
		if !s.TickerActive() {
			t.Error("expected ticker to be active")
		}
		if s.ProfileURL() != "R10.net/profil/ahmet" {
			t.Errorf("expected trimmed profile URL, got %q", s.ProfileURL())
		}
	})

	t.Run("submitting while Loading is a no-op", func(t *testing.T) {
		s := newTestSession()
		first, _ := s.Submit("r10.net/profil/ahmet")
		rev := s.Revision()

		if _, ok := s.Submit("r10.net/profil/mehmet"); ok {
			t.Error("expected second submit to be rejected")
		}
		if s.Attempt() != first.Attempt {
			t.Errorf("expected attempt to stay %d, got %d", first.Attempt, s.Attempt())
		}
		if s.ProfileURL() != "r10.net/profil/ahmet" {
			t.Errorf("expected profile URL unchanged, got %s", s.ProfileURL())
		}
		if s.Revision() != rev {
			t.Error("expected no state update")
		}
	})

	t.Run("submitting during Experience is a no-op", func(t *testing.T) {
		s := experience(t, 3)
		if _, ok := s.Submit("r10.net/profil/other"); ok {
			t.Error("expected submit to be rejected")
		}
		if s.Phase() != Experience {
			t.Errorf("expected Experience, got %v", s.Phase())
		}
	})

	t.Run("invalid resubmit from Error stays in Error", func(t *testing.T) {
		s := newTestSession()
		req, _ := s.Submit("r10.net/profil/ahmet")
		s.Complete(req.Attempt, nil, shared.ErrFetchFailed)

		if _, ok := s.Submit("bad"); ok {
			t.Error("expected rejection")
		}
		if s.Phase() != Error {
			t.Errorf("expected Error, got %v", s.Phase())
		}
		if s.ValidationMessage() == "" {
			t.Error("expected validation message")
		}
	})
}

func TestComplete(t *testing.T) {
	t.Run("success reaches Experience at index 0", func(t *testing.T) {
		s := experience(t, 5)
		if s.Phase() != Experience {
			t.Fatalf("expected Experience, got %v", s.Phase())
		}
		if s.CurrentIndex() != 0 {
			t.Errorf("expected index 0, got %d", s.CurrentIndex())
		}
		if s.IsFinalSlide() {
			t.Error("expected final slide to be false")
		}
		if s.TickerActive() {
			t.Error("expected ticker to stop")
		}
	})

	t.Run("failure reaches Error with the fixed message", func(t *testing.T) {
		s := newTestSession()
		req, _ := s.Submit("r10.net/profil/ahmet")
		cause := fmt.Errorf("%w: upstream said 503 secret detail", shared.ErrFetchFailed)

		s.Complete(req.Attempt, nil, cause)

		if s.Phase() != Error {
			t.Fatalf("expected Error, got %v", s.Phase())
		}
		if s.ErrorMessage() != DefaultFailureMessage {
			t.Errorf("expected fixed failure message, got %q", s.ErrorMessage())
		}
		if strings.Contains(s.ErrorMessage(), "secret") {
			t.Error("expected underlying cause to be hidden")
		}
		if s.Result() != nil {
			t.Error("expected no result to be retained")
		}
		if s.TickerActive() {
			t.Error("expected ticker to stop")
		}
	})

	t.Run("empty insights are treated as failure", func(t *testing.T) {
		s := newTestSession()
		req, _ := s.Submit("r10.net/profil/ahmet")
		s.Complete(req.Attempt, newSummary(0), nil)

		if s.Phase() != Error {
			t.Errorf("expected Error, got %v", s.Phase())
		}
	})

	t.Run("nil summary without error is treated as failure", func(t *testing.T) {
		s := newTestSession()
		req, _ := s.Submit("r10.net/profil/ahmet")
		s.Complete(req.Attempt, nil, nil)

		if s.Phase() != Error {
			t.Errorf("expected Error, got %v", s.Phase())
		}
	})

	t.Run("stale attempts are ignored", func(t *testing.T) {
		s := newTestSession()
		first, _ := s.Submit("r10.net/profil/ahmet")
		s.Complete(first.Attempt, nil, shared.ErrFetchFailed)
		second, _ := s.Submit("r10.net/profil/ahmet")

		if s.Complete(first.Attempt, newSummary(2), nil) {
			t.Error("expected stale completion to be ignored")
		}
		if s.Phase() != Loading {
			t.Errorf("expected Loading, got %v", s.Phase())
		}
		if !s.Complete(second.Attempt, newSummary(2), nil) {
			t.Error("expected current completion to be accepted")
		}
	})

	t.Run("completion outside Loading is ignored", func(t *testing.T) {
		s := newTestSession()
		if s.Complete(0, newSummary(1), nil) {
			t.Error("expected completion in Landing to be ignored")
		}
		if s.Phase() != Landing {
			t.Errorf("expected Landing, got %v", s.Phase())
		}
	})

	t.Run("retry from Error reaches Experience", func(t *testing.T) {
		s := newTestSession()
		req, _ := s.Submit("r10.net/profil/ahmet")
		s.Complete(req.Attempt, nil, shared.ErrFetchFailed)

		req, ok := s.Submit("r10.net/profil/ahmet")
		if !ok {
			t.Fatal("expected resubmit from Error to succeed")
		}
		if s.ErrorMessage() != "" {
			t.Error("expected error message to be cleared")
		}
		s.Complete(req.Attempt, newSummary(3), nil)
		if s.Phase() != Experience {
			t.Errorf("expected Experience, got %v", s.Phase())
		}
	})
}

func TestTicker(t *testing.T) {
	t.Run("rotates and wraps while Loading", func(t *testing.T) {
		s := newTestSession()
		s.Submit("r10.net/profil/ahmet")
		gen := s.TickerGeneration()

		var seen []string
		for range 4 {
			seen = append(seen, s.LoadingMessage())
			if !s.Tick(gen) {
				t.Fatal("expected tick to reschedule")
			}
		}
		seen = append(seen, s.LoadingMessage())

		want := []string{"one", "two", "three", "one", "two"}
		if strings.Join(seen, ",") != strings.Join(want, ",") {
			t.Errorf("expected %v, got %v", want, seen)
		}
	})

	t.Run("inactive outside Loading", func(t *testing.T) {
		s := newTestSession()
		if s.Tick(s.TickerGeneration()) {
			t.Error("expected tick in Landing to be ignored")
		}
	})

	for _, tt := range []struct {
		name string
		err  error
		want Phase
	}{
		{name: "stops on success", want: Experience},
		{name: "stops on failure", err: shared.ErrFetchFailed, want: Error},
	} {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession()
			req, _ := s.Submit("r10.net/profil/ahmet")
			gen := s.TickerGeneration()
			s.Tick(gen)

			s.Complete(req.Attempt, newSummary(2), tt.err)
			if s.Phase() != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, s.Phase())
			}

			step, rev := s.LoadingStep(), s.Revision()
			for range 5 {
				if s.Tick(gen) {
					t.Fatal("expected pending tick to be dropped after leaving Loading")
				}
				if s.Tick(s.TickerGeneration()) {
					t.Fatal("expected no rotation with the ticker stopped")
				}
			}
			if s.LoadingStep() != step || s.Revision() != rev {
				t.Error("expected no rotation events after transition")
			}
		})
	}

	t.Run("a new Loading phase ignores ticks from the previous one", func(t *testing.T) {
		s := newTestSession()
		req, _ := s.Submit("r10.net/profil/ahmet")
		old := s.TickerGeneration()
		s.Complete(req.Attempt, nil, shared.ErrFetchFailed)
		s.Submit("r10.net/profil/ahmet")

		if s.Tick(old) {
			t.Error("expected old generation to be ignored")
		}
		if s.LoadingStep() != 0 {
			t.Errorf("expected step reset to 0, got %d", s.LoadingStep())
		}
		if !s.Tick(s.TickerGeneration()) {
			t.Error("expected current generation to tick")
		}
	})
}

func TestNavigation(t *testing.T) {
	t.Run("concrete scenario", func(t *testing.T) {
		s := experience(t, 5)
		if s.Result().Username != "ahmet" || s.Result().RankLabel != "iTrader İmparatoru" {
			t.Errorf("unexpected result %+v", s.Result())
		}
		for range 4 {
			s.GoToNext()
		}
		if s.CurrentIndex() != 4 {
			t.Errorf("expected index 4, got %d", s.CurrentIndex())
		}
		if !s.IsFinalSlide() {
			t.Error("expected final slide to be reached")
		}
	})

	t.Run("clamps at both ends", func(t *testing.T) {
		s := experience(t, 3)

		rev := s.Revision()
		s.GoToPrevious()
		if s.CurrentIndex() != 0 || s.Revision() != rev {
			t.Error("expected GoToPrevious at 0 to be a no-op")
		}

		s.GoToNext()
		s.GoToNext()
		rev = s.Revision()
		s.GoToNext()
		if s.CurrentIndex() != 2 || s.Revision() != rev {
			t.Error("expected GoToNext at last index to be a no-op")
		}
	})

	t.Run("random sequences stay in range", func(t *testing.T) {
		rng := rand.New(rand.NewSource(42))
		for n := 1; n <= 6; n++ {
			s := experience(t, n)
			for range 200 {
				if rng.Intn(2) == 0 {
					s.GoToNext()
				} else {
					s.GoToPrevious()
				}
				if s.CurrentIndex() < 0 || s.CurrentIndex() > s.LastIndex() {
					t.Fatalf("index %d escaped [0, %d]", s.CurrentIndex(), s.LastIndex())
				}
				if s.IsFinalSlide() != (s.CurrentIndex() == s.LastIndex()) {
					t.Fatal("final slide flag disagrees with index")
				}
			}
		}
	})

	t.Run("single slide is immediately final", func(t *testing.T) {
		s := experience(t, 1)
		if !s.IsFinalSlide() {
			t.Error("expected final slide with one insight")
		}
	})

	t.Run("ignored outside Experience", func(t *testing.T) {
		s := newTestSession()
		s.GoToNext()
		s.GoToPrevious()
		if s.OnPositionReport(300, 100) {
			t.Error("expected position report to be ignored")
		}
		if s.CurrentIndex() != 0 || s.IsFinalSlide() {
			t.Error("expected navigation to be ignored in Landing")
		}
	})
}

func TestOnPositionReport(t *testing.T) {
	t.Run("integer multiples select that slide", func(t *testing.T) {
		const width = 120.0
		s := experience(t, 5)
		for _, k := range []int{3, 0, 4, 1, 2} {
			s.OnPositionReport(float64(k)*width, width)
			if s.CurrentIndex() != k {
				t.Errorf("expected index %d, got %d", k, s.CurrentIndex())
			}
		}
	})

	t.Run("rounds to the nearest slide", func(t *testing.T) {
		s := experience(t, 5)
		tc := []struct {
			offset float64
			want   int
		}{
			{offset: 149, want: 1},
			{offset: 151, want: 2},
			{offset: 249.9, want: 2},
			{offset: 49.9, want: 0},
		}
		for _, tt := range tc {
			s.OnPositionReport(tt.offset, 100)
			if s.CurrentIndex() != tt.want {
				t.Errorf("offset %v: expected %d, got %d", tt.offset, tt.want, s.CurrentIndex())
			}
		}
	})

	t.Run("repeated reports do not update state", func(t *testing.T) {
		s := experience(t, 5)
		if !s.OnPositionReport(200, 100) {
			t.Fatal("expected first report to change index")
		}
		rev := s.Revision()
		for _, offset := range []float64{200, 200.3, 199.7, 201, 200} {
			if s.OnPositionReport(offset, 100) {
				t.Errorf("offset %v: expected no update", offset)
			}
		}
		if s.Revision() != rev {
			t.Errorf("expected revision %d, got %d", rev, s.Revision())
		}
	})

	t.Run("out of range offsets clamp", func(t *testing.T) {
		s := experience(t, 3)
		s.OnPositionReport(1000, 100)
		if s.CurrentIndex() != 2 {
			t.Errorf("expected clamp to 2, got %d", s.CurrentIndex())
		}
		s.OnPositionReport(-500, 100)
		if s.CurrentIndex() != 0 {
			t.Errorf("expected clamp to 0, got %d", s.CurrentIndex())
		}
	})

	t.Run("infinite and overflowing ratios clamp", func(t *testing.T) {
		s := experience(t, 5)
		tc := []struct {
			offset, width float64
			want          int
		}{
			{offset: math.Inf(1), width: 100, want: 4},
			{offset: math.Inf(-1), width: 100, want: 0},
			{offset: 1e308, width: 1e-10, want: 4},
			{offset: -1e308, width: 1e-10, want: 0},
		}
		for _, tt := range tc {
			s.OnPositionReport(tt.offset, tt.width)
			if s.CurrentIndex() != tt.want {
				t.Errorf("offset %v / %v: expected %d, got %d", tt.offset, tt.width, tt.want, s.CurrentIndex())
			}
		}
	})

	t.Run("non-positive width is ignored", func(t *testing.T) {
		s := experience(t, 3)
		if s.OnPositionReport(100, 0) || s.OnPositionReport(100, -1) {
			t.Error("expected reports with no width to be ignored")
		}
	})
}

func TestReset(t *testing.T) {
	t.Run("clears the session from the final slide", func(t *testing.T) {
		s := experience(t, 4)
		for range 3 {
			s.GoToNext()
		}
		if !s.IsFinalSlide() {
			t.Fatal("expected final slide")
		}

		s.Reset()

		if s.Phase() != Landing {
			t.Errorf("expected Landing, got %v", s.Phase())
		}
		if s.ProfileURL() != "" {
			t.Errorf("expected empty profile URL, got %q", s.ProfileURL())
		}
		if s.Result() != nil {
			t.Error("expected result to be cleared")
		}
		if s.CurrentIndex() != 0 {
			t.Errorf("expected index 0, got %d", s.CurrentIndex())
		}
		if s.IsFinalSlide() {
			t.Error("expected final slide flag to be false")
		}
	})

	t.Run("no-op outside Experience", func(t *testing.T) {
		s := newTestSession()
		s.Submit("r10.net/profil/ahmet")
		s.Reset()
		if s.Phase() != Loading {
			t.Errorf("expected Loading, got %v", s.Phase())
		}
	})
}

func TestInsight(t *testing.T) {
	s := experience(t, 2)
	slide, err := s.Insight(1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if slide.Title != "Slide 2" {
		t.Errorf("expected Slide 2, got %s", slide.Title)
	}
	if _, err := s.Insight(2); err == nil {
		t.Error("expected out of range error")
	}
}

func TestDeriveIndex(t *testing.T) {
	if got := DeriveIndex(250, 100, -1); got != 0 {
		t.Errorf("expected 0 without slides, got %d", got)
	}
	if got := DeriveIndex(250, 100, 9); got != 3 {
		t.Errorf("expected round half away from zero to 3, got %d", got)
	}
	if got := DeriveIndex(math.Inf(1), 100, 9); got != 9 {
		t.Errorf("expected +Inf to clamp to 9, got %d", got)
	}
}
