package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/wrapped/internal/models"
)

func testDescriptor() models.SlideDescriptor {
	return models.SlideDescriptor{
		Title:           "Trade Machine",
		Body:            "You closed 312 deals this year.",
		Emoji:           "🤝",
		BackgroundColor: "#121212",
		TextColor:       "#FFFFFF",
		AccentColor:     "#1DB954",
	}
}

func TestSlideColors(t *testing.T) {
	tc := []struct {
		name     string
		raw      string
		fallback string
		want     lipgloss.Color
	}{
		{name: "six digit hex is normalized", raw: "#1DB954", fallback: fallbackAccent, want: "#1db954"},
		{name: "three digit hex is expanded", raw: "#abc", fallback: fallbackAccent, want: "#aabbcc"},
		{name: "surrounding space is ignored", raw: " #000000 ", fallback: fallbackText, want: "#000000"},
		{name: "named colors fall back", raw: "green", fallback: fallbackAccent, want: fallbackAccent},
		{name: "empty falls back", raw: "", fallback: fallbackBackground, want: fallbackBackground},
		{name: "invalid digits fall back", raw: "#zzzzzz", fallback: fallbackText, want: fallbackText},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseColor(tt.raw, tt.fallback); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}

	t.Run("fallback is per field", func(t *testing.T) {
		desc := testDescriptor()
		desc.TextColor = "not-a-color"
		s := NewSlide(desc)

		if s.colors.text != fallbackText {
			t.Errorf("expected text fallback, got %s", s.colors.text)
		}
		if s.colors.background != "#121212" {
			t.Errorf("expected background to be kept, got %s", s.colors.background)
		}
		if s.colors.accent != "#1db954" {
			t.Errorf("expected accent to be kept, got %s", s.colors.accent)
		}
	})
}

func TestSlideEntrance(t *testing.T) {
	t.Run("starts inactive", func(t *testing.T) {
		s := NewSlide(testDescriptor())
		if s.Active() || s.Entered() {
			t.Error("expected a new slide to be inactive")
		}
		if s.Advance() {
			t.Error("expected Advance to be a no-op while inactive")
		}
	})

	t.Run("activation plays the entrance", func(t *testing.T) {
		s := NewSlide(testDescriptor())
		if !s.SetActive(true) {
			t.Fatal("expected entrance to begin")
		}
		if s.Entered() {
			t.Fatal("expected entrance to be pending")
		}

		for i := 1; i < entranceFrames; i++ {
			if !s.Advance() {
				t.Fatalf("expected more frames after frame %d", i)
			}
		}
		if s.Advance() {
			t.Error("expected the last frame to report completion")
		}
		if !s.Entered() {
			t.Error("expected slide to be entered")
		}
		if s.Advance() {
			t.Error("expected Advance to be a no-op once entered")
		}
	})

	t.Run("repeated activation does not restart", func(t *testing.T) {
		s := NewSlide(testDescriptor())
		s.SetActive(true)
		s.Advance()
		gen := s.Generation()

		if s.SetActive(true) {
			t.Error("expected no new entrance while already active")
		}
		if s.Generation() != gen {
			t.Error("expected generation to be unchanged")
		}
	})

	t.Run("reactivation replays identically", func(t *testing.T) {
		s := NewSlide(testDescriptor())
		s.SetActive(true)
		first := s.View(40, 20)

		for s.Advance() {
		}
		settled := s.View(40, 20)
		if settled == first {
			t.Error("expected settled view to differ from the entrance view")
		}

		s.SetActive(false)
		if s.Entered() {
			t.Error("expected deactivation to revert the entrance")
		}

		gen := s.Generation()
		s.SetActive(true)
		if s.Generation() != gen+1 {
			t.Errorf("expected generation %d, got %d", gen+1, s.Generation())
		}
		if replay := s.View(40, 20); replay != first {
			t.Errorf("expected replayed entrance to match the first\nfirst:\n%s\nreplay:\n%s", first, replay)
		}
	})
}

func TestSlideView(t *testing.T) {
	s := NewSlide(testDescriptor())
	s.SetActive(true)
	for s.Advance() {
	}

	t.Run("renders descriptor content", func(t *testing.T) {
		view := s.View(60, 20)
		for _, want := range []string{"🤝", "TRADE MACHINE", "312 deals"} {
			if !strings.Contains(view, want) {
				t.Errorf("expected view to contain %q, got:\n%s", want, view)
			}
		}
	})

	t.Run("fills the requested area", func(t *testing.T) {
		view := s.View(60, 20)
		if h := lipgloss.Height(view); h != 20 {
			t.Errorf("expected height 20, got %d", h)
		}
		if w := lipgloss.Width(view); w != 60 {
			t.Errorf("expected width 60, got %d", w)
		}
	})

	t.Run("empty area renders nothing", func(t *testing.T) {
		if view := s.View(0, 10); view != "" {
			t.Errorf("expected empty view, got %q", view)
		}
	})
}
