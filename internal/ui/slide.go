package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/wrapped/internal/models"
	"github.com/lucasb-eyer/go-colorful"
)

// entranceFrames is the number of [Slide.Advance] steps an entrance takes to settle.
const entranceFrames = 6

// Fallback colors for descriptor fields that do not parse.
const (
	fallbackBackground = "#121212"
	fallbackText       = "#FFFFFF"
	fallbackAccent     = "#1DB954"
)

// slideColors holds the normalized colors a [Slide] renders with.
type slideColors struct {
	background lipgloss.Color
	text       lipgloss.Color
	accent     lipgloss.Color
}

// Slide renders one [models.SlideDescriptor] and owns its entrance state.
//
// A slide knows only whether it is active. Which slide is active is decided by the session.
type Slide struct {
	desc   models.SlideDescriptor
	colors slideColors
	active bool
	frame  int
	gen    int
}

// NewSlide creates an inactive slide for desc.
func NewSlide(desc models.SlideDescriptor) *Slide {
	return &Slide{
		desc: desc,
		colors: slideColors{
			background: parseColor(desc.BackgroundColor, fallbackBackground),
			text:       parseColor(desc.TextColor, fallbackText),
			accent:     parseColor(desc.AccentColor, fallbackAccent),
		},
	}
}

// parseColor normalizes a hex color, returning fallback when raw is malformed.
func parseColor(raw, fallback string) lipgloss.Color {
	c, err := colorful.Hex(strings.TrimSpace(raw))
	if err != nil {
		return lipgloss.Color(fallback)
	}
	return lipgloss.Color(c.Hex())
}

// SetActive updates the active flag. Returns true when an entrance began.
//
// Deactivating resets the entrance so the next activation replays it from the start.
func (s *Slide) SetActive(active bool) bool {
	if active == s.active {
		return false
	}
	s.active = active
	s.frame = 0
	if active {
		s.gen++
	}
	return active
}

// Advance steps the entrance by one frame. Returns true while frames remain.
func (s *Slide) Advance() bool {
	if !s.active || s.frame >= entranceFrames {
		return false
	}
	s.frame++
	return s.frame < entranceFrames
}

// Entered reports whether the slide is active and its entrance has settled.
func (s *Slide) Entered() bool { return s.active && s.frame >= entranceFrames }

func (s *Slide) Active() bool                       { return s.active }
func (s *Slide) Generation() int                    { return s.gen }
func (s *Slide) Descriptor() models.SlideDescriptor { return s.desc }

// View renders the slide filling width x height.
func (s *Slide) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	textWidth := min(max(width-8, 10), 64)
	entered := s.Entered()

	emoji := lipgloss.NewStyle().MarginBottom(1).Render(s.desc.Emoji)
	title := lipgloss.NewStyle().
		Foreground(s.colors.accent).
		Bold(true).
		Width(textWidth).
		Align(lipgloss.Center).
		MarginBottom(1).
		Render(strings.ToUpper(s.desc.Title))
	body := lipgloss.NewStyle().
		Foreground(s.colors.text).
		Width(textWidth).
		Align(lipgloss.Center).
		Render(s.desc.Body)

	block := lipgloss.NewStyle().
		Background(s.colors.background).
		PaddingTop(entranceFrames - s.frame).
		Faint(!entered).
		Render(lipgloss.JoinVertical(lipgloss.Center, emoji, title, body))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block,
		lipgloss.WithWhitespaceBackground(s.colors.background))
}
