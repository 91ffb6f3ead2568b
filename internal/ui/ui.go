package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/wrapped/internal/formatter"
	"github.com/desertthunder/wrapped/internal/services"
	"github.com/desertthunder/wrapped/internal/session"
	"github.com/desertthunder/wrapped/internal/shared"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// frameInterval is the delay between slide entrance frames.
	frameInterval = 60 * time.Millisecond

	// wheelSteps is the number of wheel notches that scroll one full slide.
	wheelSteps = 4
)

// Options configures a [Model].
type Options struct {
	TickInterval time.Duration
	ExportDir    string
	ExportFormat formatter.Format
	Year         int
}

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	session *session.Session
	fetcher services.Fetcher
	logger  *log.Logger
	opts    Options
	input   textinput.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap
	slides  []*Slide
	width   int
	height  int
	// scroll is the carousel offset in columns accumulated from wheel input.
	scroll float64
	notice string
}

// NewModel creates a new TUI model driving sess with the provided fetcher.
func NewModel(ctx context.Context, sess *session.Session, fetcher services.Fetcher, logger *log.Logger, opts Options) *Model {
	if opts.TickInterval <= 0 {
		opts.TickInterval = 2 * time.Second
	}
	if opts.ExportFormat == "" {
		opts.ExportFormat = formatter.Markdown
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	input := textinput.New()
	input.Placeholder = fmt.Sprintf("https://www.%s/profil/...", sess.ProfileDomain())
	input.CharLimit = 256
	input.Width = 48
	input.Focus()

	spin := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.ok))

	return &Model{
		ctx:     ctx,
		session: sess,
		fetcher: fetcher,
		logger:  shared.WithLogger(logger, "session", sess.ID()),
		opts:    opts,
		input:   input,
		spinner: spin,
		help:    help.New(),
		keys:    newKeyMap(),
		width:   defaultWidth,
		height:  defaultHeight,
	}
}

// Session returns the session the model drives.
func (m *Model) Session() *session.Session { return m.session }

// Init starts the cursor blink on the landing form.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.scroll = float64(m.session.CurrentIndex() * m.width)
		return m, nil

	case tea.KeyMsg:
		switch m.session.Phase() {
		case session.Landing, session.Error:
			return m.handleFormKeys(msg)
		case session.Loading:
			if key.Matches(msg, m.keys.quit) || key.Matches(msg, m.keys.cancel) {
				return m, tea.Quit
			}
			return m, nil
		case session.Experience:
			return m.handleSlideKeys(msg)
		}

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case spinner.TickMsg:
		if m.session.Phase() != session.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateInput(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgFetched:
		r := msg.data.(fetchResult)
		if !m.session.Complete(r.attempt, r.summary, r.err) {
			m.logger.Debug("dropped stale fetch result", "attempt", r.attempt)
			return m, nil
		}
		if m.session.Phase() == session.Error {
			err := r.err
			if err == nil {
				err = r.summary.Validate()
			}
			m.logger.Error("wrapped fetch failed", "profile", m.session.ProfileURL(), "error", err)
			return m, m.input.Focus()
		}
		m.logger.Info("wrapped ready", "username", r.summary.Username, "slides", len(r.summary.Insights))
		m.slides = make([]*Slide, len(r.summary.Insights))
		for i, desc := range r.summary.Insights {
			m.slides[i] = NewSlide(desc)
		}
		m.scroll = 0
		return m, m.syncSlides()

	case MsgLoadingTick:
		if m.session.Tick(msg.data.(int)) {
			return m, m.tick(m.session.TickerGeneration())
		}
		return m, nil

	case MsgSlideFrame:
		f := msg.data.(slideFrame)
		if f.index < 0 || f.index >= len(m.slides) {
			return m, nil
		}
		slide := m.slides[f.index]
		if slide.Generation() != f.gen {
			return m, nil
		}
		if slide.Advance() {
			return m, m.frame(f.index, f.gen)
		}
		return m, nil

	case MsgCardSaved:
		saved := msg.data.(cardSaved)
		if saved.err != nil {
			m.logger.Error("failed to save share card", "error", saved.err)
			m.notice = styles.err.Render(fmt.Sprintf("Could not save card: %v", saved.err))
			return m, nil
		}
		m.logger.Info("share card saved", "path", saved.path)
		m.notice = styles.ok.Render(fmt.Sprintf("Saved %s", saved.path))
		return m, nil
	}
	return m, nil
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.cancel):
		return m, tea.Quit
	case key.Matches(msg, m.keys.submit):
		return m, m.submit(m.input.Value())
	}
	return m.updateInput(msg)
}

func (m *Model) handleSlideKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.next):
		m.session.GoToNext()
	case key.Matches(msg, m.keys.prev):
		m.session.GoToPrevious()
	case key.Matches(msg, m.keys.restart) && m.session.IsFinalSlide():
		return m, m.restart()
	case key.Matches(msg, m.keys.save) && m.session.IsFinalSlide():
		return m, m.saveCard()
	default:
		return m, nil
	}
	m.scroll = float64(m.session.CurrentIndex() * m.width)
	return m, m.syncSlides()
}

// handleMouse turns wheel input into a continuous carousel offset.
func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.session.Phase() != session.Experience || msg.Action != tea.MouseActionPress {
		return m, nil
	}

	step := float64(m.width) / wheelSteps
	switch msg.Button {
	case tea.MouseButtonWheelDown, tea.MouseButtonWheelRight:
		m.scroll += step
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelLeft:
		m.scroll -= step
	default:
		return m, nil
	}

	limit := float64(m.session.LastIndex() * m.width)
	m.scroll = max(0, min(m.scroll, limit))

	if !m.session.OnPositionReport(m.scroll, float64(m.width)) {
		return m, nil
	}
	return m, m.syncSlides()
}

func (m *Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if phase := m.session.Phase(); phase != session.Landing && phase != session.Error {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit starts a fetch for raw. Returns nil when the session rejects the input.
func (m *Model) submit(raw string) tea.Cmd {
	req, ok := m.session.Submit(raw)
	if !ok {
		m.logger.Debug("submission rejected", "phase", m.session.Phase(), "input", raw)
		return nil
	}

	m.logger.Info("fetching wrapped", "profile", req.ProfileURL, "attempt", req.Attempt)
	m.input.Blur()
	m.slides = nil
	m.notice = ""
	return tea.Batch(m.fetch(req), m.tick(m.session.TickerGeneration()), m.spinner.Tick)
}

func (m *Model) restart() tea.Cmd {
	m.session.Reset()
	m.slides = nil
	m.scroll = 0
	m.notice = ""
	m.input.Reset()
	return m.input.Focus()
}

// syncSlides activates the slide at the session index and deactivates the rest.
// Returns the entrance animation command for a newly activated slide.
func (m *Model) syncSlides() tea.Cmd {
	current := m.session.CurrentIndex()
	var cmd tea.Cmd
	for i, slide := range m.slides {
		if slide.SetActive(i == current) {
			cmd = m.frame(i, slide.Generation())
		}
	}
	return cmd
}

func (m *Model) fetch(req session.Request) tea.Cmd {
	return func() tea.Msg {
		summary, err := m.fetcher.Fetch(m.ctx, req.ProfileURL)
		return fetchedMsg(req.Attempt, summary, err)
	}
}

func (m *Model) tick(generation int) tea.Cmd {
	return tea.Tick(m.opts.TickInterval, func(time.Time) tea.Msg {
		return loadingTickMsg(generation)
	})
}

func (m *Model) frame(index, generation int) tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return slideFrameMsg(index, generation)
	})
}

func (m *Model) saveCard() tea.Cmd {
	summary := m.session.Result()
	dir, format := m.opts.ExportDir, m.opts.ExportFormat
	return func() tea.Msg {
		path, err := formatter.WriteShareCard(dir, summary, format)
		return cardSavedMsg(path, err)
	}
}

// View renders the UI for the current session phase.
func (m *Model) View() string {
	switch m.session.Phase() {
	case session.Landing, session.Error:
		return m.renderForm()
	case session.Loading:
		return m.renderLoading()
	case session.Experience:
		return m.renderExperience()
	default:
		return ""
	}
}

func (m *Model) heading() string {
	if m.opts.Year > 0 {
		return fmt.Sprintf("R10 WRAPPED %d", m.opts.Year)
	}
	return "R10 WRAPPED"
}

func (m *Model) renderForm() string {
	var b strings.Builder

	b.WriteString(styles.title.Render(m.heading()))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Paste your %s profile link to see your year.\n\n", m.session.ProfileDomain()))

	if msg := m.session.ErrorMessage(); msg != "" {
		b.WriteString(styles.err.Render(msg))
		b.WriteString("\n\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")

	if msg := m.session.ValidationMessage(); msg != "" {
		b.WriteString(styles.warn.Render(msg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView([]key.Binding{m.keys.submit, m.keys.cancel}))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}

func (m *Model) renderLoading() string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		styles.title.Render(m.heading()),
		fmt.Sprintf("%s %s", m.spinner.View(), m.session.LoadingMessage()),
		styles.help.Render(m.session.ProfileURL()),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func (m *Model) renderExperience() string {
	summary := m.session.Result()
	current := m.session.CurrentIndex()
	final := m.session.IsFinalSlide()

	header := lipgloss.JoinVertical(lipgloss.Left,
		m.renderProgress(),
		lipgloss.PlaceHorizontal(m.width, lipgloss.Right, styles.badge.Render("@"+summary.Username)),
	)

	var footer string
	if final {
		footer = m.renderShareCard()
	} else {
		footer = styles.help.Render("→ scroll or press → for the next slide")
	}
	if m.notice != "" {
		footer = lipgloss.JoinVertical(lipgloss.Center, footer, m.notice)
	}
	footer = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, footer)

	slideHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	var slide string
	if current >= 0 && current < len(m.slides) {
		slide = m.slides[current].View(m.width, max(slideHeight, 1))
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, slide, footer)
}

// renderProgress draws one segment per slide: settled (done), filled (current), empty (pending).
func (m *Model) renderProgress() string {
	n := len(m.slides)
	if n == 0 {
		return ""
	}
	seg := max((m.width-(n-1))/n, 1)
	current := m.session.CurrentIndex()

	parts := make([]string, n)
	for i := range parts {
		bar := strings.Repeat("━", seg)
		switch {
		case i < current:
			parts[i] = styles.done.Render(bar)
		case i == current:
			parts[i] = styles.now.Render(bar)
		default:
			parts[i] = styles.todo.Render(bar)
		}
	}
	return strings.Join(parts, " ")
}

func (m *Model) renderShareCard() string {
	summary := m.session.Result()

	label := "Your rank:"
	if m.opts.Year > 0 {
		label = fmt.Sprintf("Your %d rank:", m.opts.Year)
	}

	lines := []string{styles.help.Render(label), styles.ok.Render(strings.ToUpper(summary.RankLabel))}
	if stats := summary.Stats; stats != nil {
		var parts []string
		if stats.TradeCount != "" {
			parts = append(parts, "iTrader "+stats.TradeCount)
		}
		if stats.Rank != "" {
			parts = append(parts, stats.Rank)
		}
		if stats.JoinDate != "" {
			parts = append(parts, "since "+stats.JoinDate)
		}
		if len(parts) > 0 {
			lines = append(lines, styles.done.Render(strings.Join(parts, " · ")))
		}
	}
	lines = append(lines, "", m.help.ShortHelpView([]key.Binding{m.keys.restart, m.keys.save, m.keys.quit}))

	return styles.card.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}
