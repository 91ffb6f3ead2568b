package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/wrapped/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgFetched MsgKind = iota
	MsgLoadingTick
	MsgSlideFrame
	MsgCardSaved
)

type fetchResult struct {
	attempt int
	summary *models.UserSummary
	err     error
}

type slideFrame struct {
	index int
	gen   int
}

type cardSaved struct {
	path string
	err  error
}

// Kind returns the message kind.
func (m Msg) Kind() MsgKind { return m.kind }

// fetchedMsg is the constructor for [MsgFetched]
func fetchedMsg(attempt int, summary *models.UserSummary, err error) Msg {
	return Msg{kind: MsgFetched, data: fetchResult{attempt, summary, err}}
}

// loadingTickMsg is the constructor for [MsgLoadingTick]
func loadingTickMsg(generation int) Msg {
	return Msg{kind: MsgLoadingTick, data: generation}
}

// slideFrameMsg is the constructor for [MsgSlideFrame]
func slideFrameMsg(index, generation int) Msg {
	return Msg{kind: MsgSlideFrame, data: slideFrame{index, generation}}
}

// cardSavedMsg is the constructor for [MsgCardSaved]
func cardSavedMsg(path string, err error) Msg {
	return Msg{kind: MsgCardSaved, data: cardSaved{path, err}}
}
