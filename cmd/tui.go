package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/wrapped/internal/formatter"
	"github.com/desertthunder/wrapped/internal/session"
	"github.com/desertthunder/wrapped/internal/shared"
	"github.com/desertthunder/wrapped/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive wrapped slideshow.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/wrapped-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	fetcher, err := r.Fetcher(ctx)
	if err != nil {
		return err
	}

	format, err := formatter.ParseFormat(r.config.Export.Format)
	if err != nil {
		return err
	}

	sess := session.New(session.Options{
		ProfileDomain:   r.config.Session.ProfileDomain,
		LoadingMessages: r.config.Session.LoadingMessages,
	})
	r.logger.Info("starting session", "session", sess.ID(), "provider", fetcher.Name())

	model := ui.NewModel(ctx, sess, fetcher, r.logger, ui.Options{
		TickInterval: r.config.Session.TickInterval,
		ExportDir:    r.config.Export.Dir,
		ExportFormat: format,
		Year:         r.config.Gemini.Year,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
