package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/abook/internal/addressbook"
	"github.com/desertthunder/abook/internal/console"
	"github.com/desertthunder/abook/internal/ui"
	"github.com/urfave/cli/v3"
)

// Shell runs the menu console against the stored books and saves what it changed.
func (r *Runner) Shell(ctx context.Context, cmd *cli.Command) error {
	return r.withManager(cmd, true, func(m *addressbook.Manager) error {
		c := console.New(r.input, r.output, m, console.Options{
			MaxAttempts: r.config.Console.MaxAttempts,
			ExportPath:  r.config.Files.ExportPath,
			ImportPath:  r.config.Files.ImportPath,
			CSVPath:     r.config.Files.CSVPath,
			Logger:      r.logger,
		})
		return c.Run()
	})
}

// TUI launches the read-only address book browser.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	return r.withManager(cmd, false, func(m *addressbook.Manager) error {
		p := tea.NewProgram(ui.NewModel(m), tea.WithAltScreen(), tea.WithContext(ctx))
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("failed to run TUI: %w", err)
		}
		return nil
	})
}
