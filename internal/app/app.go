// Package app bootstraps the album browser: it connects to the server, starts
// the idle watcher, and runs the Bubble Tea program.
package app

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/discstack/discstack/internal/backend"
	"github.com/discstack/discstack/internal/logging/events"
	"github.com/discstack/discstack/internal/mpd"
	"github.com/discstack/discstack/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	Network    string
	Address    string
	Password   string
	Sort       mpd.SortMode
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	client, err := mpd.Dial(cfg.Network, cfg.Address, cfg.Password)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", cfg.Address, err)
	}
	defer client.Close()
	events.App.Connected(cfg.Address)

	watcher := backend.NewWatcher(cfg.Network, cfg.Address, cfg.Password, 1500*time.Millisecond)
	defer watcher.Stop()

	model := ui.NewModel(client, cfg.Sort, cfg.Width, cfg.Height, cfg.ShowFooter, cfg.Verbose, watcher)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
