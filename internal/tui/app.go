// Package tui provides the terminal popup, the extension-popup analog.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/user/phishguard/internal/client"
	"github.com/user/phishguard/internal/heartbeat"
	"github.com/user/phishguard/internal/history"
	"github.com/user/phishguard/internal/model"
	"github.com/user/phishguard/internal/util"
	"github.com/user/phishguard/internal/view"
)

// App is the popup application.
type App struct {
	cfg *util.Config
}

// NewApp creates a new popup application.
func NewApp(cfg *util.Config) *App {
	return &App{cfg: cfg}
}

// Run starts the popup.
func (a *App) Run() error {
	p := tea.NewProgram(newPopupModel(a.cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

type snapshotMsg struct {
	Summary view.Summary
}

type errMsg struct {
	err error
}

type tickMsg time.Time

// popupModel is the main bubbletea model.
type popupModel struct {
	cfg     *util.Config
	api     *client.Client
	store   *history.Store
	monitor *heartbeat.Monitor

	spinner spinner.Model
	summary view.Summary
	ready   bool
	width   int
	height  int
	err     error
}

func newPopupModel(cfg *util.Config) popupModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(Primary)

	api := client.NewClient(cfg.APIBaseURL, cfg.APIKey, cfg.RequestTimeout, cfg.MaxFileSize)

	return popupModel{
		cfg:     cfg,
		api:     api,
		store:   history.NewStore(api),
		monitor: heartbeat.NewMonitor(api),
		spinner: s,
	}
}

// Init initializes the model.
func (m popupModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.refresh(),
		m.tick(),
	)
}

// refresh fetches a fresh snapshot. The popup stands in for the
// extension, so it also sends a heartbeat ping on every cycle.
func (m popupModel) refresh() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.cfg.RequestTimeout)
		defer cancel()

		if err := m.api.Ping(ctx); err != nil {
			util.Debug("Heartbeat ping failed: %v", err)
		}

		if err := m.store.Refresh(ctx); err != nil {
			return errMsg{err: err}
		}
		hb := m.monitor.Poll(ctx)

		return snapshotMsg{
			Summary: view.Project(m.store.List(model.LogFilter{}), hb, model.LogFilter{}),
		}
	}
}

func (m popupModel) tick() tea.Cmd {
	return tea.Tick(m.cfg.HistoryPollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages.
func (m popupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			return m, m.refresh()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		return m, tea.Batch(m.refresh(), m.tick())

	case snapshotMsg:
		m.ready = true
		m.err = nil
		m.summary = msg.Summary

	case errMsg:
		m.err = msg.err

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the popup.
func (m popupModel) View() string {
	if m.err != nil {
		return SectionStyle.Render(
			MaliciousStyle.Render("Error reaching scan service") + "\n" +
				DimStyle.Render(m.err.Error())) + "\n" +
			HelpStyle.Render("Press 'r' to retry • 'q' to quit")
	}
	if !m.ready {
		return m.spinner.View() + " Loading scan history...\n"
	}
	return renderSummary(m.summary, m.width) +
		HelpStyle.Render("Press 'r' to refresh • 'q' to quit")
}
