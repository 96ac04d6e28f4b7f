package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"videovault/internal/adapters/tui/views"
	"videovault/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewRename
	ViewMove
	ViewDelete
	ViewHelp
)

// App is the main TUI application model
type App struct {
	player ports.PlayerOpener

	state   ViewState
	browser *views.BrowserModel
	rename  *views.RenameModel
	move    *views.MoveModel
	delete  *views.DeleteModel
	help    *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(svc views.Services, pl ports.PlayerOpener, undoWindow time.Duration) *App {
	return &App{
		player:  pl,
		state:   ViewBrowser,
		browser: views.NewBrowserModel(svc),
		rename:  views.NewRenameModel(svc.Mutator),
		move:    views.NewMoveModel(svc.Mutator),
		delete:  views.NewDeleteModel(svc.Mutator),
		help:    views.NewHelpModel(undoWindow),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.browser.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.browser.SetSize(msg.Width, msg.Height)
		a.rename.SetSize(msg.Width, msg.Height)
		a.move.SetSize(msg.Width, msg.Height)
		a.delete.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToRenameMsg:
		a.state = ViewRename
		a.rename.SetItems(msg.Items)
		return a, a.rename.Init()

	case views.SwitchToMoveMsg:
		a.state = ViewMove
		a.move.SetItems(msg.Items)
		return a, a.move.Init()

	case views.SwitchToDeleteMsg:
		a.state = ViewDelete
		a.delete.SetTargets(msg.Items)
		return a, nil

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToBrowserMsg:
		a.state = ViewBrowser
		return a, a.browser.Reload()

	case views.MutationStartedMsg:
		a.state = ViewBrowser
		return a, a.browser.StartBusy()

	case views.OpenPlayerMsg:
		return a, a.openPlayer(msg.Path)

	case playerFinishedMsg:
		if msg.err != nil {
			a.browser.SetMessage("Player: "+msg.err.Error(), true)
		}
		return a, nil
	}

	// Keys go to the active view only. Everything else also reaches the
	// browser so its toast and reloads keep running behind a form.
	var cmd tea.Cmd
	switch a.state {
	case ViewBrowser:
		_, cmd = a.browser.Update(msg)
		return a, cmd
	case ViewRename:
		_, cmd = a.rename.Update(msg)
	case ViewMove:
		_, cmd = a.move.Update(msg)
	case ViewDelete:
		_, cmd = a.delete.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	if _, isKey := msg.(tea.KeyMsg); isKey {
		return a, cmd
	}
	_, browserCmd := a.browser.Update(msg)
	return a, tea.Batch(cmd, browserCmd)
}

type playerFinishedMsg struct{ err error }

func (a *App) openPlayer(path string) tea.Cmd {
	if a.player == nil {
		return nil
	}

	cmd, err := a.player.Command(path)
	if err != nil {
		return func() tea.Msg {
			return playerFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return playerFinishedMsg{err: err}
	})
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewRename:
		return a.rename.View()
	case ViewMove:
		return a.move.View()
	case ViewDelete:
		return a.delete.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.browser.View()
	}
}
