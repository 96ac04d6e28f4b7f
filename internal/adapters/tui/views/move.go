package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"videovault/internal/adapters/tui/styles"
	"videovault/internal/application/commands"
	"videovault/internal/domain"
)

// MoveModel is the model for the move view
type MoveModel struct {
	ViewState
	mutator commands.Mutator
	items   []domain.Item
	form    *InputForm
}

// NewMoveModel creates a new move view model
func NewMoveModel(mutator commands.Mutator) *MoveModel {
	return &MoveModel{mutator: mutator}
}

// SetItems sets the videos to move. The target starts at the directory of
// the first one.
func (m *MoveModel) SetItems(items []domain.Item) {
	m.items = items
	m.ClearMessage()

	dir := ""
	if len(items) > 0 {
		dir = items[0].Dir
	}
	m.form = NewInputForm(NewInputField("Target directory", "relative to the root, e.g. holiday/2024", dir, 512))
}

// Init initializes the move view
func (m *MoveModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the move view
func (m *MoveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.form.Keys.Cancel):
			return m, func() tea.Msg { return SwitchToBrowserMsg{} }
		case key.Matches(msg, m.form.Keys.Submit):
			return m, m.move()
		}
	}

	_, cmd := m.form.Update(msg)
	return m, cmd
}

func (m *MoveModel) move() tea.Cmd {
	target := m.form.Value(0)

	if len(m.items) == 1 {
		cmd := commands.NewMoveCommand(m.mutator, m.items[0].ID, target)
		if err := cmd.Validate(); err != nil {
			m.SetMessage(err.Error(), true)
			return nil
		}
		return runMutation(domain.KindMove, cmd.Execute)
	}

	cmd := commands.NewBatchMoveCommand(m.mutator, itemIDs(m.items), target)
	if err := cmd.Validate(); err != nil {
		m.SetMessage(err.Error(), true)
		return nil
	}
	return runMutation(domain.KindMove, cmd.Execute)
}

// View renders the move view
func (m *MoveModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Move"))
	b.WriteString("\n\n")
	b.WriteString(RenderTargets(m.items, "Move"))
	b.WriteString("\n")
	b.WriteString(m.form.View())
	b.WriteString("\n\n")

	if m.Message != "" {
		b.WriteString(styles.ErrorMsg.Render(m.Message))
		b.WriteString("\n\n")
	}

	b.WriteString(m.form.RenderHelp("move"))

	return styles.App.Render(b.String())
}
