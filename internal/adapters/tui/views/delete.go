package views

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"videovault/internal/adapters/tui/styles"
	"videovault/internal/application/commands"
	"videovault/internal/domain"
)

// DeleteModel confirms the deletion of the selected videos
type DeleteModel struct {
	ConfirmationModel
	mutator commands.Mutator
}

// NewDeleteModel creates a new delete view model
func NewDeleteModel(mutator commands.Mutator) *DeleteModel {
	return &DeleteModel{
		ConfirmationModel: NewConfirmationModel(),
		mutator:           mutator,
	}
}

// Init initializes the delete view
func (m *DeleteModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the delete view
func (m *DeleteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		_, cmd := m.HandleKeyMsg(msg, m.delete, func() tea.Cmd {
			return func() tea.Msg { return SwitchToBrowserMsg{} }
		})
		return m, cmd
	}

	return m, nil
}

func (m *DeleteModel) delete() tea.Cmd {
	if len(m.Targets) == 1 {
		cmd := commands.NewDeleteCommand(m.mutator, m.Targets[0].ID)
		return runMutation(domain.KindDelete, cmd.Execute)
	}
	cmd := commands.NewBatchDeleteCommand(m.mutator, itemIDs(m.Targets))
	return runMutation(domain.KindDelete, cmd.Execute)
}

// View renders the delete confirmation
func (m *DeleteModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Delete"))
	b.WriteString("\n\n")
	b.WriteString(RenderTargets(m.Targets, "Delete"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Files are removed from disk once the undo window closes."))
	b.WriteString("\n\n")
	b.WriteString(RenderConfirmPrompt("Delete?"))

	return styles.App.Render(b.String())
}
