package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"videovault/internal/adapters/tui/styles"
	"videovault/internal/domain"
)

// ConfirmKeyMap defines key bindings for confirmation views
type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultConfirmKeys returns the default confirmation key bindings
var DefaultConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
}

// maxListedTargets caps how many items a confirmation lists by name
const maxListedTargets = 8

// ConfirmationModel provides a base for confirmation-style views
type ConfirmationModel struct {
	ViewState
	Targets []domain.Item
	Keys    ConfirmKeyMap
}

// NewConfirmationModel creates a new confirmation model with default keys
func NewConfirmationModel() ConfirmationModel {
	return ConfirmationModel{
		Keys: DefaultConfirmKeys,
	}
}

// SetTargets sets the items the confirmation applies to
func (m *ConfirmationModel) SetTargets(items []domain.Item) {
	m.Targets = items
	m.ClearMessage()
}

// HandleKeyMsg processes key messages for confirmation views.
// Returns (handled, cmd) where handled is true if the key was processed.
func (m *ConfirmationModel) HandleKeyMsg(msg tea.KeyMsg, onConfirm, onCancel func() tea.Cmd) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Cancel):
		return true, onCancel()
	case key.Matches(msg, m.Keys.Confirm):
		return true, onConfirm()
	}
	return false, nil
}

// RenderConfirmPrompt renders the standard confirmation prompt
func RenderConfirmPrompt(question string) string {
	var b strings.Builder
	b.WriteString(question)
	b.WriteString(" ")
	b.WriteString(styles.HelpKey.Render("y"))
	b.WriteString(styles.HelpDesc.Render(" to confirm, "))
	b.WriteString(styles.HelpKey.Render("n"))
	b.WriteString(styles.HelpDesc.Render(" to cancel"))
	return b.String()
}

// RenderTargets lists the items an action applies to
func RenderTargets(items []domain.Item, action string) string {
	if len(items) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.InputLabel.Render(fmt.Sprintf("%s %s:", action, countNoun(len(items)))))
	b.WriteString("\n")

	for i, item := range items {
		if i == maxListedTargets {
			b.WriteString(styles.MutedText.Render(fmt.Sprintf("  ... and %d more", len(items)-i)))
			b.WriteString("\n")
			break
		}
		b.WriteString("  ")
		b.WriteString(styles.ItemName.Render(item.DisplayName))
		b.WriteString(" ")
		b.WriteString(styles.ItemPath.Render(item.RootKey + ":" + item.Path()))
		b.WriteString("\n")
	}

	return b.String()
}

func countNoun(n int) string {
	if n == 1 {
		return "1 video"
	}
	return fmt.Sprintf("%d videos", n)
}
