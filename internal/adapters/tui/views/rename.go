package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"videovault/internal/adapters/tui/styles"
	"videovault/internal/application/commands"
	"videovault/internal/domain"
)

// Single rename fields
const (
	renameFieldName = iota
	renameFieldApplyTo
)

// Batch rename fields
const (
	batchFieldPrefix = iota
	batchFieldStart
	batchFieldPad
	batchFieldKeep
	batchFieldApplyTo
)

// RenameModel renames one video, or numbers a marked selection
type RenameModel struct {
	ViewState
	mutator commands.Mutator
	items   []domain.Item
	form    *InputForm
}

// NewRenameModel creates a new rename view model
func NewRenameModel(mutator commands.Mutator) *RenameModel {
	return &RenameModel{mutator: mutator}
}

// SetItems prepares the form for items
func (m *RenameModel) SetItems(items []domain.Item) {
	m.items = items
	m.ClearMessage()

	if len(items) == 1 {
		m.form = NewInputForm(
			NewInputField("New name", "name without extension", items[0].DisplayName, 255),
			NewInputField("Apply to (displayName, filename, both)", "both", string(domain.ApplyToBoth), 16),
		)
		return
	}
	m.form = NewInputForm(
		NewInputField("Prefix", "e.g. S01E", "", 64),
		NewInputField("Start number", "1", "1", 6),
		NewInputField("Pad digits", "2", "2", 2),
		NewInputField("Keep original name (y/n)", "n", "n", 3),
		NewInputField("Apply to (displayName, filename, both)", "both", string(domain.ApplyToBoth), 16),
	)
}

// Init initializes the rename view
func (m *RenameModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the rename view
func (m *RenameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.form.Keys.Cancel):
			return m, func() tea.Msg { return SwitchToBrowserMsg{} }
		case key.Matches(msg, m.form.Keys.Submit):
			return m, m.submit()
		}
	}

	_, cmd := m.form.Update(msg)
	return m, cmd
}

func (m *RenameModel) submit() tea.Cmd {
	if len(m.items) == 1 {
		cmd := commands.NewRenameCommand(m.mutator, m.items[0].ID, m.form.Value(renameFieldName), m.form.Value(renameFieldApplyTo))
		if err := cmd.Validate(); err != nil {
			m.SetMessage(err.Error(), true)
			return nil
		}
		return runMutation(domain.KindRename, cmd.Execute)
	}

	opts, err := m.batchOptions()
	if err != nil {
		m.SetMessage(err.Error(), true)
		return nil
	}
	cmd := commands.NewBatchRenameCommand(m.mutator, itemIDs(m.items), opts)
	if err := cmd.Validate(); err != nil {
		m.SetMessage(err.Error(), true)
		return nil
	}
	return runMutation(domain.KindRename, cmd.Execute)
}

func (m *RenameModel) batchOptions() (domain.BatchRenameOptions, error) {
	start, err := atoiDefault(m.form.Value(batchFieldStart), 1)
	if err != nil {
		return domain.BatchRenameOptions{}, fmt.Errorf("start number: %w", err)
	}
	pad, err := atoiDefault(m.form.Value(batchFieldPad), 0)
	if err != nil {
		return domain.BatchRenameOptions{}, fmt.Errorf("pad digits: %w", err)
	}

	applyTo := domain.ApplyTo(m.form.Value(batchFieldApplyTo))
	if applyTo == "" {
		applyTo = domain.ApplyToBoth
	}

	return domain.BatchRenameOptions{
		Prefix:       m.form.Value(batchFieldPrefix),
		StartIndex:   start,
		PadDigits:    pad,
		KeepOriginal: strings.HasPrefix(strings.ToLower(m.form.Value(batchFieldKeep)), "y"),
		ApplyTo:      applyTo,
		Transform:    domain.TransformNone,
	}, nil
}

func atoiDefault(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}

func itemIDs(items []domain.Item) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}

// View renders the rename view
func (m *RenameModel) View() string {
	var b strings.Builder

	if len(m.items) == 1 {
		b.WriteString(styles.Title.Render("Rename"))
	} else {
		b.WriteString(styles.Title.Render("Batch Rename"))
	}
	b.WriteString("\n\n")
	b.WriteString(RenderTargets(m.items, "Rename"))
	b.WriteString("\n")
	b.WriteString(m.form.View())
	b.WriteString("\n\n")

	if len(m.items) > 1 {
		if opts, err := m.batchOptions(); err == nil {
			b.WriteString(styles.MutedText.Render("Preview: " + domain.BuildBatchName(m.items[0], 0, opts)))
			b.WriteString("\n\n")
		}
	}

	if m.Message != "" {
		if m.MessageErr {
			b.WriteString(styles.ErrorMsg.Render(m.Message))
		} else {
			b.WriteString(styles.Success.Render(m.Message))
		}
		b.WriteString("\n\n")
	}

	b.WriteString(m.form.RenderHelp("rename"))

	return styles.App.Render(b.String())
}
