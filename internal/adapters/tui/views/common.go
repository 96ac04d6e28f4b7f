package views

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"videovault/internal/application/commands"
	"videovault/internal/domain"
)

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// Messages for view switching
type SwitchToRenameMsg struct {
	Items []domain.Item
}

type SwitchToMoveMsg struct {
	Items []domain.Item
}

type SwitchToDeleteMsg struct {
	Items []domain.Item
}

type SwitchToHelpMsg struct{}

type SwitchToBrowserMsg struct{}

// MutationDoneMsg carries the summary of a finished rename, move or delete
type MutationDoneMsg struct {
	Kind    domain.MutationKind
	Message string
	UndoID  string
	Failed  int
}

// NotificationMsg wraps a notification raised outside the update loop,
// e.g. when a deferred delete is finalized
type NotificationMsg struct {
	Notification domain.Notification
}

// OpenPlayerMsg asks the app to play a file
type OpenPlayerMsg struct {
	Path string
}

// MutationStartedMsg is sent when a form hands a mutation off to the coordinator
type MutationStartedMsg struct{}

// runMutation reports the start of a mutation, then executes it off the
// update loop
func runMutation(kind domain.MutationKind, exec func(ctx context.Context) (*commands.MutationResult, error)) tea.Cmd {
	return tea.Sequence(
		func() tea.Msg { return MutationStartedMsg{} },
		func() tea.Msg {
			res, err := exec(context.Background())
			if err != nil {
				return errMsg{err}
			}
			return MutationDoneMsg{
				Kind:    kind,
				Message: res.Message,
				UndoID:  res.UndoID,
				Failed:  res.Failed,
			}
		},
	)
}
