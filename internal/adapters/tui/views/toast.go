package views

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"videovault/internal/adapters/tui/styles"
)

// toastLinger is how long a toast without an undo stays on screen
const toastLinger = 4 * time.Second

type toastTickMsg struct {
	seq int
}

// ToastModel shows the outcome of the last mutation and, while the undo is
// available, a countdown to its expiry
type ToastModel struct {
	now func() time.Time

	message   string
	undoID    string
	isErr     bool
	shownAt   time.Time
	expiresAt time.Time
	visible   bool
	seq       int
}

// NewToastModel creates a hidden toast. now defaults to time.Now.
func NewToastModel(now func() time.Time) *ToastModel {
	if now == nil {
		now = time.Now
	}
	return &ToastModel{now: now}
}

// Show displays message and starts the countdown ticks. expiresAt is zero
// when the undo never expires.
func (t *ToastModel) Show(message, undoID string, expiresAt time.Time, isErr bool) tea.Cmd {
	t.seq++
	t.message = message
	t.undoID = undoID
	t.isErr = isErr
	t.shownAt = t.now()
	t.expiresAt = expiresAt
	t.visible = true
	return t.tick()
}

// Hide removes the toast
func (t *ToastModel) Hide() {
	t.visible = false
	t.undoID = ""
	t.seq++
}

// Visible reports whether the toast is shown
func (t *ToastModel) Visible() bool {
	return t.visible
}

// UndoID returns the undo offered by the toast, empty once it expired
func (t *ToastModel) UndoID() string {
	if !t.visible || t.undoExpired() {
		return ""
	}
	return t.undoID
}

// Remaining returns the time left on the undo countdown
func (t *ToastModel) Remaining() time.Duration {
	if t.expiresAt.IsZero() {
		return 0
	}
	return max(t.expiresAt.Sub(t.now()), 0)
}

func (t *ToastModel) undoExpired() bool {
	return !t.expiresAt.IsZero() && !t.now().Before(t.expiresAt)
}

func (t *ToastModel) done() bool {
	now := t.now()
	if t.undoID != "" && !t.expiresAt.IsZero() {
		return !now.Before(t.expiresAt)
	}
	return now.Sub(t.shownAt) >= toastLinger
}

func (t *ToastModel) tick() tea.Cmd {
	seq := t.seq
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return toastTickMsg{seq: seq}
	})
}

// Update advances the countdown. Ticks from an earlier toast are dropped.
func (t *ToastModel) Update(msg toastTickMsg) tea.Cmd {
	if msg.seq != t.seq || !t.visible {
		return nil
	}
	if t.done() {
		t.Hide()
		return nil
	}
	return t.tick()
}

// View renders the toast, or nothing when hidden
func (t *ToastModel) View() string {
	if !t.visible {
		return ""
	}

	if t.isErr {
		return styles.ToastError.Render(t.message)
	}

	content := t.message
	if id := t.UndoID(); id != "" {
		content += "  " + styles.HelpKey.Render("u") + " " + styles.HelpDesc.Render("undo")
		if left := t.Remaining(); left > 0 {
			secs := int((left + time.Second - 1) / time.Second)
			content += " " + styles.Countdown.Render(fmt.Sprintf("%ds", secs))
		}
	}
	return styles.Toast.Render(content)
}
