package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"videovault/internal/adapters/tui/views"
	"videovault/internal/domain"
)

// ProgramNotifier forwards coordinator notifications into a running program.
// Notifications raised before Attach are dropped.
type ProgramNotifier struct {
	mu sync.Mutex
	p  *tea.Program
}

// Attach sets the program notifications are sent to
func (n *ProgramNotifier) Attach(p *tea.Program) {
	n.mu.Lock()
	n.p = p
	n.mu.Unlock()
}

// Notify implements ports.Notifier. Send blocks until the update loop reads
// the message, so it runs on its own goroutine.
func (n *ProgramNotifier) Notify(note domain.Notification) {
	n.mu.Lock()
	p := n.p
	n.mu.Unlock()
	if p == nil {
		return
	}
	go p.Send(views.NotificationMsg{Notification: note})
}
