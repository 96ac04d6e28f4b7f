package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"videovault/internal/adapters/tui/styles"
	"videovault/internal/application/commands"
	"videovault/internal/domain"
)

// Services are the application pieces the views call into
type Services struct {
	Mutator commands.Mutator
	Items   commands.ItemLister
	AbsPath func(rootKey, relPath string) (string, error)
}

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Mark     key.Binding
	Rename   key.Binding
	Move     key.Binding
	Delete   key.Binding
	Undo     key.Binding
	Filter   key.Binding
	Open     key.Binding
	Copy     key.Binding
	Clear    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("pgup", "previous page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d"),
		key.WithHelp("pgdn", "next page"),
	),
	Mark: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "mark"),
	),
	Rename: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rename"),
	),
	Move: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "move"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Undo: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "undo"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	Open: key.NewBinding(
		key.WithKeys("o", "enter"),
		key.WithHelp("o", "play"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy path"),
	),
	Clear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// BrowserModel is the model for the library list view
type BrowserModel struct {
	ViewState
	svc Services

	all     []domain.Item
	loaded  bool
	visible []domain.Item
	marked  map[string]bool
	pager   *Paginator

	filter    textinput.Model
	filtering bool

	spinner spinner.Model
	busy    bool
	toast   *ToastModel
}

// NewBrowserModel creates a new browser model
func NewBrowserModel(svc Services) *BrowserModel {
	filter := textinput.New()
	filter.Placeholder = "filter by name"
	filter.Prompt = "/ "

	return &BrowserModel{
		svc:     svc,
		marked:  make(map[string]bool),
		pager:   NewPaginator(20),
		filter:  filter,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		toast:   NewToastModel(nil),
	}
}

// Init initializes the browser
func (m *BrowserModel) Init() tea.Cmd {
	return m.loadItems
}

func (m *BrowserModel) loadItems() tea.Msg {
	items, err := commands.NewListCommand(m.svc.Items, "", "", true).Execute(context.Background())
	if err != nil {
		return errMsg{err}
	}
	return itemsLoadedMsg{items}
}

type itemsLoadedMsg struct {
	items []domain.Item
}

type errMsg struct {
	err error
}

type undoDoneMsg struct {
	message string
	err     error
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case itemsLoadedMsg:
		m.all = msg.items
		m.loaded = true
		for id := range m.marked {
			if _, ok := m.svc.Items.Get(id); !ok {
				delete(m.marked, id)
			}
		}
		m.applyFilter()
		return m, nil

	case errMsg:
		m.busy = false
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case MutationDoneMsg:
		m.busy = false
		m.marked = make(map[string]bool)
		cmd := m.toast.Show(msg.Message, msg.UndoID, m.expiry(msg.UndoID), msg.Failed > 0)
		return m, tea.Batch(cmd, m.Reload())

	case NotificationMsg:
		n := msg.Notification
		cmd := m.toast.Show(n.Message, n.UndoID, m.expiry(n.UndoID), n.Level == domain.LevelError)
		return m, tea.Batch(cmd, m.Reload())

	case undoDoneMsg:
		m.busy = false
		if msg.err != nil {
			return m, tea.Batch(m.toast.Show(msg.err.Error(), "", time.Time{}, true), m.Reload())
		}
		return m, tea.Batch(m.toast.Show(msg.message, "", time.Time{}, false), m.Reload())

	case toastTickMsg:
		return m, m.toast.Update(msg)

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.filtering {
			return m, m.updateFilter(msg)
		}
		m.ClearMessage()
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *BrowserModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, BrowserKeys.Quit):
		return tea.Quit

	case key.Matches(msg, BrowserKeys.Up):
		m.pager.CursorUp()

	case key.Matches(msg, BrowserKeys.Down):
		m.pager.CursorDown()

	case key.Matches(msg, BrowserKeys.PrevPage):
		m.pager.PrevPage()

	case key.Matches(msg, BrowserKeys.NextPage):
		m.pager.NextPage()

	case key.Matches(msg, BrowserKeys.Mark):
		if item, ok := m.current(); ok {
			if m.marked[item.ID] {
				delete(m.marked, item.ID)
			} else {
				m.marked[item.ID] = true
			}
			m.pager.CursorDown()
		}

	case key.Matches(msg, BrowserKeys.Clear):
		m.marked = make(map[string]bool)
		m.filter.SetValue("")
		m.applyFilter()

	case key.Matches(msg, BrowserKeys.Filter):
		m.filtering = true
		return m.filter.Focus()

	case key.Matches(msg, BrowserKeys.Rename):
		if items := m.Selection(); len(items) > 0 {
			return func() tea.Msg { return SwitchToRenameMsg{Items: items} }
		}

	case key.Matches(msg, BrowserKeys.Move):
		if items := m.Selection(); len(items) > 0 {
			return func() tea.Msg { return SwitchToMoveMsg{Items: items} }
		}

	case key.Matches(msg, BrowserKeys.Delete):
		if items := m.Selection(); len(items) > 0 {
			return func() tea.Msg { return SwitchToDeleteMsg{Items: items} }
		}

	case key.Matches(msg, BrowserKeys.Undo):
		return m.undo()

	case key.Matches(msg, BrowserKeys.Open):
		if path, ok := m.currentPath(); ok {
			return func() tea.Msg { return OpenPlayerMsg{Path: path} }
		}

	case key.Matches(msg, BrowserKeys.Copy):
		if path, ok := m.currentPath(); ok {
			if err := clipboard.WriteAll(path); err != nil {
				m.SetMessage(fmt.Sprintf("Copy failed: %v", err), true)
			} else {
				m.SetMessage("Copied "+path, false)
			}
		}

	case key.Matches(msg, BrowserKeys.Help):
		return func() tea.Msg { return SwitchToHelpMsg{} }
	}
	return nil
}

func (m *BrowserModel) updateFilter(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.applyFilter()
		return nil
	case "enter":
		m.filtering = false
		m.filter.Blur()
		return nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return cmd
}

func (m *BrowserModel) applyFilter() {
	m.visible = commands.FilterItems(m.all, strings.TrimSpace(m.filter.Value()))
	m.pager.SetTotal(len(m.visible))
}

// undo reverts the mutation shown in the toast, or the newest pending one
func (m *BrowserModel) undo() tea.Cmd {
	undoID := m.toast.UndoID()
	if undoID == "" {
		pending := m.svc.Mutator.Pending()
		if len(pending) == 0 {
			m.SetMessage("Nothing to undo", false)
			return nil
		}
		undoID = pending[len(pending)-1].UndoID
	}
	m.toast.Hide()
	m.busy = true

	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		res, err := commands.NewUndoCommand(m.svc.Mutator, undoID).Execute(context.Background())
		if err != nil {
			return undoDoneMsg{err: err}
		}
		return undoDoneMsg{message: res.Message}
	})
}

// expiry returns when the undo entry stops being available, zero if never
func (m *BrowserModel) expiry(undoID string) time.Time {
	if undoID == "" {
		return time.Time{}
	}
	for _, e := range m.svc.Mutator.Pending() {
		if e.UndoID == undoID {
			return e.ExpiresAt()
		}
	}
	return time.Time{}
}

func (m *BrowserModel) current() (domain.Item, bool) {
	c := m.pager.Cursor()
	if c >= 0 && c < len(m.visible) {
		return m.visible[c], true
	}
	return domain.Item{}, false
}

func (m *BrowserModel) currentPath() (string, bool) {
	item, ok := m.current()
	if !ok || m.svc.AbsPath == nil {
		return "", false
	}
	path, err := m.svc.AbsPath(item.RootKey, item.Path())
	if err != nil {
		m.SetMessage(err.Error(), true)
		return "", false
	}
	return path, true
}

// Selection returns the marked items in list order, or the item under the
// cursor when nothing is marked
func (m *BrowserModel) Selection() []domain.Item {
	var items []domain.Item
	for _, item := range m.all {
		if m.marked[item.ID] {
			items = append(items, item)
		}
	}
	if len(items) > 0 {
		return items
	}
	if item, ok := m.current(); ok {
		return []domain.Item{item}
	}
	return nil
}

// StartBusy shows the spinner until the next MutationDoneMsg
func (m *BrowserModel) StartBusy() tea.Cmd {
	m.busy = true
	return m.spinner.Tick
}

// View renders the browser
func (m *BrowserModel) View() string {
	if !m.loaded && m.Message == "" {
		return styles.App.Render("Loading library...")
	}

	var b strings.Builder

	b.WriteString(styles.Title.Render("VideoVault"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render(m.subtitle()))
	b.WriteString("\n\n")

	if m.filtering || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
	}

	start, end := m.pager.VisibleRange()
	for i := start; i < end; i++ {
		b.WriteString(m.renderItem(m.visible[i], i == m.pager.Cursor()))
		b.WriteString("\n")
	}
	if len(m.visible) == 0 {
		b.WriteString(styles.MutedText.Render("No videos."))
		b.WriteString("\n")
	}

	if m.busy {
		b.WriteString("\n")
		b.WriteString(m.spinner.View() + " working...")
	}

	if toast := m.toast.View(); toast != "" {
		b.WriteString("\n")
		b.WriteString(toast)
	}

	if m.Message != "" {
		b.WriteString("\n")
		if m.MessageErr {
			b.WriteString(styles.ErrorMsg.Render(m.Message))
		} else {
			b.WriteString(styles.Success.Render(m.Message))
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelpLine())

	return styles.App.Render(b.String())
}

func (m *BrowserModel) subtitle() string {
	s := fmt.Sprintf("%d videos", len(m.all))
	if len(m.visible) != len(m.all) {
		s = fmt.Sprintf("%d of %d videos", len(m.visible), len(m.all))
	}
	if n := len(m.marked); n > 0 {
		s += fmt.Sprintf(", %d marked", n)
	}
	if pages := m.pager.TotalPages(); pages > 1 {
		s += fmt.Sprintf("  page %d/%d", m.pager.CurrentPage(), pages)
	}
	return s
}

func (m *BrowserModel) renderItem(item domain.Item, selected bool) string {
	mark := styles.BlankMark
	if m.marked[item.ID] {
		mark = styles.ItemMarked.Render(styles.MarkedMark)
	}
	if selected {
		mark = styles.CursorMark
	}

	name := styles.ItemName.Render(item.DisplayName)
	if selected {
		name = styles.ItemSelected.Render(item.DisplayName)
	} else if m.marked[item.ID] {
		name = styles.ItemMarked.Render(item.DisplayName)
	}

	root := styles.RootTag.Foreground(styles.RootColor(item.RootKey)).Render(item.RootKey)
	return fmt.Sprintf("%s%s  %s %s", mark, name, root, styles.ItemPath.Render(item.Path()))
}

func (m *BrowserModel) renderHelpLine() string {
	keys := []struct {
		key  string
		desc string
	}{
		{"j/k", "navigate"},
		{"space", "mark"},
		{"r", "rename"},
		{"m", "move"},
		{"d", "delete"},
		{"u", "undo"},
		{"/", "filter"},
		{"o", "play"},
		{"?", "help"},
		{"q", "quit"},
	}

	var parts []string
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %s",
			styles.HelpKey.Render(k.key),
			styles.HelpDesc.Render(k.desc),
		))
	}

	return strings.Join(parts, styles.HelpSeparator.String())
}

// SetSize updates the view dimensions
func (m *BrowserModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	// Title, subtitle, filter, toast and help take about 12 lines
	m.pager.SetPageSize(height - 12)
}

// Reload reloads the item list from the library
func (m *BrowserModel) Reload() tea.Cmd {
	return m.loadItems
}
