package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"launchstate/internal/app"
	"launchstate/internal/launch"
)

// Controller defines the subset of app.App behaviour the TUI needs.
type Controller interface {
	Status() (app.DaemonStatus, error)
	StartDaemon() (*app.DaemonHandle, error)
	Snapshot(ctx context.Context, timeout time.Duration) (launch.Snapshot, error)
	RequestTimeout() time.Duration
}

// Model represents the Bubble Tea state.
type Model struct {
	controller Controller

	list    list.Model
	spinner spinner.Model

	snapshot     launch.Snapshot
	daemonStatus app.DaemonStatus
	statusMsg    string

	// handle keeps a daemon started from the TUI alive until quit.
	handle *app.DaemonHandle

	err     error
	loading bool

	width  int
	height int

	lastUpdated time.Time
}

// New constructs a TUI model with default styles.
func New(ctrl Controller) *Model {
	delegate := list.NewDefaultDelegate()
	lst := list.New([]list.Item{}, delegate, 0, 0)
	lst.Title = "Launch options"
	lst.SetShowHelp(false)
	lst.SetFilteringEnabled(false)
	lst.DisableQuitKeybindings()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return &Model{
		controller: ctrl,
		list:       lst,
		spinner:    spin,
		statusMsg:  "Checking daemon status…",
		loading:    true,
	}
}

// Run spins up the Bubble Tea program with sensible defaults.
func Run(ctrl Controller) error {
	m := New(ctrl)
	prog := tea.NewProgram(m, tea.WithAltScreen())
	_, err := prog.Run()
	if m.handle != nil {
		if cerr := m.handle.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, checkDaemonStatusCmd(m.controller))
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.height > 6 {
			m.list.SetSize(msg.Width, msg.Height-6)
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case daemonStatusMsg:
		m.daemonStatus = msg.status
		if msg.status.Running {
			if msg.status.PID > 0 {
				m.statusMsg = fmt.Sprintf("Daemon running (pid %d). Press r to refresh, q to quit.", msg.status.PID)
			} else {
				m.statusMsg = "Daemon running. Press r to refresh, q to quit."
			}
			m.loading = true
			return m, loadSnapshotCmd(m.controller)
		}
		m.loading = false
		m.statusMsg = "Daemon is not running. Press s to start it."
		m.snapshot = launch.Snapshot{}
		m.list.SetItems(nil)

	case snapshotLoadedMsg:
		m.loading = false
		m.err = nil
		m.snapshot = msg.snapshot
		m.list.SetItems(optionItems(msg.snapshot.Options))
		m.lastUpdated = time.Now()

	case daemonStartedMsg:
		m.handle = msg.handle
		m.statusMsg = "Daemon started."
		return m, checkDaemonStatusCmd(m.controller)

	case errMsg:
		m.loading = false
		m.err = msg.err

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			return m, checkDaemonStatusCmd(m.controller)
		case "s":
			if !m.daemonStatus.Running {
				m.statusMsg = "Starting daemon…"
				return m, startDaemonCmd(m.controller)
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	statusStyle := lipgloss.NewStyle().Bold(true)
	if !m.daemonStatus.Running {
		statusStyle = statusStyle.Foreground(lipgloss.Color("203"))
	} else {
		statusStyle = statusStyle.Foreground(lipgloss.Color("42"))
	}
	b.WriteString(statusStyle.Render(m.statusMsg))
	b.WriteByte('\n')

	if m.loading {
		b.WriteString(m.spinner.View() + " Loading launch options…\n")
	} else if m.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
		b.WriteString(errStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteByte('\n')
	}

	if m.daemonStatus.Running && !m.loading && m.err == nil {
		summary := "No launch options recorded yet."
		if m.snapshot.Present {
			summary = fmt.Sprintf("revision %d • %d keys • updated %s",
				m.snapshot.Revision, len(m.snapshot.Options), formatTime(m.snapshot.UpdatedAt))
		}
		summaryStyle := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
		b.WriteString(summaryStyle.Render(summary))
		b.WriteByte('\n')

		if m.snapshot.Present && len(m.list.Items()) == 0 {
			b.WriteString("Launch options are empty.\n")
		} else if len(m.list.Items()) > 0 {
			b.WriteString(m.list.View())
			b.WriteByte('\n')
		}
	}

	help := "Commands: q quit • r reload • s start daemon"
	if !m.lastUpdated.IsZero() {
		help += fmt.Sprintf(" • last update %s", m.lastUpdated.Format(time.Kitchen))
	}
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	b.WriteString(helpStyle.Render(help))

	return b.String()
}

// optionItem adapts one launch option to the bubbles list item interface.
type optionItem struct {
	Key   string
	Value any
}

func (o optionItem) Title() string { return o.Key }

func (o optionItem) Description() string {
	return renderValue(o.Value)
}

func (o optionItem) FilterValue() string { return o.Key }

func optionItems(opts launch.Options) []list.Item {
	keys := make([]string, 0, len(opts))
	for k := range opts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	items := make([]list.Item, 0, len(keys))
	for _, k := range keys {
		items = append(items, optionItem{Key: k, Value: opts[k]})
	}
	return items
}

func renderValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(time.DateTime)
}

type daemonStatusMsg struct {
	status app.DaemonStatus
}

type snapshotLoadedMsg struct {
	snapshot launch.Snapshot
}

type daemonStartedMsg struct {
	handle *app.DaemonHandle
}

type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

func checkDaemonStatusCmd(ctrl Controller) tea.Cmd {
	return func() tea.Msg {
		status, err := ctrl.Status()
		if err != nil {
			return errMsg{err}
		}
		return daemonStatusMsg{status: status}
	}
}

func loadSnapshotCmd(ctrl Controller) tea.Cmd {
	return func() tea.Msg {
		timeout := ctrl.RequestTimeout()
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		snap, err := ctrl.Snapshot(ctx, timeout)
		if err != nil {
			return errMsg{err}
		}
		return snapshotLoadedMsg{snapshot: snap}
	}
}

func startDaemonCmd(ctrl Controller) tea.Cmd {
	return func() tea.Msg {
		handle, err := ctrl.StartDaemon()
		if err != nil {
			return errMsg{err}
		}
		// Give the daemon a moment to bind the socket.
		time.Sleep(300 * time.Millisecond)
		return daemonStartedMsg{handle: handle}
	}
}
