// Package tui implements the terminal dashboard, a keyboard-driven
// counterpart to the web pages. It renders the same three artifact views
// and reloads them when the files change on disk.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sophiakit/sophiakit/internal/artifact"
	"github.com/sophiakit/sophiakit/internal/config"
	"github.com/sophiakit/sophiakit/internal/graph"
	"github.com/sophiakit/sophiakit/internal/notify"
)

type page int

const (
	pageTrends page = iota
	pageGraph
	pageLogs
	pageCount
)

func (p page) title() string {
	switch p {
	case pageTrends:
		return "Ethical Trends"
	case pageGraph:
		return "Knowledge Graph"
	default:
		return "System Event Log"
	}
}

// artifactsMsg carries one complete load of all three artifacts.
type artifactsMsg struct {
	db       artifact.EthicsDatabase
	kg       artifact.KnowledgeGraph
	overview *graph.Overview
	entries  []artifact.LogEntry
	notices  []notify.Diagnostic
	at       time.Time
}

// fileChangedMsg reports that a watched artifact settled after a change.
type fileChangedMsg struct {
	path string
}

const (
	timeColWidth  = 20
	levelColWidth = 8
)

// Model drives the terminal dashboard.
type Model struct {
	cfg    *config.Config
	styles Styles
	watch  *Watcher // nil disables live reload

	page   page
	width  int
	height int
	ready  bool

	db       artifact.EthicsDatabase
	kg       artifact.KnowledgeGraph
	overview *graph.Overview
	entries  []artifact.LogEntry
	notices  []notify.Diagnostic
	loadedAt time.Time

	logTable table.Model
}

// NewModel builds the dashboard model. Pass a nil watcher to disable live
// reload.
func NewModel(cfg *config.Config, watch *Watcher) Model {
	t := table.New(
		table.WithColumns(logColumns(80)),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	return Model{
		cfg:      cfg,
		styles:   DefaultStyles(),
		watch:    watch,
		logTable: t,
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadArtifacts}
	if m.watch != nil {
		cmds = append(cmds, waitForChange(m.watch))
	}
	return tea.Batch(cmds...)
}

// loadArtifacts reads all three artifacts fresh from disk. Loads never
// fail: bad inputs come back as typed defaults plus diagnostics.
func (m Model) loadArtifacts() tea.Msg {
	rec := notify.NewRecorder()
	db := artifact.LoadEthicsDatabase(m.cfg.Artifacts.EthicsDB, rec)
	kg := artifact.LoadKnowledgeGraph(m.cfg.Artifacts.KnowledgeGraph, rec)
	entries := artifact.LoadSystemEventLog(m.cfg.Artifacts.SystemEventLog, rec)
	return artifactsMsg{
		db:       db,
		kg:       kg,
		overview: graph.FromArtifact(kg),
		entries:  entries,
		notices:  rec.Diagnostics(),
		at:       time.Now(),
	}
}

// waitForChange blocks on the watcher until an artifact settles.
func waitForChange(w *Watcher) tea.Cmd {
	return func() tea.Msg {
		path, ok := <-w.Events()
		if !ok {
			return nil
		}
		return fileChangedMsg{path: path}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case artifactsMsg:
		m.db = msg.db
		m.kg = msg.kg
		m.overview = msg.overview
		m.entries = msg.entries
		m.notices = msg.notices
		m.loadedAt = msg.at
		m.refreshLogRows()
		return m, nil

	case fileChangedMsg:
		cmds := []tea.Cmd{m.loadArtifacts}
		if m.watch != nil {
			cmds = append(cmds, waitForChange(m.watch))
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "1":
			m.page = pageTrends
		case "2":
			m.page = pageGraph
		case "3":
			m.page = pageLogs
		case "tab":
			m.page = (m.page + 1) % pageCount
		case "r":
			return m, m.loadArtifacts
		default:
			if m.page == pageLogs {
				var cmd tea.Cmd
				m.logTable, cmd = m.logTable.Update(msg)
				return m, cmd
			}
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) setSize(w, h int) {
	m.width = w
	m.height = h
	m.ready = true
	m.logTable.SetColumns(logColumns(w))
	m.logTable.SetWidth(w - 2)
	if h > 14 {
		m.logTable.SetHeight(h - 10)
	}
}

func logColumns(width int) []table.Column {
	msgWidth := width - timeColWidth - levelColWidth - 8
	if msgWidth < 20 {
		msgWidth = 20
	}
	return []table.Column{
		{Title: "Time", Width: timeColWidth},
		{Title: "Level", Width: levelColWidth},
		{Title: "Message", Width: msgWidth},
	}
}

// refreshLogRows rebuilds the table from the configured tail window.
func (m *Model) refreshLogRows() {
	tail := artifact.Tail(m.entries, m.cfg.Display.LogEntries)
	rows := make([]table.Row, 0, len(tail))
	for _, e := range tail {
		if !e.IsObject() {
			// Non-object lines show their raw text in the message column.
			rows = append(rows, table.Row{"", "", string(e.Value)})
			continue
		}
		rows = append(rows, table.Row{e.Timestamp, e.Level, e.Message})
	}
	m.logTable.SetRows(rows)
}
