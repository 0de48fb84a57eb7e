package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sophiakit/sophiakit/internal/artifact"
	"github.com/sophiakit/sophiakit/internal/notify"
)

// Styles holds the lipgloss styles for the terminal dashboard. The palette
// matches the web pages.
type Styles struct {
	Title     lipgloss.Style
	Tab       lipgloss.Style
	TabActive lipgloss.Style
	Section   lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Info      lipgloss.Style
	Warn      lipgloss.Style
	Error     lipgloss.Style
	Muted     lipgloss.Style
	Spark     lipgloss.Style
	Help      lipgloss.Style
}

func DefaultStyles() Styles {
	var (
		accent      = lipgloss.Color("#6366f1")
		accentLight = lipgloss.Color("#818cf8")
		danger      = lipgloss.Color("#ef4444")
		warn        = lipgloss.Color("#f59e0b")
		text        = lipgloss.Color("#e0e0ee")
		text2       = lipgloss.Color("#8888aa")
		text3       = lipgloss.Color("#555570")
	)
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(accentLight),
		Tab:       lipgloss.NewStyle().Foreground(text2).Padding(0, 1),
		TabActive: lipgloss.NewStyle().Bold(true).Foreground(text).Background(accent).Padding(0, 1),
		Section:   lipgloss.NewStyle().Bold(true).Foreground(accentLight),
		Label:     lipgloss.NewStyle().Foreground(text2),
		Value:     lipgloss.NewStyle().Bold(true).Foreground(text),
		Info:      lipgloss.NewStyle().Foreground(accentLight),
		Warn:      lipgloss.NewStyle().Foreground(warn),
		Error:     lipgloss.NewStyle().Foreground(danger),
		Muted:     lipgloss.NewStyle().Foreground(text3),
		Spark:     lipgloss.NewStyle().Foreground(accent),
		Help:      lipgloss.NewStyle().Foreground(text3),
	}
}

func (m Model) View() string {
	if !m.ready {
		return "Loading Sophia Toolkit..."
	}

	var b strings.Builder
	b.WriteString(m.viewTabs())
	b.WriteString("\n\n")

	for _, d := range m.notices {
		b.WriteString(m.viewNotice(d))
		b.WriteString("\n")
	}
	if len(m.notices) > 0 {
		b.WriteString("\n")
	}

	switch m.page {
	case pageTrends:
		b.WriteString(m.viewTrends())
	case pageGraph:
		b.WriteString(m.viewGraph())
	default:
		b.WriteString(m.viewLogs())
	}

	b.WriteString("\n\n")
	b.WriteString(m.viewHelp())
	return b.String()
}

func (m Model) viewTabs() string {
	parts := []string{m.styles.Title.Render("sophiakit")}
	for p := pageTrends; p < pageCount; p++ {
		if p == m.page {
			parts = append(parts, m.styles.TabActive.Render(p.title()))
		} else {
			parts = append(parts, m.styles.Tab.Render(p.title()))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) viewNotice(d notify.Diagnostic) string {
	if d.Severity == notify.SeverityError {
		return m.styles.Error.Render("error: " + d.Message)
	}
	return m.styles.Warn.Render("warning: " + d.Message)
}

func (m Model) viewTrends() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Ethical Trends Analysis"))
	b.WriteString("\n\n")

	if len(m.db.Events) == 0 {
		b.WriteString(m.styles.Warn.Render("No ethical events data loaded or data is empty. Cannot display trends."))
		return b.String()
	}

	b.WriteString(m.styles.Section.Render("Trend Analysis Summary"))
	b.WriteString("\n")
	if m.db.Trend.IsEmpty() {
		b.WriteString(m.styles.Info.Render("No trend analysis summary available in the data."))
		b.WriteString("\n")
	} else {
		fmt.Fprintf(&b, "%s %s\n",
			m.styles.Label.Render("Current Trend Direction:"),
			m.styles.Value.Render(m.db.Trend.Direction()))
		fmt.Fprintf(&b, "%s %s\n",
			m.styles.Label.Render("Short-term Avg Score (Time-Weighted):"),
			m.styles.Value.Render(fmt.Sprintf("%.2f", m.db.Trend.AvgScore())))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Section.Render("Ethical Score Over Time"))
	b.WriteString("\n")
	points, err := artifact.ScoreSeries(m.db.Events)
	if err != nil {
		b.WriteString(m.styles.Error.Render(artifact.ChartErrorMessage(err)))
		return b.String()
	}
	if len(points) == 0 {
		b.WriteString(m.styles.Muted.Render("(no chartable points)"))
		return b.String()
	}
	width := m.width - 4
	if width > sparkMaxWidth {
		width = sparkMaxWidth
	}
	b.WriteString(m.styles.Spark.Render(Sparkline(points, width)))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(SparkCaption(points)))
	return b.String()
}

func (m Model) viewGraph() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Knowledge Graph Explorer"))
	b.WriteString("\n\n")

	if !m.kg.HasStructure() {
		b.WriteString(m.styles.Warn.Render("Knowledge graph data could not be loaded or is empty."))
		return b.String()
	}

	ov := m.overview
	b.WriteString(m.styles.Section.Render("Graph Overview"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s    %s %s\n",
		m.styles.Label.Render("Total Nodes:"),
		m.styles.Value.Render(strconv.Itoa(ov.TotalNodes)),
		m.styles.Label.Render("Total Edges:"),
		m.styles.Value.Render(strconv.Itoa(ov.TotalEdges)))
	if ov.Isolated > 0 || ov.DanglingEdges > 0 {
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf("isolated nodes %d, dangling edges %d", ov.Isolated, ov.DanglingEdges)))
		b.WriteString("\n")
	}
	if ov.TotalNodes == 0 && ov.TotalEdges == 0 {
		b.WriteString(m.styles.Info.Render("Consider checking file paths or content if you expected data."))
		b.WriteString("\n")
	}

	if rels := ov.Relations; len(rels) > 0 {
		if len(rels) > 5 {
			rels = rels[:5]
		}
		b.WriteString("\n")
		b.WriteString(m.styles.Section.Render("Relations"))
		b.WriteString("\n")
		for _, rc := range rels {
			fmt.Fprintf(&b, "  %s %s\n",
				m.styles.Value.Render(fmt.Sprintf("%3d", rc.Count)),
				m.styles.Label.Render(rc.Relation))
		}
	}

	if len(ov.Hubs) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.Section.Render("Most Connected Concepts"))
		b.WriteString("\n")
		for _, h := range ov.Hubs {
			name := h.Label
			if name == "" {
				name = h.ID
			}
			fmt.Fprintf(&b, "  %s %s\n",
				m.styles.Value.Render(fmt.Sprintf("%3d", h.Degree())),
				m.styles.Label.Render(name))
		}
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("Interactive graph visualization and browsing capabilities will be implemented here in a future update."))
	return b.String()
}

func (m Model) viewLogs() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("System Event Log Viewer"))
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		b.WriteString(m.styles.Warn.Render("No system event log data loaded or the log is empty."))
		return b.String()
	}

	b.WriteString(m.styles.Section.Render(fmt.Sprintf("Last %d Log Entries", m.cfg.Display.LogEntries)))
	b.WriteString("\n")
	b.WriteString(m.logTable.View())
	return b.String()
}

func (m Model) viewHelp() string {
	help := "[1] Trends  [2] Graph  [3] Logs  [tab] next  [r] reload  [q] quit"
	if m.watch != nil {
		help += "  watching"
	}
	if !m.loadedAt.IsZero() {
		help += "  loaded " + m.loadedAt.Format("15:04:05")
	}
	return m.styles.Help.Render(help)
}

// sparkRunes index from the lowest to the highest score bucket.
var sparkRunes = []rune("▁▂▃▄▅▆▇█")

const sparkMaxWidth = 72

// Sparkline renders the score series as one line of block runes. The series
// arrives sorted by time; when it is wider than the window only the most
// recent points show. The trends CLI command shares this rendering.
func Sparkline(points []artifact.ScorePoint, width int) string {
	if len(points) == 0 || width < 1 {
		return ""
	}
	if len(points) > width {
		points = points[len(points)-width:]
	}
	lo, hi := points[0].Score, points[0].Score
	for _, p := range points[1:] {
		if p.Score < lo {
			lo = p.Score
		}
		if p.Score > hi {
			hi = p.Score
		}
	}
	span := hi - lo
	var b strings.Builder
	for _, p := range points {
		idx := len(sparkRunes) / 2
		if span > 0 {
			idx = int((p.Score - lo) / span * float64(len(sparkRunes)-1))
		}
		b.WriteRune(sparkRunes[idx])
	}
	return b.String()
}

// SparkCaption labels a sparkline with its score range and time span.
func SparkCaption(points []artifact.ScorePoint) string {
	if len(points) == 0 {
		return ""
	}
	lo, hi := points[0].Score, points[0].Score
	for _, p := range points[1:] {
		if p.Score < lo {
			lo = p.Score
		}
		if p.Score > hi {
			hi = p.Score
		}
	}
	first := points[0].Time.Format("2006-01-02 15:04")
	last := points[len(points)-1].Time.Format("2006-01-02 15:04")
	return fmt.Sprintf("min %.2f  max %.2f  (%s to %s)", lo, hi, first, last)
}
