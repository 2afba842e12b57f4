package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"effectful/internal/buildpipeline"
)

type rowState uint8

const (
	rowQueued rowState = iota
	rowWorking
	rowDone
	rowFailed
)

// stageView is how a stage appears in a row and how far along the bar it
// puts a file that is working on it.
type stageView struct {
	label string
	share float64
}

var stageViews = map[buildpipeline.Stage]stageView{
	buildpipeline.StageParse:   {"parsing", 0.2},
	buildpipeline.StageLower:   {"lowering", 0.45},
	buildpipeline.StageCodegen: {"generating", 0.7},
	buildpipeline.StageWrite:   {"writing", 0.9},
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	queuedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	workingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

const statusWidth = 12

type fileRow struct {
	path    string
	state   rowState
	stage   buildpipeline.Stage
	elapsed time.Duration
	err     string
}

func (r *fileRow) label() string {
	switch r.state {
	case rowWorking:
		return stageViews[r.stage].label
	case rowDone:
		return "done"
	case rowFailed:
		return "error"
	}
	return "queued"
}

func (r *fileRow) style() lipgloss.Style {
	switch r.state {
	case rowWorking:
		return workingStyle
	case rowDone:
		return doneStyle
	case rowFailed:
		return failedStyle
	}
	return queuedStyle
}

// share is the row's contribution to the overall bar, in [0, 1].
func (r *fileRow) share() float64 {
	switch r.state {
	case rowDone, rowFailed:
		return 1
	case rowWorking:
		return stageViews[r.stage].share
	}
	return 0
}

// progressModel renders one row per file plus an overall progress bar.
type progressModel struct {
	title   string
	events  <-chan buildpipeline.Event
	spinner spinner.Model
	bar     progress.Model
	rows    []fileRow
	byPath  map[string]int
	width   int
	done    bool

	// interrupted is set when the user quit before the build finished.
	interrupted bool
}

type eventMsg buildpipeline.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model fed by events; the model
// quits when the channel is closed.
func NewProgressModel(title string, files []string, events <-chan buildpipeline.Event) tea.Model {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(workingStyle))
	bar := progress.New(progress.WithDefaultGradient(), progress.WithWidth(76))

	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     bar,
		rows:    make([]fileRow, len(files)),
		byPath:  make(map[string]int, len(files)),
		width:   80,
	}
	for i, f := range files {
		m.rows[i] = fileRow{path: f}
		m.byPath[f] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.applyEvent(buildpipeline.Event(msg)), m.waitForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.interrupted = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = msg.Width - 4
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

// applyEvent updates the row of ev.File; events for unknown files are ignored.
func (m *progressModel) applyEvent(ev buildpipeline.Event) tea.Cmd {
	i, ok := m.byPath[ev.File]
	if !ok {
		return nil
	}
	row := &m.rows[i]
	row.stage = ev.Stage
	switch ev.Status {
	case buildpipeline.StatusQueued:
		row.state = rowQueued
	case buildpipeline.StatusWorking:
		row.state = rowWorking
	case buildpipeline.StatusDone:
		row.state, row.elapsed = rowDone, ev.Elapsed
	case buildpipeline.StatusError:
		row.state = rowFailed
		if ev.Err != nil {
			row.err = ev.Err.Error()
		}
	}
	return m.bar.SetPercent(m.percent())
}

func (m *progressModel) percent() float64 {
	if len(m.rows) == 0 {
		return 0
	}
	total := 0.0
	for i := range m.rows {
		total += m.rows[i].share()
	}
	return total / float64(len(m.rows))
}

func (m *progressModel) counts() (finished, failed int) {
	for i := range m.rows {
		switch m.rows[i].state {
		case rowDone:
			finished++
		case rowFailed:
			finished++
			failed++
		}
	}
	return finished, failed
}

func (m *progressModel) header() string {
	finished, failed := m.counts()
	h := fmt.Sprintf("%s %d/%d", m.title, finished, len(m.rows))
	if failed > 0 {
		h += fmt.Sprintf(", %d failed", failed)
	}
	if m.done {
		return "done: " + h
	}
	return m.spinner.View() + " " + h
}

func (m *progressModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.header()))
	b.WriteString("\n\n")

	nameWidth := max(m.width-statusWidth-16, 20)
	for i := range m.rows {
		row := &m.rows[i]
		status := row.style().Render(fmt.Sprintf("%*s", statusWidth, row.label()))
		fmt.Fprintf(&b, "  %s %s", status, truncate(row.path, nameWidth))
		switch {
		case row.state == rowDone && row.elapsed > 0:
			b.WriteString(dimStyle.Render(" " + row.elapsed.Round(time.Millisecond).String()))
		case row.err != "":
			b.WriteString(failedStyle.Render(" " + truncate(row.err, nameWidth)))
		}
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	if m.done {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteByte('\n')
	return b.String()
}

// truncate shortens value to at most width cells, ending in "..." when
// there is room for it.
func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
