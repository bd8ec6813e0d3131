package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/guptarohit/asciigraph"
	"github.com/muesli/termenv"

	"github.com/olliecrow/datapass_monitor/internal/report"
	"github.com/olliecrow/datapass_monitor/internal/usage"
)

type FetchFunc func(context.Context) (*usage.Record, error)

type Options struct {
	Interval  time.Duration
	Timeout   time.Duration
	NoColor   bool
	AltScreen bool
	// Source is shown in the footer.
	Source string
	Fetch  FetchFunc
	// Changes triggers an immediate refresh on every receive.
	Changes <-chan struct{}
}

type Model struct {
	interval time.Duration
	timeout  time.Duration
	fetch    FetchFunc
	changes  <-chan struct{}
	source   string

	width  int
	height int

	now time.Time

	fetching          bool
	lastSuccessAt     time.Time
	lastFetchDuration time.Duration
	lastError         string
	nextFetchAt       time.Time
	pollGen           int

	record  *usage.Record
	history []float64

	spinner spinner.Model
	profile termenv.Profile
	styles  styles
}

type styles struct {
	title   lipgloss.Style
	dim     lipgloss.Style
	panel   lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	ok      lipgloss.Style
	warn    lipgloss.Style
	bad     lipgloss.Style
	accent  lipgloss.Style
	error   lipgloss.Style
	help    lipgloss.Style
	loading lipgloss.Style
}

type pollTickMsg struct {
	at  time.Time
	gen int
}

type clockTickMsg struct {
	at time.Time
}

type sourceChangedMsg struct{}

type fetchResultMsg struct {
	at       time.Time
	duration time.Duration
	record   *usage.Record
	err      error
}

const (
	defaultInterval = 60 * time.Second
	defaultTimeout  = 10 * time.Second

	historyLimit = 120

	sideBySideMinWidth = 70
	panelLines         = 4
)

func NewModel(opts Options) Model {
	interval := opts.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	fetch := opts.Fetch
	if fetch == nil {
		fetch = func(context.Context) (*usage.Record, error) {
			return nil, errors.New("missing fetch function")
		}
	}
	now := time.Now().UTC()

	st := defaultStyles(opts.NoColor)
	sp := spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(st.loading))

	profile := lipgloss.ColorProfile()
	if opts.NoColor {
		profile = termenv.Ascii
	}

	return Model{
		interval:    interval,
		timeout:     timeout,
		fetch:       fetch,
		changes:     opts.Changes,
		source:      opts.Source,
		now:         now,
		fetching:    true,
		nextFetchAt: now.Add(interval),
		spinner:     sp,
		profile:     profile,
		styles:      st,
	}
}

func defaultStyles(noColor bool) styles {
	basePanel := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	if noColor {
		return styles{
			title:   lipgloss.NewStyle().Bold(true),
			dim:     lipgloss.NewStyle(),
			panel:   basePanel,
			label:   lipgloss.NewStyle().Bold(true),
			value:   lipgloss.NewStyle(),
			ok:      lipgloss.NewStyle().Bold(true),
			warn:    lipgloss.NewStyle().Bold(true),
			bad:     lipgloss.NewStyle().Bold(true),
			accent:  lipgloss.NewStyle().Bold(true),
			error:   lipgloss.NewStyle().Bold(true),
			help:    lipgloss.NewStyle(),
			loading: lipgloss.NewStyle(),
		}
	}
	return styles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("24")).Padding(0, 1),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		panel:   basePanel.BorderForeground(lipgloss.Color("61")),
		label:   lipgloss.NewStyle().Foreground(lipgloss.Color("109")),
		value:   lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		ok:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		warn:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		bad:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		accent:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81")),
		error:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		help:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		loading: lipgloss.NewStyle().Foreground(lipgloss.Color("117")),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		fetchCmd(m.fetch, m.timeout),
		pollCmd(m.interval, m.pollGen),
		clockCmd(),
		m.spinner.Tick,
		waitForChange(m.changes),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := msg.(type) {
	case tea.KeyMsg:
		switch v.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "r":
			return m.refreshNow()
		}
	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
	case pollTickMsg:
		if v.gen != m.pollGen {
			return m, nil
		}
		m.nextFetchAt = v.at.UTC().Add(m.interval)
		cmds := []tea.Cmd{pollCmd(m.interval, m.pollGen)}
		if !m.fetching {
			m.fetching = true
			cmds = append(cmds, fetchCmd(m.fetch, m.timeout), m.spinner.Tick)
		}
		return m, tea.Batch(cmds...)
	case sourceChangedMsg:
		next, cmd := m.refreshNow()
		return next, tea.Batch(cmd, waitForChange(m.changes))
	case clockTickMsg:
		m.now = v.at.UTC()
		return m, clockCmd()
	case spinner.TickMsg:
		if !m.fetching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(v)
		return m, cmd
	case fetchResultMsg:
		m.fetching = false
		m.lastFetchDuration = v.duration
		if v.err != nil {
			m.lastError = v.err.Error()
			return m, nil
		}
		m.lastError = ""
		m.lastSuccessAt = v.at.UTC()
		m.record = v.record
		if v.record != nil && !v.record.IsUnlimited {
			m.history = appendHistory(m.history, v.record.RemainingPercentage())
		}
		return m, nil
	}
	return m, nil
}

// refreshNow starts a fetch unless one is in flight and restarts the poll
// schedule from now.
func (m Model) refreshNow() (Model, tea.Cmd) {
	if m.fetching {
		return m, nil
	}
	m.fetching = true
	m.pollGen++
	m.nextFetchAt = m.now.Add(m.interval)
	return m, tea.Batch(fetchCmd(m.fetch, m.timeout), pollCmd(m.interval, m.pollGen), m.spinner.Tick)
}

func appendHistory(history []float64, v float64) []float64 {
	history = append(history, v)
	if len(history) > historyLimit {
		history = append([]float64(nil), history[len(history)-historyLimit:]...)
	}
	return history
}

func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "initializing..."
	}

	header := m.renderHeader()
	body := m.renderBody()
	footer := m.renderFooter()

	top := lipgloss.JoinVertical(lipgloss.Left, header, body, "")
	combined := pinFooterToBottom(top, footer, m.height)
	return clipToViewport(combined, m.width, m.height)
}

func (m Model) renderHeader() string {
	title := m.styles.title.Render(" datapass monitor ")

	stateText := "idle"
	stateStyle := m.styles.dim
	if m.fetching {
		stateText = m.spinner.View() + " refreshing"
		stateStyle = m.styles.loading
	} else if m.lastError != "" {
		stateText = "error"
		stateStyle = m.styles.bad
	} else if m.record != nil {
		stateText = "healthy"
		stateStyle = m.styles.ok
	}

	left := title + "  " + m.styles.label.Render("state: ") + stateStyle.Render(stateText)
	if !m.nextFetchAt.IsZero() {
		refreshText := "[next refresh in " + humanDuration(m.nextFetchAt.Sub(m.now)) + "]"
		left += " " + m.styles.dim.Render(refreshText)
	}
	right := m.styles.dim.Render("utc " + m.now.Format("2006-01-02 15:04:05"))
	return joinWithPaddingKeepRight(left, right, m.width)
}

func (m Model) renderFooter() string {
	keys := m.styles.help.Render("q/esc quit • r refresh now")
	if m.source == "" {
		return keys
	}
	return joinWithPaddingKeepRight(keys, m.styles.dim.Render("source: "+m.source), m.width)
}

func (m Model) renderBody() string {
	contentWidth := max(20, m.width-4)
	if m.record == nil {
		if m.lastError != "" {
			msg := m.styles.error.Render("last error: " + m.lastError)
			return m.styles.panel.Width(contentWidth).Render(msg)
		}
		return m.styles.panel.Width(contentWidth).Render(m.styles.loading.Render("loading usage data..."))
	}

	var panels string
	if contentWidth >= sideBySideMinWidth {
		panelOverhead := horizontalOverhead(m.styles.panel)
		panelWidth, spacerWidth := splitEqualPanelContentWidths(contentWidth, panelOverhead)
		spacer := strings.Repeat(" ", spacerWidth)
		panels = lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderPlanPanel(panelWidth),
			spacer,
			m.renderUsagePanel(panelWidth),
		)
	} else {
		panels = lipgloss.JoinVertical(lipgloss.Left,
			m.renderPlanPanel(contentWidth),
			m.renderUsagePanel(contentWidth),
		)
	}

	blocks := []string{panels, m.renderGaugePanel(contentWidth)}
	used := 3 + lipgloss.Height(panels) + lipgloss.Height(blocks[1]) // header + spacer + footer
	if m.lastError != "" {
		blocks = append(blocks, m.renderErrorLine(contentWidth+2))
		used++
	}
	if chart := m.renderHistoryPanel(contentWidth, m.height-used); chart != "" {
		blocks = append(blocks, chart)
	}
	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func (m Model) renderPlanPanel(width int) string {
	plan := m.record.Plan()
	if plan == "" {
		plan = "unknown plan"
	}
	validUntil := "n/a"
	if m.record.ValidUntil != nil {
		validUntil = *m.record.ValidUntil
	}
	lines := []string{
		m.styles.accent.Render("plan"),
		m.styles.label.Render("name: ") + m.styles.warn.Render(plan),
		m.styles.label.Render("valid until: ") + m.styles.value.Render(validUntil),
		m.styles.label.Render("updated: ") + m.styles.value.Render(m.updatedText()),
	}
	return m.renderPanel(lines, width)
}

func (m Model) updatedText() string {
	if m.lastSuccessAt.IsZero() {
		return "never"
	}
	text := humanDuration(m.now.Sub(m.lastSuccessAt)) + " ago"
	if m.lastFetchDuration > 0 {
		text += " in " + m.lastFetchDuration.Round(time.Millisecond).String()
	}
	return text
}

func (m Model) renderUsagePanel(width int) string {
	rec := m.record
	lines := []string{m.styles.accent.Render("data usage")}
	if rec.IsUnlimited {
		lines = append(lines, m.styles.label.Render("data: ")+m.styles.ok.Render("unlimited"))
	} else {
		style := remainingStyle(rec.RemainingPercentage(), m.styles)
		lines = append(lines,
			m.styles.label.Render("used: ")+m.styles.value.Render(fmt.Sprintf("%.2f GB (%.2f%%)", rec.UsedGB, rec.Percentage)),
			m.styles.label.Render("total: ")+m.styles.value.Render(fmt.Sprintf("%.2f GB (100%%)", rec.TotalGB)),
			m.styles.label.Render("remaining: ")+style.Render(fmt.Sprintf("%.2f GB (%.2f%%)", rec.RemainingGB, rec.RemainingPercentage())),
		)
	}
	return m.renderPanel(lines, width)
}

func (m Model) renderPanel(lines []string, width int) string {
	for len(lines) < panelLines {
		lines = append(lines, "")
	}
	for i := range lines {
		lines[i] = ansi.Truncate(lines[i], max(4, width-2), "...")
	}
	return m.styles.panel.Width(max(20, width)).Render(strings.Join(lines, "\n"))
}

func (m Model) renderGaugePanel(width int) string {
	label := fmt.Sprintf("%.2f%% used", m.record.Percentage)
	ratio := m.record.Percentage / 100
	color := report.BarColor(m.record.RemainingPercentage())
	if m.record.IsUnlimited {
		label = "unlimited"
		ratio = 1
		color = report.BarColor(100)
	}
	inner := width - 2
	barWidth := max(5, inner-lipgloss.Width(label)-1)
	bar := progress.New(
		progress.WithSolidFill(color),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
		progress.WithColorProfile(m.profile),
	)
	line := bar.ViewAs(clamp01(ratio)) + " " + m.styles.value.Render(label)
	return m.styles.panel.Width(width).Render(ansi.Truncate(line, inner, ""))
}

func (m Model) renderErrorLine(width int) string {
	msg := m.lastError
	if first, _, found := strings.Cut(msg, "\n"); found {
		msg = first
	}
	return ansi.Truncate(m.styles.error.Render("last error: "+msg), width, "...")
}

// renderHistoryPanel plots the remaining share over the kept samples within
// rows lines, or returns "" when there is no room.
func (m Model) renderHistoryPanel(width, rows int) string {
	inner := rows - verticalOverhead(m.styles.panel)
	if inner < 1 {
		return ""
	}
	if len(m.history) < 2 {
		if m.record != nil && m.record.IsUnlimited {
			return ""
		}
		return m.styles.panel.Width(width).Render(m.styles.dim.Render("collecting samples for history..."))
	}
	if inner < 4 {
		return ""
	}

	contentWidth := width - 2
	caption := fmt.Sprintf("remaining %% (last %d samples)", len(m.history))
	graph := asciigraph.Plot(m.history,
		asciigraph.Height(inner-3),
		asciigraph.Width(max(10, contentWidth-10)),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(100),
		asciigraph.Precision(0),
		asciigraph.Caption(caption),
	)
	lines := strings.Split(graph, "\n")
	if len(lines) > inner {
		lines = lines[:inner]
	}
	for i := range lines {
		lines[i] = ansi.Truncate(lines[i], contentWidth, "")
	}
	return m.styles.panel.Width(width).Render(m.styles.dim.Render(strings.Join(lines, "\n")))
}

func remainingStyle(remainingPercent float64, styles styles) lipgloss.Style {
	switch {
	case remainingPercent > 50:
		return styles.ok
	case remainingPercent > 20:
		return styles.warn
	default:
		return styles.bad
	}
}

func pollCmd(interval time.Duration, gen int) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return pollTickMsg{at: t, gen: gen}
	})
}

func clockCmd() tea.Cmd {
	return tea.Tick(1*time.Second, func(t time.Time) tea.Msg {
		return clockTickMsg{at: t}
	})
}

func waitForChange(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return sourceChangedMsg{}
	}
}

func fetchCmd(fetch FetchFunc, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		record, err := fetch(ctx)
		return fetchResultMsg{
			at:       time.Now(),
			duration: time.Since(start),
			record:   record,
			err:      err,
		}
	}
}

func Run(opts Options) error {
	model := NewModel(opts)
	progOpts := []tea.ProgramOption{}
	if opts.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	prog := tea.NewProgram(model, progOpts...)
	_, err := prog.Run()
	return err
}
