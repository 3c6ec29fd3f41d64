package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/loupedev/loupe/internal/config"
	"github.com/loupedev/loupe/internal/engine"
	"github.com/loupedev/loupe/internal/filter"
	"github.com/loupedev/loupe/internal/prefs"
	"github.com/loupedev/loupe/internal/record"
	"github.com/loupedev/loupe/internal/source"
)

// refreshTick is how often the view pulls a fresh engine snapshot.
const refreshTick = 100 * time.Millisecond

// promptKind identifies what an open prompt will do on confirm.
type promptKind int

const (
	promptNone promptKind = iota
	promptSearchFwd
	promptSearchBack
	promptFilter
	promptFieldInc
	promptFieldExc
	promptText
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Engine     *engine.Engine
	Supervisor *source.Supervisor
	Config     *config.Config
	ThemeName  string
	PrefsPath  string
	Level      record.Level // initial threshold already applied to the engine
}

// Model is the root application state for Bubble Tea.
type Model struct {
	eng       *engine.Engine
	sup       *source.Supervisor
	cfg       *config.Config
	prefsPath string

	keys  keyMap
	theme Theme

	width  int
	height int
	ready  bool

	snapshot engine.Snapshot
	statuses []source.Status

	level      record.Level // active threshold, 0 = none
	showHelp   bool
	showDetail bool

	prompt     textinput.Model
	promptKind promptKind
	notice     string // transient message, cleared on next key
}

// New creates the Bubble Tea model.
func New(opts Options) Model {
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = &config.Config{TimeFormat: "15:04:05.000"}
	}

	ti := textinput.New()
	ti.CharLimit = 200

	return Model{
		eng:       opts.Engine,
		sup:       opts.Supervisor,
		cfg:       cfg,
		prefsPath: opts.PrefsPath,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(themeName),
		level:     opts.Level,
		prompt:    ti,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(refreshTick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.refresh()
		return m, nil

	case tickMsg:
		m.refresh()
		return m, tickCmd()
	}
	return m, nil
}

// refresh pulls the latest engine snapshot, windowed to the visible rows.
func (m *Model) refresh() {
	if m.eng == nil {
		return
	}
	m.snapshot = m.eng.Snapshot(m.bodyHeight())
	if m.sup != nil {
		m.statuses = m.sup.Statuses()
	}
}

// bodyHeight is the number of record rows the list pane can show.
func (m Model) bodyHeight() int {
	h := m.height - 2 // header + status bar
	if m.showDetail {
		h -= m.detailHeight() + 1
	}
	if h < 1 {
		h = 1
	}
	return h
}

func (m Model) detailHeight() int {
	h := m.height / 3
	if h < 5 {
		h = 5
	}
	return h
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.promptKind != promptNone {
		return m.handlePromptKey(msg)
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()

	case key.Matches(msg, m.keys.Escape):
		m.showDetail = false

	case key.Matches(msg, m.keys.Up):
		m.eng.Move(-1)
	case key.Matches(msg, m.keys.Down):
		m.eng.Move(1)
	case key.Matches(msg, m.keys.PageUp):
		m.eng.Move(-m.bodyHeight())
	case key.Matches(msg, m.keys.PageDown):
		m.eng.Move(m.bodyHeight())
	case key.Matches(msg, m.keys.Top):
		m.eng.JumpFirst()
	case key.Matches(msg, m.keys.Bottom):
		m.eng.JumpLast()
	case key.Matches(msg, m.keys.Tail):
		m.eng.JumpTail()

	case key.Matches(msg, m.keys.ToggleSelect):
		m.eng.ToggleSelect()
	case key.Matches(msg, m.keys.NextSelected):
		if !m.eng.JumpSelected(false) {
			m.notice = "no marked record ahead"
		}
	case key.Matches(msg, m.keys.PrevSelected):
		if !m.eng.JumpSelected(true) {
			m.notice = "no marked record behind"
		}

	case key.Matches(msg, m.keys.Search):
		return m.openPrompt(promptSearchFwd, "/"), nil
	case key.Matches(msg, m.keys.SearchBack):
		return m.openPrompt(promptSearchBack, "?"), nil
	case key.Matches(msg, m.keys.NextMatch):
		m.eng.SearchNext(false)
	case key.Matches(msg, m.keys.PrevMatch):
		m.eng.SearchNext(true)

	case key.Matches(msg, m.keys.FilterExpr):
		return m.openPrompt(promptFilter, "filter "), nil
	case key.Matches(msg, m.keys.FilterField):
		return m.openPrompt(promptFieldInc, "field= "), nil
	case key.Matches(msg, m.keys.FilterExclude):
		return m.openPrompt(promptFieldExc, "field!= "), nil
	case key.Matches(msg, m.keys.FilterText):
		return m.openPrompt(promptText, "~"), nil
	case key.Matches(msg, m.keys.PopFilter):
		if !m.eng.PopFilter() {
			m.notice = "no filter to pop"
		}
	case key.Matches(msg, m.keys.ClearFilters):
		m.eng.ClearFilters()
		m.level = 0
	case key.Matches(msg, m.keys.CycleLevel):
		m.level = nextLevel(m.level)
		m.eng.SetLevelFilter(m.level)

	case key.Matches(msg, m.keys.ToggleSort):
		m.eng.SetSorted(!m.eng.Sorted())
		m.savePrefs()
	case key.Matches(msg, m.keys.ToggleDetail):
		m.showDetail = !m.showDetail
	case key.Matches(msg, m.keys.ClearAll):
		m.eng.ClearAll()
	}

	m.refresh()
	return m, nil
}

// nextLevel cycles the threshold: off, debug, info, warn, error, off.
func nextLevel(cur record.Level) record.Level {
	switch cur {
	case 0:
		return record.LevelDebug
	case record.LevelTrace:
		return record.LevelDebug
	case record.LevelDebug:
		return record.LevelInfo
	case record.LevelInfo:
		return record.LevelWarn
	case record.LevelWarn:
		return record.LevelError
	default:
		return 0
	}
}

func (m Model) openPrompt(kind promptKind, label string) Model {
	m.promptKind = kind
	m.prompt.Prompt = label
	m.prompt.SetValue("")
	m.prompt.Focus()
	return m
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.promptKind = promptNone
		m.prompt.Blur()
		return m, nil

	case tea.KeyEnter:
		value := strings.TrimSpace(m.prompt.Value())
		kind := m.promptKind
		m.promptKind = promptNone
		m.prompt.Blur()
		if value == "" {
			return m, nil
		}
		m.applyPrompt(kind, value)
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// applyPrompt runs a confirmed prompt value against the engine. Rejected
// input becomes a status notice and leaves the filter stack untouched.
func (m *Model) applyPrompt(kind promptKind, value string) {
	switch kind {
	case promptSearchFwd:
		m.eng.Search(value, false)
	case promptSearchBack:
		m.eng.Search(value, true)
	case promptFilter:
		if err := m.eng.PushExpression(value); err != nil {
			m.notice = err.Error()
		}
	case promptFieldInc, promptFieldExc:
		path, fieldValue, err := parseField(value)
		if err != nil {
			m.notice = err.Error()
			return
		}
		m.eng.PushFilter(filter.Field(path, fieldValue, kind == promptFieldExc))
	case promptText:
		m.eng.PushFilter(filter.Substring(value))
	}
}

// parseField splits a "path=value" prompt argument.
func parseField(s string) (path, value string, err error) {
	path, value, ok := strings.Cut(s, "=")
	path = strings.TrimSpace(path)
	value = strings.TrimSpace(value)
	if !ok || path == "" || value == "" {
		return "", "", fmt.Errorf("want field=value, got %q", s)
	}
	return path, value, nil
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	_ = prefs.Save(m.prefsPath, prefs.Prefs{
		Theme:  m.theme.Name,
		Sorted: m.eng.Sorted(),
	})
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	sections := []string{m.renderHeader(), m.renderBody()}
	if m.showDetail {
		sections = append(sections, m.renderDetail())
	}
	sections = append(sections, m.renderStatusBar())
	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	snap := m.snapshot

	parts := []string{
		fmt.Sprintf("%d records", snap.Total),
		fmt.Sprintf("%d matching", snap.MatchTotal),
	}
	if len(snap.Filters) > 0 {
		parts = append(parts, "filters: "+strings.Join(snap.Filters, ", "))
	}
	if snap.Sorted {
		parts = append(parts, "by time")
	}
	if snap.Follow {
		parts = append(parts, "FOLLOW")
	}

	return styles.Header.Render(" loupe ") + styles.Muted.Render(clip(strings.Join(parts, " · "), m.width-8))
}

func (m Model) renderBody() string {
	styles := m.theme.Styles()
	snap := m.snapshot
	rows := make([]string, 0, m.bodyHeight())

	for i, seq := range snap.Matches {
		rec := m.eng.Record(seq)
		if rec == nil {
			continue
		}
		gutter := "  "
		if _, marked := snap.Selected[seq]; marked {
			gutter = styles.Marked.Render("▌ ")
		}

		text := formatRow(rec, m.cfg.TimeFormat, m.width-2)
		if snap.WindowStart+i == snap.CursorPos {
			rows = append(rows, gutter+styles.Cursor.Render(text))
			continue
		}
		rows = append(rows, gutter+m.theme.LevelStyle(rec.Level).Render(text))
	}

	if len(rows) == 0 {
		rows = append(rows, styles.Faint.Render("  no matching records"))
	}
	for len(rows) < m.bodyHeight() {
		rows = append(rows, "")
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderDetail() string {
	styles := m.theme.Styles()
	height := m.detailHeight()

	var lines []string
	if m.snapshot.CursorSeq >= 0 {
		if rec := m.eng.Record(m.snapshot.CursorSeq); rec != nil {
			lines = formatDetail(rec, m.cfg.TimeFormat)
		}
	}
	if len(lines) == 0 {
		lines = []string{"no record under cursor"}
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, line := range lines {
		lines[i] = clip(line, m.width-4)
	}
	for len(lines) < height {
		lines = append(lines, "")
	}

	return styles.Border.Width(m.width - 2).Render(strings.Join(lines, "\n"))
}

func (m Model) renderStatusBar() string {
	styles := m.theme.Styles()

	if m.promptKind != promptNone {
		return m.prompt.View()
	}
	if m.notice != "" {
		return styles.Warning.Render(" " + m.notice)
	}

	snap := m.snapshot
	var parts []string
	if snap.SearchMiss && snap.LastQuery != "" {
		parts = append(parts, "pattern not found: "+snap.LastQuery)
	}
	if snap.Status != "" {
		parts = append(parts, snap.Status)
	}
	parts = append(parts, m.sourceSummary())
	parts = append(parts, "h for help")

	return styles.StatusBar.Render(" " + strings.Join(parts, " · "))
}

// sourceSummary condenses per-source statuses into one fragment.
func (m Model) sourceSummary() string {
	if len(m.statuses) == 0 {
		return "no sources"
	}
	var done, failed int
	for _, st := range m.statuses {
		if st.Err != nil {
			failed++
		} else if st.Done {
			done++
		}
	}
	s := fmt.Sprintf("%d source", len(m.statuses))
	if len(m.statuses) != 1 {
		s += "s"
	}
	if done > 0 {
		s += fmt.Sprintf(", %d done", done)
	}
	if failed > 0 {
		s += fmt.Sprintf(", %d failed", failed)
	}
	return s
}

func (m Model) renderHelp() string {
	styles := m.theme.Styles()
	k := m.keys

	bindings := []key.Binding{
		k.Quit, k.Help, k.CycleTheme,
		k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom, k.Tail,
		k.ToggleSelect, k.NextSelected, k.PrevSelected,
		k.Search, k.SearchBack, k.NextMatch, k.PrevMatch,
		k.FilterExpr, k.FilterField, k.FilterExclude, k.FilterText,
		k.PopFilter, k.ClearFilters, k.CycleLevel,
		k.ToggleSort, k.ToggleDetail, k.ClearAll,
	}

	var b strings.Builder
	b.WriteString(styles.Header.Render(" loupe keys ") + "\n\n")
	for _, binding := range bindings {
		h := binding.Help()
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			styles.Accent.Render(fmt.Sprintf("%-8s", h.Key)),
			styles.Text.Render(h.Desc)))
	}
	b.WriteString("\n" + styles.Faint.Render("  filter syntax: key:value, key != value, AND/OR/NOT, (…), \"text\""))
	return b.String()
}

// Run starts the Bubble Tea program and persists preferences on exit.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(opts.Context))
	final, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && opts.Context != nil && opts.Context.Err() != nil {
		err = nil // shut down by signal, not a failure
	}
	if fm, ok := final.(Model); ok {
		fm.savePrefs()
	}
	return err
}
