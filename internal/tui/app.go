// internal/tui/app.go
//
// This is the interactive session surface for Elementarium. It uses
// bubbletea, which follows The Elm Architecture:
//
// 1. Model: Your application state
// 2. Update: A function that updates state based on messages
// 3. View: A function that renders state to a string
//
// The flow is: User Input -> Message -> Update -> New Model -> View -> Screen

package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/kingrea/elementarium/internal/config"
	"github.com/kingrea/elementarium/internal/dataset"
	"github.com/kingrea/elementarium/internal/logbook"
	"github.com/kingrea/elementarium/internal/query"
	"github.com/kingrea/elementarium/internal/report"
)

// appState represents which "screen" we're on
type appState int

const (
	stateMenu   appState = iota // Main menu with the six operations
	statePrompt                 // Collecting arguments for an operation
	stateResult                 // Showing the outcome of an operation
)

// operation identifies a menu entry's action.
type operation int

const (
	opNone operation = iota
	opSearch
	opProperties
	opAverageMass
	opHTML
	opJSONExport
	opMarkdown
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA")).
			MarginTop(1)
	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1)
	logHeadStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))
	logBodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

// App is the main application model. In bubbletea, this holds ALL the
// state: the loaded dataset, the engine, and the current screen.
type App struct {
	config  *config.Config
	engine  *query.Engine
	logbook *logbook.Logbook

	state appState
	menu  list.Model

	// Prompt form for the active operation
	op      operation
	labels  []string
	inputs  []textinput.Model
	focus   int
	symbols []string // collected for the JSON export

	result    string
	statusMsg string

	width  int
	height int
}

// menuItem implements list.Item interface for our menu items
type menuItem struct {
	title string
	desc  string
	op    operation
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }
func (i menuItem) FilterValue() string { return i.title }

// NewApp loads the dataset per the configuration and builds the menu.
// Missing dataset files degrade to empty collections with a warning, the
// session stays usable.
func NewApp(cfg *config.Config) (*App, error) {
	lb, err := logbook.New(cfg.LogPath())
	if err != nil {
		return nil, err
	}

	var diags []string
	elements, err := dataset.LoadElements(cfg.ElementsPath())
	if err != nil {
		if !errors.Is(err, dataset.ErrMissingSource) {
			return nil, err
		}
		lb.Warn("Element table missing: %s", cfg.ElementsPath())
		diags = append(diags, "element table not found")
	}
	groups, err := dataset.LoadGroups(cfg.GroupsPath())
	if err != nil {
		if !errors.Is(err, dataset.ErrMissingSource) {
			return nil, err
		}
		lb.Warn("Group table missing: %s", cfg.GroupsPath())
		diags = append(diags, "group table not found")
	}

	menu := list.New(buildMenuItems(), list.NewDefaultDelegate(), 0, 0)
	menu.Title = "⬡ ELEMENTARIUM"
	menu.SetShowStatusBar(false)
	menu.SetFilteringEnabled(false)

	app := &App{
		config:  cfg,
		engine:  query.New(elements, groups),
		logbook: lb,
		state:   stateMenu,
		menu:    menu,
	}
	if len(diags) > 0 {
		app.statusMsg = fmt.Sprintf("Degraded session: %s", strings.Join(diags, ", "))
	} else {
		app.statusMsg = fmt.Sprintf("Loaded %d element(s), %d group(s)", len(elements), len(groups))
	}
	lb.Info("Session opened · %s", app.statusMsg)
	return app, nil
}

func buildMenuItems() []list.Item {
	return []list.Item{
		menuItem{title: "Search Elements", desc: "Find an element by any field", op: opSearch},
		menuItem{title: "Element Properties", desc: "Show every field of an element by symbol", op: opProperties},
		menuItem{title: "Average Atomic Mass", desc: "Mean atomic mass of a group or period", op: opAverageMass},
		menuItem{title: "Generate HTML Overview", desc: "Write the full element table as HTML", op: opHTML},
		menuItem{title: "Export Elements to JSON", desc: "Pick symbols and export their records", op: opJSONExport},
		menuItem{title: "Markdown Group Overview", desc: "Write and preview a group report", op: opMarkdown},
		menuItem{title: "Quit", desc: "Leave Elementarium", op: opNone},
	}
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.menu.SetSize(max(20, msg.Width-6), max(10, msg.Height-12))
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "q":
			if a.state == stateMenu {
				a.logbook.Info("Session closed")
				return a, tea.Quit
			}
		case "esc":
			if a.state != stateMenu {
				return a.returnToMenu()
			}
		case "enter":
			switch a.state {
			case stateMenu:
				return a.handleMenuSelection()
			case statePrompt:
				return a.advancePrompt()
			case stateResult:
				return a.returnToMenu()
			}
		case "tab", "down":
			if a.state == statePrompt && len(a.inputs) > 1 {
				a.focusInput((a.focus + 1) % len(a.inputs))
				return a, nil
			}
		case "shift+tab", "up":
			if a.state == statePrompt && len(a.inputs) > 1 {
				a.focusInput((a.focus + len(a.inputs) - 1) % len(a.inputs))
				return a, nil
			}
		}
	}

	var cmds []tea.Cmd
	switch a.state {
	case stateMenu:
		var cmd tea.Cmd
		a.menu, cmd = a.menu.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	case statePrompt:
		if a.focus < len(a.inputs) {
			var cmd tea.Cmd
			a.inputs[a.focus], cmd = a.inputs[a.focus].Update(msg)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	return a, tea.Batch(cmds...)
}

// handleMenuSelection dispatches the selected menu entry.
func (a *App) handleMenuSelection() (tea.Model, tea.Cmd) {
	item, ok := a.menu.SelectedItem().(menuItem)
	if !ok {
		return a, nil
	}
	switch item.op {
	case opSearch:
		return a.beginPrompt(opSearch,
			prompt{"Criterion", "Symbol, Element, AtomicNumber, Group, Period"},
			prompt{"Value", "e.g. O"},
		)
	case opProperties:
		return a.beginPrompt(opProperties, prompt{"Symbol", "e.g. He"})
	case opAverageMass:
		return a.beginPrompt(opAverageMass,
			prompt{"Group", "leave empty to filter by period"},
			prompt{"Period", "leave empty to filter by group"},
		)
	case opHTML:
		a.runHTML()
		a.state = stateResult
		return a, nil
	case opJSONExport:
		a.symbols = nil
		return a.beginPrompt(opJSONExport, prompt{"Symbol", "empty entry finishes the selection"})
	case opMarkdown:
		return a.beginPrompt(opMarkdown, prompt{"Group", "e.g. 18"})
	case opNone:
		a.logbook.Info("Session closed")
		return a, tea.Quit
	}
	return a, nil
}

type prompt struct {
	label       string
	placeholder string
}

// beginPrompt builds the text input form for an operation.
func (a *App) beginPrompt(op operation, prompts ...prompt) (tea.Model, tea.Cmd) {
	a.op = op
	a.labels = make([]string, len(prompts))
	a.inputs = make([]textinput.Model, len(prompts))
	for i, p := range prompts {
		ti := textinput.New()
		ti.Placeholder = p.placeholder
		ti.CharLimit = 64
		ti.Width = 44
		a.labels[i] = p.label
		a.inputs[i] = ti
	}
	a.focus = 0
	a.focusInput(0)
	a.state = statePrompt
	return a, textinput.Blink
}

func (a *App) focusInput(idx int) {
	for i := range a.inputs {
		if i == idx {
			a.inputs[i].Focus()
		} else {
			a.inputs[i].Blur()
		}
	}
	a.focus = idx
}

// advancePrompt moves to the next input, or submits the form from the last
// one. The JSON export form loops on a single input until an empty entry.
func (a *App) advancePrompt() (tea.Model, tea.Cmd) {
	if a.op == opJSONExport {
		value := strings.TrimSpace(a.inputs[0].Value())
		if value != "" {
			a.symbols = append(a.symbols, value)
			a.inputs[0].SetValue("")
			a.statusMsg = fmt.Sprintf("%d symbol(s) selected", len(a.symbols))
			return a, nil
		}
		a.runJSONExport()
		a.state = stateResult
		return a, nil
	}
	if a.focus < len(a.inputs)-1 {
		a.focusInput(a.focus + 1)
		return a, nil
	}
	a.runPromptedOperation()
	a.state = stateResult
	return a, nil
}

// runPromptedOperation executes the active operation with the collected
// form values.
func (a *App) runPromptedOperation() {
	values := make([]string, len(a.inputs))
	for i := range a.inputs {
		values[i] = strings.TrimSpace(a.inputs[i].Value())
	}
	switch a.op {
	case opSearch:
		a.runSearch(values[0], values[1])
	case opProperties:
		a.runSearch(dataset.FieldSymbol, values[0])
	case opAverageMass:
		a.runAverageMass(values[0], values[1])
	case opMarkdown:
		a.runMarkdown(values[0])
	}
}

func (a *App) runSearch(criterion, value string) {
	el, err := a.engine.Search(criterion, value)
	if err != nil {
		a.logbook.Warn("Search %s=%q: not found", criterion, value)
		a.result = errorStyle.Render("Element not found.")
		a.statusMsg = "Search finished without a match"
		return
	}
	a.logbook.Info("Search %s=%q: %s", criterion, value, el.Symbol())
	a.result = renderElement(el)
	a.statusMsg = fmt.Sprintf("Found %s (%s)", el.Symbol(), el.Name())
}

func (a *App) runAverageMass(group, period string) {
	avg, err := a.engine.AverageMass(group, period)
	if err != nil {
		var diag string
		switch {
		case errors.Is(err, query.ErrCriterionConflict):
			diag = "Enter either a group or a period, not both."
		case errors.Is(err, query.ErrCriterionMissing):
			diag = "You must enter either a group or a period."
		case errors.Is(err, query.ErrNoMatches):
			diag = "No elements to compute for the given criterion."
		default:
			diag = fmt.Sprintf("Average mass failed: %v", err)
		}
		a.logbook.Warn("Average mass (group=%q period=%q): %v", group, period, err)
		a.result = errorStyle.Render(diag)
		a.statusMsg = "Average mass not computed"
		return
	}
	a.logbook.Info("Average mass (group=%q period=%q): %.2f", group, period, avg)
	a.result = fmt.Sprintf("Average relative atomic mass: %.2f", avg)
	a.statusMsg = "Average mass computed"
}

func (a *App) runHTML() {
	path := a.config.HTMLReportPath()
	if err := report.WriteHTML(a.engine.Elements(), path); err != nil {
		a.logbook.Error("HTML report: %v", err)
		a.result = errorStyle.Render(fmt.Sprintf("HTML report failed: %v", err))
		a.statusMsg = "HTML report failed"
		return
	}
	a.logbook.Info("HTML report written: %s", path)
	a.result = fmt.Sprintf("HTML overview of %d element(s) written to %s", len(a.engine.Elements()), path)
	a.statusMsg = "HTML report written"
}

func (a *App) runJSONExport() {
	path := a.config.JSONExportPath()
	count, err := report.WriteJSON(a.engine.Elements(), a.symbols, path)
	if err != nil {
		a.logbook.Error("JSON export: %v", err)
		a.result = errorStyle.Render(fmt.Sprintf("JSON export failed: %v", err))
		a.statusMsg = "JSON export failed"
		return
	}
	a.logbook.Info("JSON export: %d element(s) to %s", count, path)
	a.result = fmt.Sprintf("Exported %d element(s) to %s", count, path)
	a.statusMsg = "JSON export written"
}

func (a *App) runMarkdown(group string) {
	path := a.config.MarkdownReportPath()
	selected := a.engine.FilterBy(dataset.FieldGroup, group)
	if err := report.WriteMarkdown(selected, path); err != nil {
		a.logbook.Error("Markdown report: %v", err)
		a.result = errorStyle.Render(fmt.Sprintf("Markdown report failed: %v", err))
		a.statusMsg = "Markdown report failed"
		return
	}
	a.logbook.Info("Markdown report: %d element(s) of group %q to %s", len(selected), group, path)
	a.result = a.renderMarkdownPreview(report.Markdown(selected))
	a.statusMsg = fmt.Sprintf("Markdown overview written to %s", path)
}

// renderMarkdownPreview pretty-prints the generated document in the
// terminal. Falls back to the raw markdown when the renderer is unhappy.
func (a *App) renderMarkdownPreview(content string) string {
	width := a.width - 8
	if width < 40 {
		width = 72
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content
	}
	out, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n")
}

// renderElement lists every field of an element in column order.
func renderElement(el *dataset.Element) string {
	lines := []string{titleStyle.Render("Element Properties")}
	for _, field := range el.Fields() {
		lines = append(lines, fmt.Sprintf("%-20s: %s", field, el.Get(field)))
	}
	return strings.Join(lines, "\n")
}

// returnToMenu transitions back to the main menu.
func (a *App) returnToMenu() (tea.Model, tea.Cmd) {
	a.state = stateMenu
	a.op = opNone
	a.inputs = nil
	a.labels = nil
	a.symbols = nil
	a.result = ""
	return a, nil
}

// View renders the current state to a string.
func (a *App) View() string {
	header := headerStyle.Render("⬡ ELEMENTARIUM")
	var content string
	switch a.state {
	case stateMenu:
		content = a.menu.View()
	case statePrompt:
		content = a.renderPromptForm()
	case stateResult:
		content = lipgloss.JoinVertical(lipgloss.Left,
			a.result,
			hintStyle.Render("Enter/Esc → back to menu"),
		)
	}
	body := panelStyle.Width(max(40, a.width-4)).Render(content)
	sections := []string{header, body}
	if logPanel := a.renderLogPanel(); logPanel != "" {
		sections = append(sections, logPanel)
	}
	sections = append(sections, footerStyle.Render(a.statusMsg))
	return strings.Join(sections, "\n")
}

func (a *App) renderPromptForm() string {
	var rows []string
	rows = append(rows, titleStyle.Render(a.promptTitle()))
	for i := range a.inputs {
		rows = append(rows, fmt.Sprintf("%s\n%s", a.labels[i], a.inputs[i].View()))
	}
	hint := "Enter → confirm    Esc → cancel"
	if a.op == opJSONExport {
		hint = "Enter → add symbol    empty Enter → export    Esc → cancel"
	}
	rows = append(rows, hintStyle.Render(hint))
	return strings.Join(rows, "\n\n")
}

func (a *App) promptTitle() string {
	switch a.op {
	case opSearch:
		return "Search Elements"
	case opProperties:
		return "Element Properties"
	case opAverageMass:
		return "Average Atomic Mass"
	case opJSONExport:
		return "Export Elements to JSON"
	case opMarkdown:
		return "Markdown Group Overview"
	}
	return "Elementarium"
}

func (a *App) renderLogPanel() string {
	if a.logbook == nil {
		return ""
	}
	lines := a.logbook.Tail(6)
	if len(lines) == 0 {
		return ""
	}
	head := logHeadStyle.Render(fmt.Sprintf("LOG · %s", a.logbook.Path()))
	body := logBodyStyle.Render(strings.Join(lines, "\n"))
	return panelStyle.Render(fmt.Sprintf("%s\n%s", head, body))
}
