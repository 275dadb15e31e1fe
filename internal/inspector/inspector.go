// Package inspector implements an interactive browser for a decompiled
// HashLink module: pick a class, pick one of its methods, and read the
// decompiled source in a scrollable viewport. It uses the Charm
// libraries (Bubbletea, Bubbles, Lipgloss) the same way the teacher's
// REPL does, generalized from a single-buffer editor to a three-pane
// list/list/viewport browser.
package inspector

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"hlbcgo/internal/decompiler"
	"hlbcgo/internal/hlast"
	"hlbcgo/internal/hlbytecode"
	"hlbcgo/internal/printer"
)

// Styling, matching the teacher's REPL palette.
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	paneStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#767676"))

	activePaneStyle = paneStyle.BorderForeground(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F87"))
)

// pane identifies which of the three panes currently has focus.
type pane int

const (
	paneClasses pane = iota
	paneMethods
	paneSource
)

type classItem struct {
	obj *hlbytecode.TypeObj
	cls hlast.Class
}

func (c classItem) Title() string       { return c.cls.Name }
func (c classItem) Description() string { return fmt.Sprintf("%d methods", len(c.cls.Methods)) }
func (c classItem) FilterValue() string { return c.cls.Name }

type methodItem struct {
	method hlast.Method
}

func (m methodItem) Title() string {
	if m.method.IsStatic {
		return "static " + m.method.Name
	}
	return m.method.Name
}
func (m methodItem) Description() string { return fmt.Sprintf("%d statements", len(m.method.Statements)) }
func (m methodItem) FilterValue() string { return m.method.Name }

// Model is the inspector's Bubble Tea model: a module already
// decompiled into Class ASTs, plus the list/viewport widgets browsing
// them.
type Model struct {
	mod       *hlbytecode.Module
	classes   list.Model
	methods   list.Model
	source    viewport.Model
	focus     pane
	width     int
	height    int
	lastError string
}

// New builds an inspector model over every class already lifted into
// the given slice (typically the whole module's classes, decompiled
// once up front by the caller).
func New(mod *hlbytecode.Module, classes []hlast.Class, objs []*hlbytecode.TypeObj) Model {
	items := make([]list.Item, len(classes))
	for i, c := range classes {
		var obj *hlbytecode.TypeObj
		if i < len(objs) {
			obj = objs[i]
		}
		items[i] = classItem{obj: obj, cls: c}
	}

	classList := list.New(items, list.NewDefaultDelegate(), 0, 0)
	classList.Title = "Classes"

	methodList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	methodList.Title = "Methods"

	vp := viewport.New(0, 0)

	m := Model{
		mod:     mod,
		classes: classList,
		methods: methodList,
		source:  vp,
		focus:   paneClasses,
	}
	m.syncMethods()
	return m
}

// Run starts the Bubble Tea program over the given model, mirroring
// the teacher's Start entry point.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) selectedClass() (classItem, bool) {
	if it, ok := m.classes.SelectedItem().(classItem); ok {
		return it, true
	}
	return classItem{}, false
}

func (m *Model) syncMethods() {
	cls, ok := m.selectedClass()
	if !ok {
		m.methods.SetItems(nil)
		m.source.SetContent("")
		return
	}
	items := make([]list.Item, len(cls.cls.Methods))
	for i, meth := range cls.cls.Methods {
		items[i] = methodItem{method: meth}
	}
	m.methods.SetItems(items)
	m.syncSource()
}

func (m *Model) syncSource() {
	if it, ok := m.methods.SelectedItem().(methodItem); ok {
		m.source.SetContent(printer.Method(it.method))
		return
	}
	if cls, ok := m.selectedClass(); ok {
		m.source.SetContent(printer.Class(cls.cls))
		return
	}
	m.source.SetContent("")
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		paneWidth := m.width/3 - 4
		paneHeight := m.height - 6
		m.classes.SetSize(paneWidth, paneHeight)
		m.methods.SetSize(paneWidth, paneHeight)
		m.source.Width = m.width - 2*paneWidth - 8
		m.source.Height = paneHeight
		m.syncSource()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "tab":
			m.focus = (m.focus + 1) % 3
			return m, nil
		case "shift+tab":
			m.focus = (m.focus + 2) % 3
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case paneClasses:
		prevIdx := m.classes.Index()
		m.classes, cmd = m.classes.Update(msg)
		if m.classes.Index() != prevIdx {
			m.syncMethods()
		}
	case paneMethods:
		prevIdx := m.methods.Index()
		m.methods, cmd = m.methods.Update(msg)
		if m.methods.Index() != prevIdx {
			m.syncSource()
		}
	case paneSource:
		m.source, cmd = m.source.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(" HashLink decompiler inspector "))
	b.WriteString("\n")

	classPane := styleFor(m.focus, paneClasses).Render(m.classes.View())
	methodPane := styleFor(m.focus, paneMethods).Render(m.methods.View())
	sourcePane := styleFor(m.focus, paneSource).Render(m.source.View())

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, classPane, methodPane, sourcePane))
	b.WriteString("\n")
	if m.lastError != "" {
		b.WriteString(errorStyle.Render(m.lastError))
	}
	return b.String()
}

func styleFor(focus, p pane) lipgloss.Style {
	if focus == p {
		return activePaneStyle
	}
	return paneStyle
}

// BuildClasses decompiles every Obj/Struct type in the module into a
// Class AST, skipping any that aren't object-shaped (enums, abstracts,
// and the like have no class representation).
func BuildClasses(mod *hlbytecode.Module, diag decompiler.Diagnostics, opts decompiler.Options) ([]hlast.Class, []*hlbytecode.TypeObj) {
	var classes []hlast.Class
	var objs []*hlbytecode.TypeObj
	for _, t := range mod.Types {
		obj, ok := asTypeObj(t)
		if !ok {
			continue
		}
		classes = append(classes, decompiler.DecompileClass(mod, obj, diag, opts))
		objs = append(objs, obj)
	}
	return classes, objs
}

func asTypeObj(t hlbytecode.Type) (*hlbytecode.TypeObj, bool) {
	switch v := t.(type) {
	case hlbytecode.TObj:
		return v.Def, true
	case hlbytecode.TStruct:
		return v.Def, true
	}
	return nil, false
}
