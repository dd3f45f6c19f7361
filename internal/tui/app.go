// internal/tui/app.go
//
// The interactive module browser behind `cm browse`. It follows the same
// Elm-style loop as any bubbletea program: the App model holds all state,
// Update reacts to messages, View renders a string. Underneath it is the
// exact same store and compiler code the plain CLI uses; the browser just
// saves the round trips through activate/deactivate/compile invocations.

package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mjbommar/quick-claude/internal/compiler"
	"github.com/mjbommar/quick-claude/internal/config"
	"github.com/mjbommar/quick-claude/internal/module"
	"github.com/mjbommar/quick-claude/internal/store"
)

var (
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5B8DEF")).
			Padding(0, 1)
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Padding(0, 1)
	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Padding(0, 1)
)

// moduleItem implements list.Item for one module file.
type moduleItem struct {
	mod module.Module
}

func (i moduleItem) Title() string {
	marker := "○"
	if i.mod.Active {
		marker = "✓"
	}
	return fmt.Sprintf("%s %s", marker, module.Stem(i.mod.Path))
}

func (i moduleItem) Description() string {
	desc := fmt.Sprintf("%s · priority %d", i.mod.Category, i.mod.Priority)
	if i.mod.Empty {
		desc += " · empty"
	}
	return desc
}

func (i moduleItem) FilterValue() string { return module.Stem(i.mod.Path) }

// App is the browser model. It holds ALL the state bubbletea renders.
type App struct {
	cfg      *config.Config
	store    *store.Store
	compiler *compiler.Compiler

	modules list.Model
	status  string
	err     error

	width  int
	height int
}

// NewApp builds the browser for the project described by cfg.
func NewApp(cfg *config.Config) (*App, error) {
	st := store.New(cfg.ModulesDir())
	items, err := loadItems(st)
	if err != nil {
		return nil, err
	}

	modules := list.New(items, list.NewDefaultDelegate(), 0, 0)
	modules.Title = "Claude Modules"
	modules.SetShowStatusBar(false)
	modules.SetFilteringEnabled(false)

	return &App{
		cfg:      cfg,
		store:    st,
		compiler: compiler.New(cfg),
		modules:  modules,
	}, nil
}

func loadItems(st *store.Store) ([]list.Item, error) {
	mods, err := st.Modules()
	if err != nil {
		return nil, err
	}
	items := make([]list.Item, len(mods))
	for i, m := range mods {
		items[i] = moduleItem{mod: m}
	}
	return items, nil
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.modules.SetSize(max(0, msg.Width-4), max(0, msg.Height-6))
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return a, tea.Quit
		case "enter", " ":
			a.toggleSelected()
			return a, nil
		case "c":
			a.compile()
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.modules, cmd = a.modules.Update(msg)
	return a, cmd
}

// toggleSelected flips the active flag of the highlighted module and reloads
// the list from disk so the markers reflect reality.
func (a *App) toggleSelected() {
	item, ok := a.modules.SelectedItem().(moduleItem)
	if !ok {
		return
	}
	stem := module.Stem(item.mod.Path)
	var (
		result store.ToggleResult
		err    error
		verb   string
	)
	if item.mod.Active {
		result, err = a.store.Deactivate(stem)
		verb = "Deactivated"
	} else {
		result, err = a.store.Activate(stem)
		verb = "Activated"
	}
	if err != nil {
		a.err = err
		return
	}
	a.err = nil
	if result.Changed == 0 {
		a.status = fmt.Sprintf("%s has no active flag to toggle", stem)
	} else {
		a.status = fmt.Sprintf("%s %s", verb, stem)
	}
	a.reload()
}

func (a *App) compile() {
	result, err := a.compiler.Compile()
	if err != nil {
		a.err = err
		return
	}
	a.err = nil
	a.status = fmt.Sprintf("Compiled %d modules into %s", len(result.Modules), config.OutputFile)
}

func (a *App) reload() {
	selected := a.modules.Index()
	items, err := loadItems(a.store)
	if err != nil {
		a.err = err
		return
	}
	a.modules.SetItems(items)
	if selected < len(items) {
		a.modules.Select(selected)
	}
}

// View implements tea.Model.
func (a *App) View() string {
	sections := []string{a.modules.View()}
	if a.err != nil {
		sections = append(sections, errorStyle.Render("Error: "+a.err.Error()))
	} else if a.status != "" {
		sections = append(sections, statusStyle.Render(a.status))
	}
	sections = append(sections, footerStyle.Render("enter toggle · c compile · q quit"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Run launches the browser in the alternate screen buffer and blocks until
// the user quits.
func Run(cfg *config.Config) error {
	app, err := NewApp(cfg)
	if err != nil {
		return err
	}
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
