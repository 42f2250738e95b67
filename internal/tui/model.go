// Package tui is the terminal front end: a menu leading to the add-product
// and add-buyer forms and the delete-products list.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/JonMunkholm/inventory/internal/core"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// OpTimeout bounds a single store operation started from the terminal.
var OpTimeout = 30 * time.Second

// originTUI marks change log lines made from the terminal.
const originTUI = "tui"

// Backend is what the terminal needs from the inventory service.
type Backend interface {
	core.Inventory
	Stats(ctx context.Context) (core.Stats, error)
	Ping(ctx context.Context) error
}

type screen int

const (
	screenMenu screen = iota
	screenProductForm
	screenBuyerForm
	screenProductList
)

// Messages produced by commands.
type (
	openMsg screen
	DoneMsg string
	ErrMsg  struct{ Err error }
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cursorStyle   = lipgloss.NewStyle().Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	selectedStyle = lipgloss.NewStyle().Reverse(true)
)

// Model is the root bubbletea model.
type Model struct {
	backend Backend
	rules   core.ProductRules

	menu   *Menu
	cursor int
	screen screen

	form *formModel
	list *listModel

	status string
	isErr  bool
}

// New returns the root model with the main menu showing.
func New(backend Backend, rules core.ProductRules) *Model {
	m := &Model{backend: backend, rules: rules}
	m.menu = buildMenuTree(m)
	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch msg := msg.(type) {
	case openMsg:
		return m, m.open(screen(msg))
	case DoneMsg:
		m.setStatus(string(msg), false)
		return m, nil
	case ErrMsg:
		m.setStatus(core.FormatUserError(msg.Err), true)
		return m, nil
	}

	switch m.screen {
	case screenProductForm, screenBuyerForm:
		if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
			m.back()
			return m, nil
		}
		return m, m.form.update(msg)
	case screenProductList:
		if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" && !m.list.confirming() {
			m.back()
			return m, nil
		}
		return m, m.list.update(msg)
	}

	return m, m.updateMenu(msg)
}

func (m *Model) updateMenu(msg tea.Msg) tea.Cmd {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch k.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.menu.Items)-1 {
			m.cursor++
		}
	case "esc", "backspace":
		if m.menu.Parent != nil {
			m.menu = m.menu.Parent
			m.cursor = 0
		}
	case "q":
		return tea.Quit
	case "enter":
		item := m.menu.Items[m.cursor]
		if item.Submenu != nil {
			m.menu = item.Submenu
			m.cursor = 0
			m.status = ""
			return nil
		}
		if item.Action != nil {
			return item.Action()
		}
	}
	return nil
}

func (m *Model) open(s screen) tea.Cmd {
	m.screen = s
	m.status = ""
	switch s {
	case screenProductForm:
		m.form = newProductForm(m)
	case screenBuyerForm:
		m.form = newBuyerForm(m)
	case screenProductList:
		m.list = newListModel(m)
		return m.list.load()
	}
	return nil
}

func (m *Model) back() {
	m.screen = screenMenu
	m.form = nil
	m.list = nil
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.isErr = isErr
}

// opContext returns a context for one store operation.
func (m *Model) opContext() (context.Context, context.CancelFunc) {
	ctx := core.ContextWithOrigin(context.Background(), originTUI)
	return context.WithTimeout(ctx, OpTimeout)
}

func (m *Model) pingCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.opContext()
		defer cancel()

		if err := m.backend.Ping(ctx); err != nil {
			return ErrMsg{Err: err}
		}
		return DoneMsg("Connection OK")
	}
}

func (m *Model) statsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.opContext()
		defer cancel()

		stats, err := m.backend.Stats(ctx)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return DoneMsg(fmt.Sprintf("Products: %d  Buyers: %d", stats.Products, stats.Buyers))
	}
}

func (m *Model) View() string {
	switch m.screen {
	case screenProductForm, screenBuyerForm:
		return m.form.view()
	case screenProductList:
		return m.list.view()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.menu.Title))
	b.WriteString("\n\n")
	for i, item := range m.menu.Items {
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> " + item.Label))
		} else {
			b.WriteString("  " + item.Label)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(statusLine(m.status, m.isErr))
	b.WriteString(helpStyle.Render("up/down: move  enter: select  esc: back  q: quit"))
	return b.String()
}

func statusLine(s string, isErr bool) string {
	if s == "" {
		return ""
	}
	if isErr {
		return errorStyle.Render(s) + "\n\n"
	}
	return successStyle.Render(s) + "\n\n"
}
