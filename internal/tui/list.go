package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/JonMunkholm/inventory/internal/core"
	tea "github.com/charmbracelet/bubbletea"
)

// loadedMsg reports the end of a list load.
type loadedMsg struct{ err error }

// deletedMsg reports the outcome of a delete action.
type deletedMsg struct {
	outcome core.DeleteOutcome
	err     error
}

// listModel is the delete-products table. Typing edits the filter and
// reloads; ctrl+d asks for confirmation before deleting the selected row.
type listModel struct {
	parent   *Model
	products *core.ProductView
	filter   string
	selected int
	pending  *core.DeleteAction
	status   string
	isErr    bool
}

func newListModel(m *Model) *listModel {
	return &listModel{parent: m, products: core.NewProductView(m.backend)}
}

func (l *listModel) confirming() bool {
	return l.pending != nil
}

func (l *listModel) load() tea.Cmd {
	return l.run(func(ctx context.Context) error { return l.products.Load(ctx) })
}

func (l *listModel) run(fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := l.parent.opContext()
		defer cancel()
		return loadedMsg{err: fn(ctx)}
	}
}

func (l *listModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.err != nil {
			l.status, l.isErr = core.FormatUserError(msg.err), true
		}
		l.clampSelection()
		return nil
	case deletedMsg:
		l.status = msg.outcome.Message()
		l.isErr = msg.outcome == core.DeleteFailed
		if msg.err != nil {
			l.status += " " + core.FormatUserError(msg.err)
			l.isErr = true
		}
		l.clampSelection()
		return nil
	case tea.KeyMsg:
		if l.pending != nil {
			return l.answer(msg)
		}
		return l.handleKey(msg)
	}
	return nil
}

func (l *listModel) handleKey(k tea.KeyMsg) tea.Cmd {
	switch k.String() {
	case "up":
		if l.selected > 0 {
			l.selected--
		}
	case "down":
		if l.selected < len(l.products.Rows())-1 {
			l.selected++
		}
	case "ctrl+r":
		l.status = ""
		return l.run(l.products.Refresh)
	case "ctrl+d":
		rows := l.products.Rows()
		if len(rows) == 0 {
			return nil
		}
		// A reload may have shrunk the table since the selection moved.
		if l.selected >= len(rows) {
			l.selected = len(rows) - 1
		}
		action := rows[l.selected].Delete
		l.pending = &action
	case "backspace":
		v := []rune(l.filter)
		if len(v) == 0 {
			return nil
		}
		return l.setFilter(string(v[:len(v)-1]))
	default:
		switch k.Type {
		case tea.KeyRunes:
			return l.setFilter(l.filter + string(k.Runes))
		case tea.KeySpace:
			return l.setFilter(l.filter + " ")
		}
	}
	return nil
}

func (l *listModel) setFilter(text string) tea.Cmd {
	l.filter = text
	l.selected = 0
	return l.run(func(ctx context.Context) error {
		_, err := l.products.SetFilter(ctx, text)
		return err
	})
}

// answer resolves a pending confirmation. Any key other than y or n is
// ignored; esc counts as no.
func (l *listModel) answer(k tea.KeyMsg) tea.Cmd {
	var yes bool
	switch strings.ToLower(k.String()) {
	case "y":
		yes = true
	case "n", "esc":
	default:
		return nil
	}

	action := *l.pending
	l.pending = nil
	return func() tea.Msg {
		ctx, cancel := l.parent.opContext()
		defer cancel()
		outcome, err := action.Execute(ctx, core.ConfirmFunc(func(context.Context, string) bool {
			return yes
		}))
		return deletedMsg{outcome: outcome, err: err}
	}
}

func (l *listModel) clampSelection() {
	n := len(l.products.Rows())
	if l.selected >= n {
		l.selected = n - 1
	}
	if l.selected < 0 {
		l.selected = 0
	}
}

func (l *listModel) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Delete Products"))
	b.WriteString("\n\n")
	b.WriteString("Search: " + l.filter + "_\n\n")

	rows := l.products.Rows()
	if state, _ := l.products.State(); state == core.ViewLoading {
		b.WriteString("Loading...\n")
	}
	if len(rows) == 0 {
		b.WriteString("No products found.\n")
	}
	for i, r := range rows {
		line := fmt.Sprintf("%-6s %-24s %-16s %10s %8s  %s",
			strconv.FormatInt(r.ID, 10), r.Name, r.Category, r.Price, r.Quantity, r.Description)
		if i == l.selected {
			b.WriteString(selectedStyle.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if l.pending != nil {
		b.WriteString(l.pending.Prompt() + " (y/n)\n\n")
	}
	b.WriteString(statusLine(l.status, l.isErr))
	b.WriteString(helpStyle.Render("type: filter  up/down: select  ctrl+d: delete  ctrl+r: refresh  esc: back"))
	return b.String()
}
