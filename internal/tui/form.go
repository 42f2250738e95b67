package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/JonMunkholm/inventory/internal/core"
	tea "github.com/charmbracelet/bubbletea"
)

type formField struct {
	name  string
	label string
	value string
}

// submitFunc saves the current field values.
type submitFunc func(ctx context.Context, values map[string]string) error

// submittedMsg carries the result of a form submit.
type submittedMsg struct{ err error }

// formModel is an entry form. A successful submit clears every field;
// a validation failure moves focus to the offending field.
type formModel struct {
	parent     *Model
	title      string
	fields     []formField
	focus      int
	submit     submitFunc
	successMsg string
	failureMsg string
	submitting bool
	status     string
	isErr      bool
}

func newProductForm(m *Model) *formModel {
	return &formModel{
		parent: m,
		title:  "Add Product",
		fields: []formField{
			{name: core.FieldName, label: "Product Name"},
			{name: core.FieldCategory, label: "Category"},
			{name: core.FieldPrice, label: "Price"},
			{name: core.FieldQuantity, label: "Quantity"},
			{name: core.FieldDescription, label: "Description"},
		},
		submit: func(ctx context.Context, v map[string]string) error {
			_, err := m.backend.AddProduct(ctx, core.ProductInput{
				Name:        v[core.FieldName],
				Category:    v[core.FieldCategory],
				Price:       v[core.FieldPrice],
				Quantity:    v[core.FieldQuantity],
				Description: v[core.FieldDescription],
			}, m.rules)
			return err
		},
		successMsg: core.MsgProductAdded,
		failureMsg: core.MsgProductFailed,
	}
}

func newBuyerForm(m *Model) *formModel {
	return &formModel{
		parent: m,
		title:  "Add Buyer",
		fields: []formField{
			{name: core.FieldName, label: "Name"},
			{name: core.FieldEmail, label: "Email"},
			{name: core.FieldPhone, label: "Phone"},
			{name: core.FieldAddress, label: "Address"},
		},
		submit: func(ctx context.Context, v map[string]string) error {
			_, err := m.backend.AddBuyer(ctx, core.BuyerInput{
				Name:    v[core.FieldName],
				Email:   v[core.FieldEmail],
				Phone:   v[core.FieldPhone],
				Address: v[core.FieldAddress],
			})
			return err
		},
		successMsg: core.MsgBuyerAdded,
		failureMsg: core.MsgBuyerFailed,
	}
}

func (f *formModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case submittedMsg:
		f.submitting = false
		f.handleResult(msg.err)
		return nil
	case tea.KeyMsg:
		return f.handleKey(msg)
	}
	return nil
}

func (f *formModel) handleKey(k tea.KeyMsg) tea.Cmd {
	switch k.String() {
	case "tab", "down":
		f.focus = (f.focus + 1) % len(f.fields)
	case "shift+tab", "up":
		f.focus = (f.focus - 1 + len(f.fields)) % len(f.fields)
	case "ctrl+r":
		f.clear()
		f.status = ""
	case "enter":
		if f.submitting {
			return nil
		}
		f.submitting = true
		return f.submitCmd()
	case "backspace":
		v := []rune(f.fields[f.focus].value)
		if len(v) > 0 {
			f.fields[f.focus].value = string(v[:len(v)-1])
		}
	default:
		switch k.Type {
		case tea.KeyRunes:
			f.fields[f.focus].value += string(k.Runes)
		case tea.KeySpace:
			f.fields[f.focus].value += " "
		}
	}
	return nil
}

func (f *formModel) submitCmd() tea.Cmd {
	values := make(map[string]string, len(f.fields))
	for _, fl := range f.fields {
		values[fl.name] = fl.value
	}
	return func() tea.Msg {
		ctx, cancel := f.parent.opContext()
		defer cancel()
		return submittedMsg{err: f.submit(ctx, values)}
	}
}

func (f *formModel) handleResult(err error) {
	if err == nil {
		f.clear()
		f.status, f.isErr = f.successMsg, false
		return
	}

	f.isErr = true
	var ve *core.ValidationError
	if errors.As(err, &ve) {
		f.status = ve.Message
		f.focusField(ve.Field)
		return
	}
	f.status = f.failureMsg + " " + core.FormatUserError(err)
}

// clear empties every field and focuses the first.
func (f *formModel) clear() {
	for i := range f.fields {
		f.fields[i].value = ""
	}
	f.focus = 0
}

func (f *formModel) focusField(name string) {
	for i, fl := range f.fields {
		if fl.name == name {
			f.focus = i
			return
		}
	}
}

func (f *formModel) focusedName() string {
	return f.fields[f.focus].name
}

func (f *formModel) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(f.title))
	b.WriteString("\n\n")
	for i, fl := range f.fields {
		line := fl.label + ": " + fl.value
		if i == f.focus {
			b.WriteString(cursorStyle.Render("> "+line) + "_")
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if f.submitting {
		b.WriteString("Saving...\n\n")
	}
	b.WriteString(statusLine(f.status, f.isErr))
	b.WriteString(helpStyle.Render("tab/shift+tab: field  enter: save  ctrl+r: clear  esc: back"))
	return b.String()
}
