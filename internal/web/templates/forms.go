package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// FormField describes one input on an entry form.
type FormField struct {
	Name     string // form key and element id
	Label    string
	Value    string
	Type     string // input type; "textarea" renders a text area
	Required bool
}

// FormData is the state of an entry form between requests.
type FormData struct {
	Title   string
	Action  string // POST target
	Fields  []FormField
	Invalid string // name of the field that failed validation
	Error   string
	Success string
}

// focusField returns the field that should receive focus: the invalid one,
// or the first field.
func (d FormData) focusField() string {
	if d.Invalid != "" {
		return d.Invalid
	}
	if len(d.Fields) > 0 {
		return d.Fields[0].Name
	}
	return ""
}

// EntryForm renders an add-record form. Clearing resets every field by
// reloading the empty form, which focuses the first field.
func EntryForm(d FormData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &page{w: w}
		p.component(ctx, Alert(AlertError, d.Error))
		p.component(ctx, Alert(AlertSuccess, d.Success))

		p.raw(`<form method="post" action="`)
		p.text(d.Action)
		p.raw(`" novalidate>`)

		focus := d.focusField()
		for _, f := range d.Fields {
			p.raw(`<label for="`)
			p.text(f.Name)
			p.raw(`">`)
			p.text(f.Label)
			if f.Required {
				p.raw(` *`)
			}
			p.raw(`</label>`)

			if f.Type == "textarea" {
				p.raw(`<textarea rows="3" id="`)
				p.text(f.Name)
				p.raw(`" name="`)
				p.text(f.Name)
				p.raw(`"`)
				attrs(p, f, focus, d.Invalid)
				p.raw(`>`)
				p.text(f.Value)
				p.raw(`</textarea>`)
				continue
			}

			typ := f.Type
			if typ == "" {
				typ = "text"
			}
			p.raw(`<input type="`)
			p.text(typ)
			p.raw(`" id="`)
			p.text(f.Name)
			p.raw(`" name="`)
			p.text(f.Name)
			p.raw(`" value="`)
			p.text(f.Value)
			p.raw(`"`)
			attrs(p, f, focus, d.Invalid)
			p.raw(`>`)
		}

		p.raw(`<div class="actions"><button type="submit">Save</button> `)
		p.raw(`<a href="`)
		p.text(d.Action + "/new")
		p.raw(`" role="button">Clear</a></div></form>`)
		return p.err
	})
	return Layout(d.Title, body)
}

func attrs(p *page, f FormField, focus, invalid string) {
	if f.Name == focus {
		p.raw(` autofocus`)
	}
	if f.Name == invalid {
		p.raw(` class="invalid" aria-invalid="true"`)
	}
}
