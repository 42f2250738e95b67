// Package templates renders the HTML pages of the web front end as templ
// components.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// page accumulates writes and remembers the first error.
type page struct {
	w   io.Writer
	err error
}

func (p *page) raw(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *page) rawf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// text writes s with HTML escaping.
func (p *page) text(s string) {
	p.raw(templ.EscapeString(s))
}

func (p *page) component(ctx context.Context, c templ.Component) {
	if p.err != nil || c == nil {
		return
	}
	p.err = c.Render(ctx, p.w)
}

const styles = `
body{font-family:system-ui,sans-serif;margin:0;background:#f5f6f8;color:#222}
header{background:#2d3e50;color:#fff;padding:.75rem 1.5rem}
header a{color:#fff;margin-right:1rem;text-decoration:none}
main{max-width:56rem;margin:1.5rem auto;background:#fff;padding:1.5rem;border-radius:6px}
label{display:block;margin-top:.75rem;font-weight:600}
input,textarea{width:100%;padding:.4rem;box-sizing:border-box}
.invalid{border:2px solid #c0392b}
.alert{padding:.6rem 1rem;border-radius:4px;margin-bottom:1rem}
.alert-error{background:#fdecea;color:#8a1f11}
.alert-success{background:#e8f6ec;color:#1e6b34}
.alert-info{background:#eaf2fb;color:#1d4f7c}
table{width:100%;border-collapse:collapse;margin-top:1rem}
th,td{text-align:left;padding:.4rem;border-bottom:1px solid #ddd}
.actions{margin-top:1rem}
.stats{display:flex;gap:1rem}
.stat{flex:1;padding:1rem;background:#eef1f4;border-radius:4px}
`

// Layout wraps body in the common page chrome.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &page{w: w}
		p.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		p.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		p.raw(`<title>`)
		p.text(title)
		p.raw(` | Inventory</title><style>`)
		p.raw(styles)
		p.raw(`</style></head><body><header>`)
		p.raw(`<a href="/">Inventory</a>`)
		p.raw(`<a href="/products/new">Add Product</a>`)
		p.raw(`<a href="/buyers/new">Add Buyer</a>`)
		p.raw(`<a href="/products">Delete Products</a>`)
		p.raw(`</header><main><h1>`)
		p.text(title)
		p.raw(`</h1>`)
		p.component(ctx, body)
		p.raw(`</main></body></html>`)
		return p.err
	})
}

// Alert kinds.
const (
	AlertError   = "error"
	AlertSuccess = "success"
	AlertInfo    = "info"
)

// Alert renders a status message box. An empty message renders nothing.
func Alert(kind, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if message == "" {
			return nil
		}
		p := &page{w: w}
		p.raw(`<div class="alert alert-`)
		p.text(kind)
		p.raw(`" role="alert">`)
		p.text(message)
		p.raw(`</div>`)
		return p.err
	})
}

// ErrorAlert renders a user-facing error with its code and suggested action.
func ErrorAlert(message, action, code, ref string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &page{w: w}
		p.raw(`<div class="alert alert-error" role="alert"><strong>`)
		p.text(message)
		p.raw(`</strong>`)
		if action != "" {
			p.raw(`<p>`)
			p.text(action)
			p.raw(`</p>`)
		}
		if code != "" {
			p.raw(`<small>Code: `)
			p.text(code)
			if ref != "" {
				p.raw(` &middot; Ref: `)
				p.text(ref)
			}
			p.raw(`</small>`)
		}
		p.raw(`</div>`)
		return p.err
	})
}

// ErrorPage is a full page holding only an error alert.
func ErrorPage(message, action, code, ref string) templ.Component {
	return Layout("Error", ErrorAlert(message, action, code, ref))
}
