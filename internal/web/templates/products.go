package templates

import (
	"context"
	"io"
	"net/url"
	"strconv"

	"github.com/JonMunkholm/inventory/internal/core"
	"github.com/a-h/templ"
)

// ProductListData is the state of the product table page.
type ProductListData struct {
	Filter string
	Rows   []core.DisplayRow
	Flash  string // outcome of the last action
	Error  templ.Component
}

// ProductList renders the searchable product table with a delete link per row.
func ProductList(d ProductListData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &page{w: w}
		p.component(ctx, d.Error)
		p.component(ctx, Alert(AlertInfo, d.Flash))

		p.raw(`<form method="get" action="/products"><label for="q">Search by name or category</label>`)
		p.raw(`<input type="search" id="q" name="q" autofocus value="`)
		p.text(d.Filter)
		p.raw(`"><div class="actions"><button type="submit">Search</button> `)
		p.raw(`<a href="`)
		p.text(withFilter("/products", d.Filter))
		p.raw(`">Refresh</a> `)
		p.raw(`<a href="`)
		p.text(withFilter("/products/export", d.Filter))
		p.raw(`">Export CSV</a></div></form>`)

		if len(d.Rows) == 0 {
			p.raw(`<p>No products found.</p>`)
			return p.err
		}

		p.raw(`<table><thead><tr><th>ID</th><th>Name</th><th>Category</th><th>Price</th><th>Quantity</th><th>Description</th><th></th></tr></thead><tbody>`)
		for _, r := range d.Rows {
			p.raw(`<tr><td>`)
			p.text(strconv.FormatInt(r.ID, 10))
			p.raw(`</td><td>`)
			p.text(r.Name)
			p.raw(`</td><td>`)
			p.text(r.Category)
			p.raw(`</td><td>`)
			p.text(r.Price)
			p.raw(`</td><td>`)
			p.text(r.Quantity)
			p.raw(`</td><td>`)
			p.text(r.Description)
			p.raw(`</td><td><a href="`)
			p.text(withFilter("/products/"+strconv.FormatInt(r.Delete.ID(), 10)+"/delete", d.Filter))
			p.raw(`">Delete</a></td></tr>`)
		}
		p.raw(`</tbody></table>`)
		return p.err
	})
	return Layout("Delete Products", body)
}

// ConfirmDeleteData is the state of the yes/no confirmation page.
type ConfirmDeleteData struct {
	ID     int64
	Prompt string
	Filter string
}

// ConfirmDelete renders the confirmation question for deleting one product.
func ConfirmDelete(d ConfirmDeleteData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &page{w: w}
		p.raw(`<p>`)
		p.text(d.Prompt)
		p.raw(`</p><form method="post" action="/products/`)
		p.text(strconv.FormatInt(d.ID, 10))
		p.raw(`/delete"><input type="hidden" name="q" value="`)
		p.text(d.Filter)
		p.raw(`"><div class="actions">`)
		p.raw(`<button type="submit" name="confirm" value="yes">Yes</button> `)
		p.raw(`<button type="submit" name="confirm" value="no" autofocus>No</button>`)
		p.raw(`</div></form>`)
		return p.err
	})
	return Layout("Confirm Delete", body)
}

// Dashboard renders the landing page with record counts.
func Dashboard(stats core.Stats, statsErr templ.Component) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &page{w: w}
		p.component(ctx, statsErr)
		p.raw(`<div class="stats"><div class="stat"><h2>`)
		p.text(strconv.FormatInt(stats.Products, 10))
		p.raw(`</h2><a href="/products">Products</a></div><div class="stat"><h2>`)
		p.text(strconv.FormatInt(stats.Buyers, 10))
		p.raw(`</h2><a href="/buyers/new">Buyers</a></div></div>`)
		return p.err
	})
	return Layout("Inventory", body)
}

// withFilter appends the q parameter when filter is non-empty.
func withFilter(path, filter string) string {
	if filter == "" {
		return path
	}
	return path + "?" + url.Values{"q": {filter}}.Encode()
}
