package core

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/shopspring/decimal"
)

// ViewState is the load state of a ProductView.
type ViewState int

const (
	ViewIdle ViewState = iota
	ViewLoading
	ViewError
)

func (s ViewState) String() string {
	switch s {
	case ViewLoading:
		return "loading"
	case ViewError:
		return "error"
	default:
		return "idle"
	}
}

// ProductStore is the part of Inventory a product table needs.
type ProductStore interface {
	ListProducts(ctx context.Context, filter string) ([]Product, error)
	DeleteProduct(ctx context.Context, id int64) (int64, error)
}

// DisplayRow is one product as shown in a table, with its delete action.
// Rows are rebuilt on every load and hold no state of their own.
type DisplayRow struct {
	ID          int64
	Name        string
	Category    string
	Price       string // formatted, e.g. "$12.50"
	Quantity    string
	Description string
	Delete      DeleteAction
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(ctx context.Context, prompt string) bool

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

// DeleteOutcome is the result of running a DeleteAction.
type DeleteOutcome int

const (
	DeleteCancelled DeleteOutcome = iota
	DeleteDone
	DeleteNotFound
	DeleteFailed
)

func (o DeleteOutcome) String() string {
	switch o {
	case DeleteDone:
		return "deleted"
	case DeleteNotFound:
		return "not_found"
	case DeleteFailed:
		return "failed"
	default:
		return "cancelled"
	}
}

// Message is the wording shown to the user for the outcome.
func (o DeleteOutcome) Message() string {
	switch o {
	case DeleteDone:
		return "Product deleted successfully!"
	case DeleteNotFound:
		return "Product not found or already deleted."
	case DeleteFailed:
		return "Failed to delete product!"
	default:
		return "Delete cancelled."
	}
}

// DeleteAction deletes one product after confirmation. It is bound to the
// product ID at load time and does not change if the view reloads.
type DeleteAction struct {
	id   int64
	name string
	view *ProductView
}

// ID returns the product ID the action is bound to.
func (a DeleteAction) ID() int64 { return a.id }

// Prompt is the confirmation question for this action.
func (a DeleteAction) Prompt() string {
	if a.name == "" {
		return "Are you sure you want to delete this product?"
	}
	return fmt.Sprintf("Are you sure you want to delete %q?", a.name)
}

// Execute asks c for confirmation and deletes the product on yes.
//
// On DeleteDone the view reloads, unless it was created with NewRequestView.
// On DeleteNotFound and DeleteFailed the view keeps its current rows until the
// next load. The returned error is non-nil only for DeleteFailed or a failed
// reload after a successful delete.
func (a DeleteAction) Execute(ctx context.Context, c Confirmer) (DeleteOutcome, error) {
	if a.view == nil {
		return DeleteFailed, fmt.Errorf("delete action for product %d is not bound to a view", a.id)
	}
	if c == nil || !c.Confirm(ctx, a.Prompt()) {
		return DeleteCancelled, nil
	}

	n, err := a.view.store.DeleteProduct(ctx, a.id)
	if err != nil {
		return DeleteFailed, err
	}
	if n == 0 {
		return DeleteNotFound, nil
	}

	if a.view.requestScoped {
		return DeleteDone, nil
	}
	return DeleteDone, a.view.Load(ctx)
}

// ProductView keeps the rows of a product table consistent with the store.
//
// Load moves Idle to Loading and back to Idle, or to Error on failure. Rows
// are replaced wholesale on every successful load. A failed load keeps the
// previous rows. The mutex lets a renderer read while a load runs; the view
// starts no goroutines.
type ProductView struct {
	store ProductStore
	// requestScoped views are discarded after one delete and never reload.
	requestScoped bool

	mu     sync.Mutex
	filter string
	rows   []DisplayRow
	state  ViewState
	err    error
}

// NewProductView creates an empty view over store.
func NewProductView(store ProductStore) *ProductView {
	return &ProductView{store: store}
}

// NewRequestView creates a view that lives for a single request. Its delete
// actions skip the reload after a successful delete, since nothing renders
// the view afterwards.
func NewRequestView(store ProductStore) *ProductView {
	return &ProductView{store: store, requestScoped: true}
}

// Load re-reads the products matching the current filter.
func (v *ProductView) Load(ctx context.Context) error {
	v.mu.Lock()
	filter := v.filter
	v.state = ViewLoading
	v.mu.Unlock()

	products, err := v.store.ListProducts(ctx, filter)

	v.mu.Lock()
	defer v.mu.Unlock()

	// A newer filter was set while this load ran; its own load owns the
	// state, whether this one failed or not.
	if filter != v.filter {
		return nil
	}

	if err != nil {
		v.state = ViewError
		v.err = err
		return err
	}

	rows := make([]DisplayRow, len(products))
	for i, p := range products {
		rows[i] = v.displayRow(p)
	}
	v.rows = rows
	v.state = ViewIdle
	v.err = nil
	return nil
}

// SetFilter changes the filter text and reloads if it differs from the
// current value. It reports whether a load was performed.
func (v *ProductView) SetFilter(ctx context.Context, text string) (bool, error) {
	v.mu.Lock()
	if text == v.filter {
		v.mu.Unlock()
		return false, nil
	}
	v.filter = text
	v.mu.Unlock()

	return true, v.Load(ctx)
}

// Refresh reloads regardless of whether the filter changed.
func (v *ProductView) Refresh(ctx context.Context) error {
	return v.Load(ctx)
}

// Rows returns a copy of the current rows.
func (v *ProductView) Rows() []DisplayRow {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]DisplayRow, len(v.rows))
	copy(out, v.rows)
	return out
}

// Filter returns the current filter text.
func (v *ProductView) Filter() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filter
}

// State returns the load state and, in ViewError, the error that caused it.
func (v *ProductView) State() (ViewState, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state, v.err
}

// ActionFor returns a delete action bound to id. The row need not be loaded;
// this serves surfaces that receive the ID from a request.
func (v *ProductView) ActionFor(id int64) DeleteAction {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, r := range v.rows {
		if r.ID == id {
			return r.Delete
		}
	}
	return DeleteAction{id: id, view: v}
}

func (v *ProductView) displayRow(p Product) DisplayRow {
	return DisplayRow{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Price:       FormatPrice(p.Price),
		Quantity:    strconv.Itoa(p.Quantity),
		Description: p.Description,
		Delete:      DeleteAction{id: p.ID, name: p.Name, view: v},
	}
}

// FormatPrice renders a price as dollars with two decimals, e.g. "$12.50".
func FormatPrice(price float64) string {
	return "$" + decimal.NewFromFloat(price).StringFixed(2)
}
