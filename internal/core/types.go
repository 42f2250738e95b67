package core

import (
	"context"
	"errors"
)

// ErrAlreadyPersisted is returned when an insert is attempted for a value
// that already carries a store-assigned ID.
var ErrAlreadyPersisted = errors.New("record already persisted")

// Outcome wording shown after a form submit.
const (
	MsgProductAdded  = "Product added successfully!"
	MsgProductFailed = "Failed to add product!"
	MsgBuyerAdded    = "Buyer added successfully!"
	MsgBuyerFailed   = "Failed to add buyer!"
)

// Product is a stocked item. ID is zero until the store assigns one.
type Product struct {
	ID          int64
	Name        string
	Category    string
	Price       float64
	Quantity    int
	Description string
}

// Persisted reports whether the store has assigned an ID.
func (p Product) Persisted() bool { return p.ID > 0 }

// Buyer is a customer contact. ID is zero until the store assigns one.
type Buyer struct {
	ID      int64
	Name    string
	Email   string
	Phone   string
	Address string
}

// Persisted reports whether the store has assigned an ID.
func (b Buyer) Persisted() bool { return b.ID > 0 }

// ProductInput is the raw text collected by an "Add Product" form.
type ProductInput struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Price       string `json:"price"`
	Quantity    string `json:"quantity"`
	Description string `json:"description"`
}

// BuyerInput is the raw text collected by an "Add Buyer" form.
type BuyerInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Inventory is the set of operations the presentation surfaces depend on.
type Inventory interface {
	AddProduct(ctx context.Context, in ProductInput, rules ProductRules) (Product, error)
	AddBuyer(ctx context.Context, in BuyerInput) (Buyer, error)
	ListProducts(ctx context.Context, filter string) ([]Product, error)
	DeleteProduct(ctx context.Context, id int64) (int64, error)
}

// Stats is the dashboard summary.
type Stats struct {
	Products int64
	Buyers   int64
}
