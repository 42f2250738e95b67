package web

// handlers_common.go contains shared helpers for the form and listing handlers.

import (
	"net/http"
	"strconv"

	"github.com/JonMunkholm/inventory/internal/core"
	"github.com/JonMunkholm/inventory/internal/web/templates"
	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
)

// parseID reads the {id} URL parameter.
func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// productForm builds the add-product form with the given values.
func (s *Server) productForm(in core.ProductInput) templates.FormData {
	return templates.FormData{
		Title:  "Add Product",
		Action: "/products",
		Fields: []templates.FormField{
			{Name: core.FieldName, Label: "Product Name", Value: in.Name, Required: true},
			{Name: core.FieldCategory, Label: "Category", Value: in.Category, Required: s.rules.RequireCategory},
			{Name: core.FieldPrice, Label: "Price", Value: in.Price, Type: "text", Required: true},
			{Name: core.FieldQuantity, Label: "Quantity", Value: in.Quantity, Type: "text", Required: true},
			{Name: core.FieldDescription, Label: "Description", Value: in.Description, Type: "textarea", Required: s.rules.RequireDescription},
		},
	}
}

// buyerForm builds the add-buyer form with the given values.
func buyerForm(in core.BuyerInput) templates.FormData {
	return templates.FormData{
		Title:  "Add Buyer",
		Action: "/buyers",
		Fields: []templates.FormField{
			{Name: core.FieldName, Label: "Name", Value: in.Name, Required: true},
			{Name: core.FieldEmail, Label: "Email", Value: in.Email, Type: "email", Required: true},
			{Name: core.FieldPhone, Label: "Phone", Value: in.Phone, Type: "tel", Required: true},
			{Name: core.FieldAddress, Label: "Address", Value: in.Address, Type: "textarea", Required: true},
		},
	}
}

func productInputFromForm(r *http.Request) core.ProductInput {
	return core.ProductInput{
		Name:        r.PostFormValue(core.FieldName),
		Category:    r.PostFormValue(core.FieldCategory),
		Price:       r.PostFormValue(core.FieldPrice),
		Quantity:    r.PostFormValue(core.FieldQuantity),
		Description: r.PostFormValue(core.FieldDescription),
	}
}

func buyerInputFromForm(r *http.Request) core.BuyerInput {
	return core.BuyerInput{
		Name:    r.PostFormValue(core.FieldName),
		Email:   r.PostFormValue(core.FieldEmail),
		Phone:   r.PostFormValue(core.FieldPhone),
		Address: r.PostFormValue(core.FieldAddress),
	}
}

// render writes an HTML component with the given status.
func render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		logRenderError(r, err)
	}
}
