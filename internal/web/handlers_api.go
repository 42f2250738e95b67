package web

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/JonMunkholm/inventory/internal/core"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 64 << 10

// ProductResponse is the JSON form of a product.
type ProductResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	PriceText   string  `json:"price_display"`
	Quantity    int     `json:"quantity"`
	Description string  `json:"description"`
}

// BuyerResponse is the JSON form of a buyer.
type BuyerResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// DeleteResponse reports the outcome of a delete request.
type DeleteResponse struct {
	ID      int64  `json:"id"`
	Outcome string `json:"outcome"`
	Message string `json:"message"`
}

func toProductResponse(p core.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Price:       p.Price,
		PriceText:   core.FormatPrice(p.Price),
		Quantity:    p.Quantity,
		Description: p.Description,
	}
}

// handleAPIListProducts returns products matching the optional q filter.
func (s *Server) handleAPIListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.backend.ListProducts(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	writeJSON(w, http.StatusOK, out)
}

// handleAPICreateProduct validates and saves a product from a JSON body whose
// fields are the raw form strings.
func (s *Server) handleAPICreateProduct(w http.ResponseWriter, r *http.Request) {
	var in core.ProductInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	ctx := WithRequestMetadata(r.Context(), r)
	p, err := s.backend.AddProduct(ctx, in, s.rules)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, http.StatusCreated, toProductResponse(p))
}

// handleAPICreateBuyer validates and saves a buyer from a JSON body.
func (s *Server) handleAPICreateBuyer(w http.ResponseWriter, r *http.Request) {
	var in core.BuyerInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	ctx := WithRequestMetadata(r.Context(), r)
	b, err := s.backend.AddBuyer(ctx, in)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, http.StatusCreated, BuyerResponse{
		ID:      b.ID,
		Name:    b.Name,
		Email:   b.Email,
		Phone:   b.Phone,
		Address: b.Address,
	})
}

// handleAPIDeleteProduct deletes a product. The caller confirms with
// ?confirm=yes; without it the request is answered as cancelled.
func (s *Server) handleAPIDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	confirmed := strings.EqualFold(r.URL.Query().Get("confirm"), "yes")

	ctx := WithRequestMetadata(r.Context(), r)
	view := core.NewRequestView(s.backend)
	outcome, err := view.ActionFor(id).Execute(ctx, core.ConfirmFunc(func(context.Context, string) bool {
		return confirmed
	}))
	if err != nil || outcome == core.DeleteFailed {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	status := http.StatusOK
	switch outcome {
	case core.DeleteNotFound:
		status = http.StatusNotFound
	case core.DeleteCancelled:
		status = http.StatusPreconditionRequired
	}
	writeJSON(w, status, DeleteResponse{ID: id, Outcome: outcome.String(), Message: outcome.Message()})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errBadBody
	}
	return nil
}
