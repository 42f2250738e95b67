package web

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/JonMunkholm/inventory/internal/core"
	"github.com/JonMunkholm/inventory/internal/logging"
	"github.com/JonMunkholm/inventory/internal/web/templates"
)

// exportColumns is the header row of the CSV export.
var exportColumns = []string{"ID", "Name", "Category", "Price", "Quantity", "Description"}

// loadView builds a product view for the request's filter and loads it.
func (s *Server) loadView(ctx context.Context, filter string) (*core.ProductView, error) {
	view := core.NewProductView(s.backend)
	reloaded, err := view.SetFilter(ctx, filter)
	if err != nil {
		return view, err
	}
	if !reloaded {
		// A blank filter on a new view is not a change.
		err = view.Load(ctx)
	}
	return view, err
}

// handleProductList renders the searchable product table.
func (s *Server) handleProductList(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("q")
	s.renderProductList(w, r, filter, r.URL.Query().Get("flash"))
}

func (s *Server) renderProductList(w http.ResponseWriter, r *http.Request, filter, flash string) {
	view, err := s.loadView(r.Context(), filter)

	data := templates.ProductListData{
		Filter: filter,
		Rows:   view.Rows(),
		Flash:  flash,
	}
	status := http.StatusOK
	if err != nil {
		data.Error = errorAlert(err)
		status = http.StatusInternalServerError
	}
	render(w, r, status, templates.ProductList(data))
}

// handleConfirmDelete renders the yes/no question for one product.
func (s *Server) handleConfirmDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	filter := r.URL.Query().Get("q")
	view, err := s.loadView(r.Context(), filter)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	render(w, r, http.StatusOK, templates.ConfirmDelete(templates.ConfirmDeleteData{
		ID:     id,
		Prompt: view.ActionFor(id).Prompt(),
		Filter: filter,
	}))
}

// handleDeleteProduct runs the delete action with the submitted answer and
// redirects to the listing with the outcome.
func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	filter := r.PostFormValue("q")
	answer := strings.EqualFold(r.PostFormValue("confirm"), "yes")

	ctx := WithRequestMetadata(r.Context(), r)
	// The listing is re-read by the redirect target, so the view is not
	// reloaded here.
	view := core.NewRequestView(s.backend)

	outcome, err := view.ActionFor(id).Execute(ctx, core.ConfirmFunc(func(context.Context, string) bool {
		return answer
	}))

	flash := outcome.Message()
	if err != nil {
		flash = flash + " " + core.FormatUserError(err)
	}

	// Redirect so a reload does not resubmit the delete.
	target := "/products?" + queryWith(filter, flash)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// handleExportProducts streams the current listing as CSV.
func (s *Server) handleExportProducts(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("q")

	products, err := s.backend.ListProducts(r.Context(), filter)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("products_%s.csv", timestamp)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	csvWriter := csv.NewWriter(w)
	if err := csvWriter.Write(exportColumns); err != nil {
		// Can't change status code after writing, just log and return
		logging.FromContext(r.Context()).Error("export write failed", "error", err)
		return
	}

	for _, p := range products {
		record := []string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			p.Category,
			core.FormatPrice(p.Price),
			strconv.Itoa(p.Quantity),
			p.Description,
		}
		if err := csvWriter.Write(record); err != nil {
			logging.FromContext(r.Context()).Error("export write failed", "error", err)
			return
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		logging.FromContext(r.Context()).Error("export flush failed", "error", err)
	}
}

func queryWith(filter, flash string) string {
	v := url.Values{}
	if filter != "" {
		v.Set("q", filter)
	}
	if flash != "" {
		v.Set("flash", flash)
	}
	return v.Encode()
}
