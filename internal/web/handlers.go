package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/JonMunkholm/inventory/internal/core"
	"github.com/JonMunkholm/inventory/internal/logging"
	"github.com/JonMunkholm/inventory/internal/web/templates"
	"github.com/a-h/templ"
)

// handleDashboard renders the landing page with record counts.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	// Counts are informational; the page still renders without them.
	var statsErr templ.Component
	stats, err := s.backend.Stats(r.Context())
	if err != nil {
		statsErr = errorAlert(err)
	}
	render(w, r, http.StatusOK, templates.Dashboard(stats, statsErr))
}

// handleHealth reports whether the store can be opened.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.backend.Ping(r.Context()); err != nil {
		msg := core.MapError(err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
			"code":   msg.Code,
			"ref":    msg.Ref,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleNewProduct renders an empty add-product form.
func (s *Server) handleNewProduct(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, templates.EntryForm(s.productForm(core.ProductInput{})))
}

// handleCreateProduct validates and saves the add-product form.
// On success the form is cleared; on failure the values are kept and the
// offending field is focused.
func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	in := productInputFromForm(r)

	ctx := WithRequestMetadata(r.Context(), r)
	_, err := s.backend.AddProduct(ctx, in, s.rules)
	if err != nil {
		form := s.productForm(in)
		status := statusFor(err)
		if ve := validationError(err); ve != nil {
			form.Invalid = ve.Field
			form.Error = ve.Message
		} else {
			form.Error = core.MsgProductFailed + " " + core.FormatUserError(err)
		}
		render(w, r, status, templates.EntryForm(form))
		return
	}

	form := s.productForm(core.ProductInput{})
	form.Success = core.MsgProductAdded
	render(w, r, http.StatusCreated, templates.EntryForm(form))
}

// handleNewBuyer renders an empty add-buyer form.
func (s *Server) handleNewBuyer(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, templates.EntryForm(buyerForm(core.BuyerInput{})))
}

// handleCreateBuyer validates and saves the add-buyer form.
func (s *Server) handleCreateBuyer(w http.ResponseWriter, r *http.Request) {
	in := buyerInputFromForm(r)

	ctx := WithRequestMetadata(r.Context(), r)
	_, err := s.backend.AddBuyer(ctx, in)
	if err != nil {
		form := buyerForm(in)
		status := statusFor(err)
		if ve := validationError(err); ve != nil {
			form.Invalid = ve.Field
			form.Error = ve.Message
		} else {
			form.Error = core.MsgBuyerFailed + " " + core.FormatUserError(err)
		}
		render(w, r, status, templates.EntryForm(form))
		return
	}

	form := buyerForm(core.BuyerInput{})
	form.Success = core.MsgBuyerAdded
	render(w, r, http.StatusCreated, templates.EntryForm(form))
}

func validationError(err error) *core.ValidationError {
	var ve *core.ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

func logRenderError(r *http.Request, err error) {
	logging.FromContext(r.Context()).Error("render page", "path", r.URL.Path, slog.Any("error", err))
}
