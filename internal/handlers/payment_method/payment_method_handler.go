// Package payment_method serves the server-rendered card wallet console: the
// payment method list, the add-card form and their actions.
package payment_method

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kevin07696/card-wallet/internal/domain"
	"github.com/kevin07696/card-wallet/internal/services/ports"
	"github.com/kevin07696/card-wallet/internal/validation"
	"github.com/kevin07696/card-wallet/pkg/encoding"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// maxFormBytes bounds a posted form
const maxFormBytes = 16 << 10

var draftFields = []validation.Field{
	validation.FieldCardDetails,
	validation.FieldExpiryDate,
	validation.FieldCVV,
}

// Handler renders the console and applies its actions
type Handler struct {
	methods ports.PaymentMethodService
	form    ports.CardFormService
	logger  *zap.Logger
}

// NewHandler creates a new console handler
func NewHandler(methods ports.PaymentMethodService, form ports.CardFormService, logger *zap.Logger) *Handler {
	return &Handler{
		methods: methods,
		form:    form,
		logger:  logger,
	}
}

// AppendRoutes mounts the console on r. Mutating routes are wrapped with
// limit and the per-keystroke endpoint with fieldLimit; nil skips either.
func (h *Handler) AppendRoutes(r chi.Router, limit, fieldLimit func(http.Handler) http.Handler) {
	r.Get("/", h.index)
	r.Handle("/static/*", http.FileServer(http.FS(staticFS)))

	r.Group(func(r chi.Router) {
		if fieldLimit != nil {
			r.Use(fieldLimit)
		}
		r.Post("/form/field", h.changeField)
	})

	r.Group(func(r chi.Router) {
		if limit != nil {
			r.Use(limit)
		}
		r.Post("/form/open", h.openForm)
		r.Post("/form/cancel", h.cancelForm)
		r.Post("/cards", h.addCard)
		r.Post("/cards/{id}/activate", h.activate)
		r.Post("/cards/{id}/delete", h.delete)
	})
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	if err := h.methods.EnsureLoaded(r.Context()); err != nil {
		h.logger.Warn("Initial payment method load failed", zap.Error(err))
	}
	h.render(w, http.StatusOK)
	h.methods.ClearMessages()
}

func (h *Handler) openForm(w http.ResponseWriter, r *http.Request) {
	h.form.Open()
	redirectHome(w, r)
}

// cancelForm keeps whatever the browser posted so a page without scripts
// does not lose the draft
func (h *Handler) cancelForm(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	for _, field := range draftFields {
		if _, posted := r.PostForm[string(field)]; !posted {
			continue
		}
		if _, err := h.form.Change(field, r.PostFormValue(string(field))); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	h.form.Cancel()
	redirectHome(w, r)
}

// changeField validates a single keystroke and answers with JSON
func (h *Handler) changeField(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}

	result, err := h.form.Change(validation.Field(r.PostFormValue("field")), r.PostFormValue("value"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	_ = encoding.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) addCard(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}

	for _, field := range draftFields {
		if _, err := h.form.Change(field, r.PostFormValue(string(field))); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	err := h.form.Submit(r.Context())
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrValidationFailed):
		h.render(w, http.StatusUnprocessableEntity)
		return
	default:
		h.logger.Warn("Add card failed", zap.Error(err))
	}
	redirectHome(w, r)
}

func (h *Handler) activate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.methods.SetActive(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrPMNotFound) {
			http.Error(w, domain.ErrPMNotFound.Message, http.StatusNotFound)
			return
		}
		h.logger.Warn("Activate failed", zap.String("payment_method_id", id), zap.Error(err))
	}
	redirectHome(w, r)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.methods.Delete(r.Context(), id); err != nil && !errors.Is(err, domain.ErrLastPaymentMethod) {
		h.logger.Warn("Delete failed", zap.String("payment_method_id", id), zap.Error(err))
	}
	redirectHome(w, r)
}

func (h *Handler) render(w http.ResponseWriter, status int) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, newPageView(h.methods.State(), h.form.Snapshot())); err != nil {
		h.logger.Error("Failed to render console", zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func parseForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// redirectHome finishes a POST with a 303 so a reload does not repeat it
func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
