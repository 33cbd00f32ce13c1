// Package storeapi serves the payment-method store wire API over any
// ports.PaymentMethodStore.
package storeapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kevin07696/card-wallet/internal/adapters/paystore"
	"github.com/kevin07696/card-wallet/internal/adapters/ports"
	"github.com/kevin07696/card-wallet/internal/domain"
	"github.com/kevin07696/card-wallet/pkg/encoding"
)

// maxBodyBytes bounds a single record payload
const maxBodyBytes = 64 << 10

// Handler exposes list/create/update/delete under paystore.ResourcePath
type Handler struct {
	store  ports.PaymentMethodStore
	logger *zap.Logger
}

// NewHandler creates a new store API handler
func NewHandler(store ports.PaymentMethodStore, logger *zap.Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger,
	}
}

// AppendRoutes mounts the wire API on r
func (h *Handler) AppendRoutes(r chi.Router) {
	r.Route(paystore.ResourcePath, func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	methods, err := h.store.List(r.Context())
	if err != nil {
		h.fail(w, "list", err)
		return
	}
	writeJSON(w, http.StatusOK, methods)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	pm, ok := decodeRecord(w, r)
	if !ok {
		return
	}

	result, err := h.store.Create(r.Context(), pm)
	if err != nil {
		h.fail(w, "create", err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	pm, ok := decodeRecord(w, r)
	if !ok {
		return
	}

	result, err := h.store.Update(r.Context(), id, pm)
	if err != nil {
		h.fail(w, "update", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.store.Delete(r.Context(), id)
	if err != nil {
		h.fail(w, "delete", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func decodeRecord(w http.ResponseWriter, r *http.Request) (domain.PaymentMethod, bool) {
	var pm domain.PaymentMethod
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&pm); err != nil {
		http.Error(w, "invalid payment method: "+err.Error(), http.StatusBadRequest)
		return pm, false
	}
	return pm, true
}

func (h *Handler) fail(w http.ResponseWriter, operation string, err error) {
	if errors.Is(err, domain.ErrPMNotFound) {
		http.Error(w, domain.ErrPMNotFound.Message, http.StatusNotFound)
		return
	}
	h.logger.Error("Store operation failed",
		zap.String("operation", operation),
		zap.Error(err),
	)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	_ = encoding.WriteJSON(w, status, v)
}
