package orderstore

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/adamacoulibaly/orderdesk/pkg/config"
	pkgerrors "github.com/adamacoulibaly/orderdesk/pkg/errors"
	"github.com/adamacoulibaly/orderdesk/pkg/logger"
)

// Handler exposes the reference order store over HTTP. The wire shapes
// mirror the historical backend, message envelopes included, so the main
// service can be pointed at it without changes.
type Handler struct {
	repo *Repository
	cfg  config.StoreConfig
	logg *logger.Logger
}

func NewHandler(repo *Repository, cfg config.StoreConfig, logg *logger.Logger) *Handler {
	return &Handler{repo: repo, cfg: cfg, logg: logg}
}

// Routes mounts the order CRUD surface under /api.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/health/live", h.live)
	r.Get("/health/ready", h.ready)
	r.Route("/api/orders", func(r chi.Router) {
		r.Get("/", h.listOrders)
		r.Post("/", h.createOrder)
		r.Route("/{orderID}", func(r chi.Router) {
			r.Get("/", h.getOrder)
			r.Put("/", h.updateOrder)
			r.Delete("/", h.deleteOrder)
		})
	})
	return r
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	records, err := h.repo.ListOrders(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, renderOrders(records, h.cfg.EmitsLegacy()))
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}
	record, err := h.repo.GetOrder(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, renderOrder(*record, h.cfg.EmitsLegacy()))
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeInput(w, r)
	if !ok {
		return
	}
	created, err := h.repo.CreateOrder(r.Context(), input.toRecord())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, renderOrder(*created, h.cfg.EmitsLegacy()))
}

func (h *Handler) updateOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}
	input, ok := h.decodeInput(w, r)
	if !ok {
		return
	}
	updated, err := h.repo.ReplaceOrder(r.Context(), id, input.toRecord())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, renderOrder(*updated, h.cfg.EmitsLegacy()))
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}
	if err := h.repo.DeleteOrder(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) live(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ready(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Ping(r.Context()); err != nil {
		h.logg.Error(r.Context(), "database unreachable", err)
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) orderID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "orderID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		h.writeJSON(w, http.StatusNotFound, map[string]string{
			"message": "order " + raw + " not found",
		})
		return 0, false
	}
	return id, true
}

// decodeInput reads the tolerant request shape, normalizes it, and runs the
// validation rules, answering the historical 422 envelope on failure.
func (h *Handler) decodeInput(w http.ResponseWriter, r *http.Request) (orderInput, bool) {
	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"message": "The given data was invalid.",
			"errors":  map[string][]string{"body": {"The request body must be valid JSON."}},
		})
		return orderInput{}, false
	}

	input := req.toInput()
	if err := validate.Struct(input); err != nil {
		h.writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"message": "The given data was invalid.",
			"errors":  validationErrors(err),
		})
		return orderInput{}, false
	}
	return input, true
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	e := pkgerrors.As(err)
	if e == nil {
		e = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}
	meta := pkgerrors.MetadataFor(e.Code())
	if meta.HTTPStatus >= http.StatusInternalServerError {
		h.logg.Error(r.Context(), "order store request failed", err)
	}
	h.writeJSON(w, meta.HTTPStatus, map[string]string{"message": e.Message()})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
