package serviceorder

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/registroos/registro-os/internal/transport"
)

type ServiceAPI interface {
	Create(dto CreateOrderDTO) (*ServiceOrder, error)
	GetByID(id int64) (*ServiceOrder, error)
	GetAll(limit, offset int) ([]*ServiceOrder, error)
}

type RefresherAPI interface {
	RefreshOrder(ctx context.Context, id int64) (*ServiceOrder, error)
}

type Handler struct {
	*transport.BaseHandler
	Service   ServiceAPI
	Refresher RefresherAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI, refresher RefresherAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
		Refresher:   refresher,
	}
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var dto CreateOrderDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.Service.Create(dto)
	if err != nil {
		h.Logger.Error("CreateOrder: service error", "error", err, "number", dto.Number)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, order)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	order, err := h.Service.GetByID(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, order)
}

func (h *Handler) GetOrders(w http.ResponseWriter, r *http.Request) {
	limit := 20
	offset := 0

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	orders, err := h.Service.GetAll(limit, offset)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"orders": orders,
		"limit":  limit,
		"offset": offset,
	})
}

// RefreshOrder asks the portal for a fresh snapshot of the order and applies
// it. Gated to planning roles by the router.
func (h *Handler) RefreshOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	order, err := h.Refresher.RefreshOrder(r.Context(), id)
	if err != nil {
		h.Logger.Error("RefreshOrder: refresh failed", "error", err, "order_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, order)
}
