package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/registroos/registro-os/internal/transport"
)

type ServiceAPI interface {
	ListByKind(kind Kind) ([]*Item, error)
	Create(kind Kind, code, description string) (*Item, error)
	Update(id int64, description string) (*Item, error)
	Deactivate(id int64) error
	IsValidFailureCause(code string) bool
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	kind := ParseKind(chi.URLParam(r, "kind"))

	items, err := h.Service.ListByKind(kind)
	if err != nil {
		h.Logger.Error("ListItems: service error", "error", err, "kind", kind)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"kind":  kind,
		"items": items,
	})
}

type createItemRequest struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	kind := ParseKind(chi.URLParam(r, "kind"))

	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.Service.Create(kind, req.Code, req.Description)
	if err != nil {
		h.Logger.Error("CreateItem: service error", "error", err, "kind", kind, "code", req.Code)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, item)
}

type updateItemRequest struct {
	Description string `json:"description"`
}

func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid item ID")
		return
	}

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.Service.Update(id, req.Description)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid item ID")
		return
	}

	if err := h.Service.Deactivate(id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "item desativado"})
}
