package sector

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/registroos/registro-os/internal/transport"
)

type ServiceAPI interface {
	GetAll() ([]*Sector, error)
	GetByID(id int64) (*Sector, error)
	Create(name, department string) (*Sector, error)
	Deactivate(id int64) (*Sector, error)
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

func (h *Handler) GetSectors(w http.ResponseWriter, r *http.Request) {
	sectors, err := h.Service.GetAll()
	if err != nil {
		h.Logger.Error("GetSectors: failed to list sectors", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"sectors": sectors})
}

type createSectorRequest struct {
	Name       string `json:"name"`
	Department string `json:"department"`
}

func (h *Handler) CreateSector(w http.ResponseWriter, r *http.Request) {
	var req createSectorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sec, err := h.Service.Create(req.Name, req.Department)
	if err != nil {
		h.Logger.Error("CreateSector: service error", "error", err, "name", req.Name)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, sec)
}

func (h *Handler) DeactivateSector(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid sector ID")
		return
	}

	sec, err := h.Service.Deactivate(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, sec)
}
