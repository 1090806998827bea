package handler

import (
	"encoding/json"
	"net/http"

	"examdesk/internal/teachers/service"
	httputil "examdesk/pkg/http"
	"examdesk/pkg/logger"
	"examdesk/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type TeacherHandler struct {
	service service.TeacherService
	log     *logger.Logger
}

func NewTeacherHandler(service service.TeacherService, log *logger.Logger) *TeacherHandler {
	return &TeacherHandler{
		service: service,
		log:     log,
	}
}

func (h *TeacherHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var teacher model.Teacher
	if err := json.NewDecoder(r.Body).Decode(&teacher); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &teacher); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, teacher); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *TeacherHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	teacher, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, teacher); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

func (h *TeacherHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "error", writeErr)
		}
		return
	}

	teachers, total, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, teachers, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "error", err)
	}
}

func (h *TeacherHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.TeacherUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Update", "error", writeErr)
		}
		return
	}

	if err := h.service.Update(r.Context(), ps.ByName("id"), &updates); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *TeacherHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *TeacherHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/teachers", h.Create)
	router.GET("/api/v1/teachers", h.GetAll)
	router.GET("/api/v1/teachers/id/:id", h.GetByID)
	router.PATCH("/api/v1/teachers/id/:id", h.Update)
	router.DELETE("/api/v1/teachers/id/:id", h.Delete)
}
