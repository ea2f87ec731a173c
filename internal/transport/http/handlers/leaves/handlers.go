package leaveshandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/leave"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
)

type Handler struct {
	Leaves *leave.Service
}

func NewHandler(svc *leave.Service) *Handler {
	return &Handler{Leaves: svc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leaves", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.With(middleware.AdminOnly).Put("/{id}", h.handleUpdateStatus)
		r.Get("/employee/{employeeId}", h.handleByEmployee)
	})
}

// applyRequest accepts both spellings the clients send; camelCase wins
// when both are present.
type applyRequest struct {
	EmployeeID      *int    `json:"employeeId"`
	EmployeeIDSnake *int    `json:"employee_id"`
	LeaveType       string  `json:"leaveType"`
	LeaveTypeSnake  string  `json:"leave_type"`
	StartDate       string  `json:"startDate"`
	StartDateSnake  string  `json:"start_date"`
	EndDate         string  `json:"endDate"`
	EndDateSnake    string  `json:"end_date"`
	Days            float64 `json:"days"`
	Reason          string  `json:"reason"`
}

func (req applyRequest) toLeave() leave.Leave {
	pick := func(camel, snake string) string {
		if camel != "" {
			return camel
		}
		return snake
	}
	out := leave.Leave{
		LeaveType: pick(req.LeaveType, req.LeaveTypeSnake),
		StartDate: pick(req.StartDate, req.StartDateSnake),
		EndDate:   pick(req.EndDate, req.EndDateSnake),
		Days:      req.Days,
		Reason:    req.Reason,
	}
	switch {
	case req.EmployeeID != nil:
		out.EmployeeID = *req.EmployeeID
	case req.EmployeeIDSnake != nil:
		out.EmployeeID = *req.EmployeeIDSnake
	}
	return out
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload applyRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	created, err := h.Leaves.Create(r.Context(), payload.toLeave())
	if err != nil {
		slog.Error("leave create failed", "err", err)
		api.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	api.JSON(w, http.StatusCreated, map[string]any{
		"message": "Leave request submitted successfully",
		"leave":   created,
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	leaves, err := h.Leaves.List(r.Context())
	if err != nil {
		slog.Error("leave list failed", "err", err)
		api.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	api.JSON(w, http.StatusOK, leaves)
}

type statusRequest struct {
	Status     string `json:"status"`
	ApprovedBy int    `json:"approved_by"`
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid leave ID")
		return
	}

	var payload statusRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	updated, err := h.Leaves.UpdateStatus(r.Context(), id, payload.Status, payload.ApprovedBy)
	if errors.Is(err, leave.ErrNotFound) {
		api.Error(w, http.StatusNotFound, "Leave not found")
		return
	}
	if err != nil {
		slog.Error("leave status update failed", "id", id, "err", err)
		api.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	api.JSON(w, http.StatusOK, map[string]any{
		"message": "Leave status updated successfully",
		"leave":   updated,
	})
}

func (h *Handler) handleByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, err := strconv.Atoi(chi.URLParam(r, "employeeId"))
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid employee ID")
		return
	}

	leaves, err := h.Leaves.ByEmployee(r.Context(), employeeID)
	if err != nil {
		slog.Error("leave lookup failed", "employeeId", employeeID, "err", err)
		api.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	api.JSON(w, http.StatusOK, leaves)
}
