package attendancehandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/attendance"
	"hrms/internal/transport/http/api"
)

type Handler struct {
	Attendance *attendance.Service
}

func NewHandler(svc *attendance.Service) *Handler {
	return &Handler{Attendance: svc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/attendance", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/checkin", h.handleCheckIn)
		r.Post("/checkout", h.handleCheckOut)
		r.Get("/employee/{employeeId}", h.handleByEmployee)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	records, err := h.Attendance.List(r.Context())
	if err != nil {
		slog.Error("attendance list failed", "err", err)
		api.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	api.JSON(w, http.StatusOK, records)
}

type clockRequest struct {
	EmployeeID int `json:"employee_id"`
}

func (h *Handler) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	var payload clockRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	record, err := h.Attendance.CheckIn(r.Context(), payload.EmployeeID)
	if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
		api.Error(w, http.StatusConflict, "Already clocked in today")
		return
	}
	if err != nil {
		slog.Error("check-in failed", "employeeId", payload.EmployeeID, "err", err)
		api.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	api.JSON(w, http.StatusOK, map[string]string{
		"message": "Clocked in successfully",
		"time":    record.CheckIn,
	})
}

func (h *Handler) handleCheckOut(w http.ResponseWriter, r *http.Request) {
	var payload clockRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	record, err := h.Attendance.CheckOut(r.Context(), payload.EmployeeID)
	switch {
	case errors.Is(err, attendance.ErrNoCheckIn):
		api.Error(w, http.StatusBadRequest, "No clock-in record found for today")
		return
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		api.Error(w, http.StatusConflict, "Already clocked out today")
		return
	case err != nil:
		slog.Error("check-out failed", "employeeId", payload.EmployeeID, "err", err)
		api.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	api.JSON(w, http.StatusOK, map[string]string{
		"message": "Clocked out successfully",
		"time":    record.CheckOut,
	})
}

func (h *Handler) handleByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, err := strconv.Atoi(chi.URLParam(r, "employeeId"))
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid employee ID")
		return
	}

	records, err := h.Attendance.ByEmployee(r.Context(), employeeID)
	if err != nil {
		slog.Error("attendance lookup failed", "employeeId", employeeID, "err", err)
		api.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	api.JSON(w, http.StatusOK, records)
}
