package reportshandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/employee"
	"hrms/internal/domain/report"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
)

const minReportLength = 10

type Handler struct {
	Reports   *report.Service
	Employees *employee.Service
}

func NewHandler(reports *report.Service, employees *employee.Service) *Handler {
	return &Handler{Reports: reports, Employees: employees}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Get("/", h.handleList)
		r.Get("/my-reports", h.handleMyReports)
	})
}

type createRequest struct {
	Date            string `json:"date"`
	Department      string `json:"department"`
	MorningReport   string `json:"morningReport"`
	AfternoonReport string `json:"afternoonReport"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var payload createRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.Date == "" || payload.MorningReport == "" || payload.AfternoonReport == "" {
		api.Error(w, http.StatusBadRequest, "All fields are required")
		return
	}
	if utf8.RuneCountInString(payload.MorningReport) < minReportLength ||
		utf8.RuneCountInString(payload.AfternoonReport) < minReportLength {
		api.Error(w, http.StatusBadRequest, "Reports must be at least 10 characters long")
		return
	}

	input := report.Report{
		EmployeeID:      user.UserID,
		Date:            payload.Date,
		Department:      payload.Department,
		MorningReport:   payload.MorningReport,
		AfternoonReport: payload.AfternoonReport,
	}

	if user.UserID == 0 && auth.IsAdminRole(user.Role) {
		input.EmployeeName = "Admin"
		input.Role = "admin"
	} else {
		emp, err := h.Employees.Get(r.Context(), user.UserID)
		if errors.Is(err, employee.ErrNotFound) {
			api.Error(w, http.StatusNotFound, "Employee not found")
			return
		}
		if err != nil {
			slog.Error("report author lookup failed", "employeeId", user.UserID, "err", err)
			api.Error(w, http.StatusInternalServerError, "Server error")
			return
		}
		input.EmployeeName = emp.Name
		input.Role = emp.Role
		if input.Department == "" {
			input.Department = emp.Department
		}
	}

	created, err := h.Reports.Create(r.Context(), input)
	if err != nil {
		slog.Error("report create failed", "employeeId", user.UserID, "err", err)
		api.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	api.JSON(w, http.StatusCreated, map[string]any{
		"message": "Daily report submitted successfully",
		"report":  created,
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reports, err := h.Reports.List(r.Context())
	if err != nil {
		slog.Error("report list failed", "err", err)
		api.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	api.JSON(w, http.StatusOK, reports)
}

func (h *Handler) handleMyReports(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	reports, err := h.Reports.ByEmployee(r.Context(), user.UserID)
	if err != nil {
		slog.Error("report lookup failed", "employeeId", user.UserID, "err", err)
		api.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	api.JSON(w, http.StatusOK, reports)
}
