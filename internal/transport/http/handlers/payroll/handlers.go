package payrollhandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/payroll"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
)

type Handler struct {
	Payroll *payroll.Service
}

func NewHandler(svc *payroll.Service) *Handler {
	return &Handler{Payroll: svc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.With(middleware.AdminOnly).Post("/generate", h.handleGenerate)
		r.With(middleware.AdminOnly).Put("/{id}", h.handleUpdate)
		r.Get("/employee/{employeeId}", h.handleByEmployee)
		r.Get("/{id}/payslip", h.handlePayslip)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	records, err := h.Payroll.List(r.Context())
	if err != nil {
		slog.Error("payroll list failed", "err", err)
		api.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	api.JSON(w, http.StatusOK, records)
}

type generateRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var payload generateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	created, err := h.Payroll.Generate(r.Context(), payload.Month, payload.Year)
	if err != nil {
		slog.Error("payroll generate failed", "month", payload.Month, "year", payload.Year, "err", err)
		api.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	api.JSON(w, http.StatusOK, map[string]any{
		"message": "Payroll generated successfully",
		"created": created,
	})
}

// flexNumber tolerates numbers arriving as JSON numbers or numeric
// strings. Missing fields stay zero; garbage becomes NaN so the service
// can refuse it.
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	text := strings.TrimSpace(string(data))
	if text == "null" || text == `""` {
		*n = 0
		return nil
	}
	text = strings.Trim(text, `"`)
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		*n = flexNumber(math.NaN())
		return nil
	}
	*n = flexNumber(value)
	return nil
}

type updateRequest struct {
	BaseSalary flexNumber `json:"base_salary"`
	Allowances flexNumber `json:"allowances"`
	Deductions flexNumber `json:"deductions"`
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid payroll ID")
		return
	}

	var payload updateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	record, err := h.Payroll.UpdateAmounts(r.Context(), id,
		float64(payload.BaseSalary), float64(payload.Allowances), float64(payload.Deductions))
	switch {
	case errors.Is(err, payroll.ErrInvalidAmounts):
		api.Error(w, http.StatusBadRequest, "Invalid salary values provided")
		return
	case errors.Is(err, payroll.ErrNotFound):
		api.Error(w, http.StatusNotFound, fmt.Sprintf("Payroll record with ID %d not found", id))
		return
	case err != nil:
		slog.Error("payroll update failed", "id", id, "err", err)
		api.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	api.JSON(w, http.StatusOK, map[string]any{
		"message": "Payroll updated successfully",
		"record":  record,
	})
}

func (h *Handler) handleByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID, err := strconv.Atoi(chi.URLParam(r, "employeeId"))
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid employee ID")
		return
	}

	records, err := h.Payroll.ByEmployee(r.Context(), employeeID)
	if err != nil {
		slog.Error("payroll lookup failed", "employeeId", employeeID, "err", err)
		api.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	api.JSON(w, http.StatusOK, records)
}

// handlePayslip renders one record as a PDF. Admins can fetch any
// payslip; everyone else only their own.
func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid payroll ID")
		return
	}

	record, err := h.Payroll.Get(r.Context(), id)
	if errors.Is(err, payroll.ErrNotFound) {
		api.Error(w, http.StatusNotFound, fmt.Sprintf("Payroll record with ID %d not found", id))
		return
	}
	if err != nil {
		slog.Error("payslip lookup failed", "id", id, "err", err)
		api.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	if !auth.IsAdminRole(user.Role) && user.UserID != record.EmployeeID {
		api.Error(w, http.StatusForbidden, "Access denied: You can only download your own payslip")
		return
	}

	name, err := h.Payroll.EmployeeName(r.Context(), record.EmployeeID)
	if err != nil {
		slog.Error("payslip name lookup failed", "id", id, "err", err)
		api.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	pdf, err := payroll.Payslip(record, name)
	if err != nil {
		slog.Error("payslip render failed", "id", id, "err", err)
		api.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=payslip-%d-%02d-%d.pdf", record.EmployeeID, record.Month, record.Year))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
