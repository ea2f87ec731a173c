package employeeshandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/employee"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
)

type Handler struct {
	Employees *employee.Service
}

func NewHandler(employees *employee.Service) *Handler {
	return &Handler{Employees: employees}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Get("/{id}", h.handleGet)
		r.With(middleware.AdminOnly).Post("/", h.handleCreate)
		r.With(middleware.AdminOrSelf("id")).Put("/{id}", h.handleUpdate)
		r.With(middleware.AdminOnly).Delete("/{id}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Employees.List(r.Context())
	if err != nil {
		slog.Error("employee list failed", "err", err)
		api.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	api.JSON(w, http.StatusOK, employees)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid employee ID")
		return
	}

	emp, err := h.Employees.Get(r.Context(), id)
	if errors.Is(err, employee.ErrNotFound) {
		api.Error(w, http.StatusNotFound, "Employee not found")
		return
	}
	if err != nil {
		slog.Error("employee get failed", "id", id, "err", err)
		api.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	api.JSON(w, http.StatusOK, emp)
}

type createRequest struct {
	employee.Employee
	Password string `json:"password"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload createRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	id, err := h.Employees.Create(r.Context(), payload.Employee, payload.Password)
	switch {
	case errors.Is(err, employee.ErrDuplicate):
		api.Error(w, http.StatusBadRequest, "User with this email or username already exists")
		return
	case errors.Is(err, employee.ErrInvalidPhone):
		api.Error(w, http.StatusBadRequest, "Phone number must be exactly 10 digits")
		return
	case errors.Is(err, employee.ErrInvalidPersonalPhone):
		api.Error(w, http.StatusBadRequest, "Personal phone number must be exactly 10 digits")
		return
	case err != nil:
		slog.Error("employee create failed", "err", err)
		api.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	api.JSON(w, http.StatusCreated, map[string]any{
		"id":      id,
		"message": "Employee created successfully",
	})
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid employee ID")
		return
	}

	var patch map[string]any
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, _ := middleware.GetUser(r.Context())
	isAdmin := user != nil && auth.IsAdminRole(user.Role)

	err = h.Employees.Update(r.Context(), id, patch, isAdmin)
	var restricted *employee.RestrictedFieldsError
	switch {
	case errors.Is(err, employee.ErrNotFound):
		api.Error(w, http.StatusNotFound, "Employee not found")
		return
	case errors.As(err, &restricted):
		api.Error(w, http.StatusForbidden, "You are not allowed to update: "+restricted.Joined())
		return
	case errors.Is(err, employee.ErrInvalidPhone):
		api.Error(w, http.StatusBadRequest, "Phone number must be exactly 10 digits")
		return
	case errors.Is(err, employee.ErrInvalidPersonalPhone):
		api.Error(w, http.StatusBadRequest, "Personal phone number must be exactly 10 digits")
		return
	case errors.Is(err, employee.ErrInvalidPatch):
		api.Error(w, http.StatusBadRequest, "Invalid request payload")
		return
	case err != nil:
		slog.Error("employee update failed", "id", id, "err", err)
		api.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	api.JSON(w, http.StatusOK, map[string]string{"message": "Employee updated successfully"})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid employee ID")
		return
	}

	err = h.Employees.Delete(r.Context(), id)
	if errors.Is(err, employee.ErrNotFound) {
		api.Error(w, http.StatusNotFound, "Employee not found")
		return
	}
	if err != nil {
		slog.Error("employee delete failed", "id", id, "err", err)
		api.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	api.JSON(w, http.StatusOK, map[string]string{"message": "Employee deleted successfully"})
}
