package authhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/employee"
	"hrms/internal/domain/registration"
	"hrms/internal/platform/store"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
)

type Handler struct {
	Store         *store.Store
	Registrations *registration.Service
	Secret        string
	AdminEmail    string
	AdminPassword string
}

func NewHandler(s *store.Store, registrations *registration.Service, secret, adminEmail, adminPassword string) *Handler {
	return &Handler{
		Store:         s,
		Registrations: registrations,
		Secret:        secret,
		AdminEmail:    adminEmail,
		AdminPassword: adminPassword,
	}
}

// RegisterRoutes mounts the public login/register endpoints and the
// authenticated registration-approval endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.HandleLogin)
		r.Post("/register", h.HandleRegister)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(h.Secret))
			r.Get("/me", h.handleMe)
			r.Get("/pending", h.handlePending)
			r.Post("/approve", h.handleApprove)
			r.Post("/reject", h.handleReject)
		})
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	email := strings.ToLower(payload.Email)
	role := auth.NormalizeRole(payload.Role)

	// Bootstrap admin bypasses the employee collection entirely.
	if role == "admin" && (email == h.AdminEmail || email == "admin") && payload.Password == h.AdminPassword {
		token, err := auth.GenerateToken(h.Secret, auth.Claims{UserID: 0, Email: email, Role: "admin"}, auth.TokenTTL)
		if err != nil {
			slog.Error("token issue failed", "err", err)
			api.Error(w, http.StatusInternalServerError, "Server error")
			return
		}
		api.JSON(w, http.StatusOK, map[string]any{
			"token": token,
			"role":  "admin",
			"user":  map[string]any{"email": email, "name": "Admin"},
		})
		return
	}

	employees, err := store.Load[employee.Employee](h.Store, employee.Collection)
	if err != nil {
		slog.Error("login employee load failed", "err", err)
		api.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	var user *employee.Employee
	for i, emp := range employees {
		if emp.Email == email || (emp.Username != "" && emp.Username == payload.Email) {
			user = &employees[i]
			break
		}
	}
	if user == nil {
		api.Error(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if role == "admin" && !auth.IsAdminRole(user.Role) {
		api.Error(w, http.StatusUnauthorized, "Access denied: Admins only")
		return
	}

	if user.PasswordHash == "" || auth.CheckPassword(user.PasswordHash, payload.Password) != nil {
		api.Error(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	userRole := user.Role
	if userRole == "" {
		userRole = "employee"
	}
	token, err := auth.GenerateToken(h.Secret, auth.Claims{UserID: user.ID, Email: user.Email, Role: userRole}, auth.TokenTTL)
	if err != nil {
		slog.Error("token issue failed", "err", err)
		api.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	api.JSON(w, http.StatusOK, map[string]any{
		"token": token,
		"role":  userRole,
		"user": map[string]any{
			"id":     user.ID,
			"name":   user.Name,
			"email":  user.Email,
			"role":   userRole,
			"avatar": user.Avatar,
		},
	})
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var payload registerRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.Name == "" || payload.Email == "" || payload.Password == "" {
		api.Error(w, http.StatusBadRequest, "All fields are required")
		return
	}

	_, err := h.Registrations.Register(r.Context(), payload.Name, payload.Email, payload.Password, payload.Role)
	switch {
	case errors.Is(err, registration.ErrUserExists):
		api.Error(w, http.StatusBadRequest, "User already exists")
		return
	case errors.Is(err, registration.ErrAlreadyPending):
		api.Error(w, http.StatusBadRequest, "Registration request already pending")
		return
	case err != nil:
		slog.Error("registration failed", "err", err)
		api.Error(w, http.StatusInternalServerError, "Server error during registration")
		return
	}

	api.JSON(w, http.StatusOK, map[string]string{
		"message": "Registration successful. Please wait for admin approval.",
		"status":  employee.StatusPending,
	})
}

func (h *Handler) handlePending(w http.ResponseWriter, r *http.Request) {
	pending, err := h.Registrations.Pending(r.Context())
	if err != nil {
		slog.Error("pending registrations load failed", "err", err)
		api.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	api.JSON(w, http.StatusOK, pending)
}

type decisionRequest struct {
	ID int `json:"id"`
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	var payload decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	approved, err := h.Registrations.Approve(r.Context(), payload.ID)
	if errors.Is(err, registration.ErrNotFound) {
		api.Error(w, http.StatusNotFound, "Registration request not found")
		return
	}
	if err != nil {
		slog.Error("registration approve failed", "id", payload.ID, "err", err)
		api.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	api.JSON(w, http.StatusOK, map[string]any{
		"message": "Registration approved successfully",
		"user":    approved.Sanitized(),
	})
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	var payload decisionRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	err := h.Registrations.Reject(r.Context(), payload.ID)
	if errors.Is(err, registration.ErrNotFound) {
		api.Error(w, http.StatusNotFound, "Registration request not found")
		return
	}
	if err != nil {
		slog.Error("registration reject failed", "id", payload.ID, "err", err)
		api.Error(w, http.StatusInternalServerError, "Server error")
		return
	}

	api.JSON(w, http.StatusOK, map[string]string{"message": "Registration rejected successfully"})
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	if user.UserID == 0 && auth.NormalizeRole(user.Role) == "admin" {
		api.JSON(w, http.StatusOK, map[string]string{"email": h.AdminEmail, "name": "Admin", "role": "admin"})
		return
	}

	employees, err := store.Load[employee.Employee](h.Store, employee.Collection)
	if err != nil {
		slog.Error("me lookup failed", "err", err)
		api.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	for _, emp := range employees {
		if emp.ID == user.UserID {
			api.JSON(w, http.StatusOK, emp.Sanitized())
			return
		}
	}
	api.Error(w, http.StatusNotFound, "User not found")
}
