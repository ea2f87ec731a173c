package announcementshandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/announcement"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
)

type Handler struct {
	Announcements *announcement.Service
}

func NewHandler(svc *announcement.Service) *Handler {
	return &Handler{Announcements: svc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/announcements", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.With(middleware.AdminOnly).Post("/", h.handleCreate)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	announcements, err := h.Announcements.List(r.Context())
	if err != nil {
		slog.Error("announcement list failed", "err", err)
		api.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	api.JSON(w, http.StatusOK, announcements)
}

type createRequest struct {
	Type    string `json:"type"`
	Content string `json:"content"`
	Color   string `json:"color"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload createRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if payload.Type == "" || payload.Content == "" {
		api.Error(w, http.StatusBadRequest, "Type and content are required")
		return
	}

	created, err := h.Announcements.Create(r.Context(), announcement.Announcement{
		Type:    payload.Type,
		Content: payload.Content,
		Color:   payload.Color,
	})
	if err != nil {
		slog.Error("announcement create failed", "err", err)
		api.Error(w, http.StatusInternalServerError, "Server error")
		return
	}
	api.JSON(w, http.StatusCreated, created)
}
