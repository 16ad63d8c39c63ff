package handler

import (
	"net/http"
	"strconv"

	"rhea-commerce/internal/service"

	"github.com/rs/zerolog"
)

// AdminHandler handles dashboard HTTP requests.
type AdminHandler struct {
	admin  service.AdminService
	users  service.UserService
	logger zerolog.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(admin service.AdminService, users service.UserService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		admin:  admin,
		users:  users,
		logger: logger.With().Str("handler", "admin").Logger(),
	}
}

// Stats handles GET /api/admin/stats requests.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.admin.Stats(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// ListUsers handles GET /api/admin/users requests with pagination.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	users, err := h.users.List(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, users)
}
