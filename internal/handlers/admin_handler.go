package handlers

import (
	"log/slog"
	"net/http"

	"seatwell/internal/services"
	"seatwell/models"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type AdminHandler struct {
	adminService   *services.AdminService
	contactService *services.ContactService
	logger         *slog.Logger
}

func NewAdminHandler(adminService *services.AdminService, contactService *services.ContactService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		adminService:   adminService,
		contactService: contactService,
		logger:         logger,
	}
}

// GetStats - GET /api/admin/stats
func (h *AdminHandler) GetStats(e *core.RequestEvent) error {
	return e.JSON(http.StatusOK, h.adminService.Stats(e.Request.Context()))
}

// SubmitContact - POST /api/contact, any well-formed body is accepted
func (h *AdminHandler) SubmitContact(e *core.RequestEvent) error {
	var req models.ContactRequest
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid contact form", err)
	}

	reference, err := h.contactService.Submit(e.Request.Context(), req)
	if err != nil {
		return apiError(h.logger, err, "Contact", "Failed to send message")
	}

	return e.JSON(http.StatusOK, map[string]any{
		"message":   "Message sent successfully",
		"reference": reference,
	})
}
