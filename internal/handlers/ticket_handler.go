package handlers

import (
	"log/slog"
	"net/http"

	"seatwell/internal/services"
	"seatwell/models"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type TicketHandler struct {
	ticketService *services.TicketService
	logger        *slog.Logger
}

func NewTicketHandler(ticketService *services.TicketService, logger *slog.Logger) *TicketHandler {
	return &TicketHandler{
		ticketService: ticketService,
		logger:        logger,
	}
}

// ListTickets - GET /api/tickets
func (h *TicketHandler) ListTickets(e *core.RequestEvent) error {
	return e.JSON(http.StatusOK, h.ticketService.List(e.Request.Context()))
}

// GetTicket - GET /api/tickets/{id}
func (h *TicketHandler) GetTicket(e *core.RequestEvent) error {
	id, ok := pathID(e, "id")
	if !ok {
		return apis.NewNotFoundError("Ticket not found", nil)
	}

	ticket, err := h.ticketService.Get(e.Request.Context(), id)
	if err != nil {
		return apiError(h.logger, err, "Ticket", "Failed to fetch ticket")
	}

	return e.JSON(http.StatusOK, ticket)
}

// TicketsByGame - GET /api/tickets/game/{gameId}, an unknown game yields an empty list
func (h *TicketHandler) TicketsByGame(e *core.RequestEvent) error {
	gameID, _ := pathID(e, "gameId")
	return e.JSON(http.StatusOK, h.ticketService.ByGame(e.Request.Context(), gameID))
}

// TicketsBySeller - GET /api/tickets/seller/{sellerId}
func (h *TicketHandler) TicketsBySeller(e *core.RequestEvent) error {
	sellerID, _ := pathID(e, "sellerId")
	return e.JSON(http.StatusOK, h.ticketService.BySeller(e.Request.Context(), sellerID))
}

// CreateTicket - POST /api/tickets
func (h *TicketHandler) CreateTicket(e *core.RequestEvent) error {
	var req models.CreateTicketRequest
	if err := bindAndValidate(e, &req, "Invalid ticket data"); err != nil {
		return err
	}

	ticket, err := h.ticketService.Create(e.Request.Context(), req)
	if err != nil {
		return apiError(h.logger, err, "Ticket", "Failed to create ticket")
	}

	return e.JSON(http.StatusCreated, ticket)
}

// UpdateTicket - PATCH /api/tickets/{id}
func (h *TicketHandler) UpdateTicket(e *core.RequestEvent) error {
	id, ok := pathID(e, "id")
	if !ok {
		return apis.NewNotFoundError("Ticket not found", nil)
	}

	var patch models.TicketPatch
	if err := bindAndValidate(e, &patch, "Invalid ticket data"); err != nil {
		return err
	}

	ticket, err := h.ticketService.Update(e.Request.Context(), id, patch)
	if err != nil {
		return apiError(h.logger, err, "Ticket", "Failed to update ticket")
	}

	return e.JSON(http.StatusOK, ticket)
}

// PurchaseTicket - POST /api/tickets/{id}/purchase
func (h *TicketHandler) PurchaseTicket(e *core.RequestEvent) error {
	id, ok := pathID(e, "id")
	if !ok {
		return apis.NewNotFoundError("Ticket not found", nil)
	}

	var req models.PurchaseRequest
	if err := bindAndValidate(e, &req, "A valid buyerId is required"); err != nil {
		return err
	}

	purchase, err := h.ticketService.Purchase(e.Request.Context(), id, req.BuyerID)
	if err != nil {
		return apiError(h.logger, err, "Ticket", "Failed to purchase ticket")
	}

	return e.JSON(http.StatusOK, purchase)
}

// HoldTicket - POST /api/tickets/{id}/hold
func (h *TicketHandler) HoldTicket(e *core.RequestEvent) error {
	id, ok := pathID(e, "id")
	if !ok {
		return apis.NewNotFoundError("Ticket not found", nil)
	}

	var req models.PurchaseRequest
	if err := bindAndValidate(e, &req, "A valid buyerId is required"); err != nil {
		return err
	}

	hold, err := h.ticketService.Hold(e.Request.Context(), id, req.BuyerID)
	if err != nil {
		return apiError(h.logger, err, "Ticket", "Failed to hold ticket")
	}

	return e.JSON(http.StatusOK, hold)
}

// ReleaseTicket - DELETE /api/tickets/{id}/hold
func (h *TicketHandler) ReleaseTicket(e *core.RequestEvent) error {
	id, ok := pathID(e, "id")
	if !ok {
		return apis.NewNotFoundError("Ticket not found", nil)
	}

	var req models.PurchaseRequest
	if err := bindAndValidate(e, &req, "A valid buyerId is required"); err != nil {
		return err
	}

	if err := h.ticketService.Release(e.Request.Context(), id, req.BuyerID); err != nil {
		return apiError(h.logger, err, "Ticket", "Failed to release ticket")
	}

	return e.NoContent(http.StatusNoContent)
}
