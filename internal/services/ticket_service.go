package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"seatwell/internal/status"
	"seatwell/internal/store"
	"seatwell/models"
	"seatwell/monitoring"
)

type TicketService struct {
	store       *store.Store
	holds       *HoldService
	broadcaster *Broadcaster
	monitor     *monitoring.Monitor
	logger      *slog.Logger
}

func NewTicketService(
	s *store.Store,
	holds *HoldService,
	broadcaster *Broadcaster,
	monitor *monitoring.Monitor,
	logger *slog.Logger,
) *TicketService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TicketService{
		store:       s,
		holds:       holds,
		broadcaster: broadcaster,
		monitor:     monitor,
		logger:      logger,
	}
}

func (s *TicketService) List(ctx context.Context) []models.Ticket {
	return s.store.AllTickets()
}

func (s *TicketService) Get(ctx context.Context, id int) (models.Ticket, error) {
	ticket, ok := s.store.GetTicket(id)
	if !ok {
		return models.Ticket{}, fmt.Errorf("ticket %d: %w", id, status.ErrNotFound)
	}
	return ticket, nil
}

func (s *TicketService) ByGame(ctx context.Context, gameID int) []models.Ticket {
	return s.store.TicketsByGame(gameID)
}

func (s *TicketService) BySeller(ctx context.Context, sellerID int) []models.Ticket {
	return s.store.TicketsBySeller(sellerID)
}

// Create lists a ticket for resale. The game must exist.
func (s *TicketService) Create(ctx context.Context, req models.CreateTicketRequest) (models.Ticket, error) {
	if _, ok := s.store.GetGame(req.GameID); !ok {
		return models.Ticket{}, fmt.Errorf("game %d: %w", req.GameID, status.ErrUnknownGame)
	}

	ticket := s.store.CreateTicket(req.Ticket())
	s.monitor.TrackListing()
	s.logger.Info("Ticket listed",
		"ticketID", ticket.ID,
		"gameID", ticket.GameID,
		"sellerID", ticket.SellerID,
		"price", ticket.Price,
	)

	event := NewMarketEvent(EventTicketListed, ticket)
	event.GameID = ticket.GameID
	event.TicketID = ticket.ID
	s.broadcaster.Notify(event, MarketChannel)

	return ticket, nil
}

func (s *TicketService) Update(ctx context.Context, id int, patch models.TicketPatch) (models.Ticket, error) {
	ticket, ok := s.store.UpdateTicket(id, patch)
	if !ok {
		return models.Ticket{}, fmt.Errorf("ticket %d: %w", id, status.ErrNotFound)
	}
	return ticket, nil
}

// Purchase sells an available ticket to buyerID and records a completed
// transaction for its price. A live hold by another buyer blocks the sale.
func (s *TicketService) Purchase(ctx context.Context, id, buyerID int) (models.Purchase, error) {
	start := time.Now()

	if err := s.checkHold(ctx, id, buyerID); err != nil {
		s.monitor.TrackPurchase("held", time.Since(start))
		return models.Purchase{}, err
	}

	ticket, tx, err := s.store.PurchaseTicket(id, buyerID)
	if err != nil {
		s.monitor.TrackPurchase(purchaseOutcome(err), time.Since(start))
		return models.Purchase{}, fmt.Errorf("purchase ticket %d: %w", id, err)
	}
	s.monitor.TrackPurchase("completed", time.Since(start))

	if s.holds.Enabled() {
		if err := s.holds.Release(ctx, id, buyerID); err != nil {
			s.logger.Warn("Failed to release hold after purchase", "ticketID", id, "error", err)
		}
	}

	s.logger.Info("Ticket sold",
		"ticketID", ticket.ID,
		"buyerID", buyerID,
		"sellerID", ticket.SellerID,
		"transactionID", tx.ID,
		"amount", tx.Amount,
	)

	event := NewMarketEvent(EventTicketSold, tx)
	event.GameID = ticket.GameID
	event.TicketID = ticket.ID
	s.broadcaster.Notify(event, MarketChannel, UserChannel(ticket.SellerID))

	return models.Purchase{Ticket: ticket, Transaction: tx}, nil
}

// checkHold fails only when another buyer holds the ticket. A Redis outage
// does not block purchases.
func (s *TicketService) checkHold(ctx context.Context, id, buyerID int) error {
	if !s.holds.Enabled() {
		return nil
	}

	holder, err := s.holds.HolderOf(ctx, id)
	if err != nil {
		s.logger.Warn("Hold lookup failed, continuing purchase", "ticketID", id, "error", err)
		return nil
	}
	if holder != 0 && holder != buyerID {
		return fmt.Errorf("ticket %d: %w", id, status.ErrTicketHeld)
	}
	return nil
}

// Hold reserves an available ticket for buyerID.
func (s *TicketService) Hold(ctx context.Context, id, buyerID int) (models.Hold, error) {
	if !s.holds.Enabled() {
		return models.Hold{}, status.ErrHoldsDisabled
	}

	ticket, err := s.Get(ctx, id)
	if err != nil {
		return models.Hold{}, err
	}
	if !ticket.IsAvailable() {
		s.monitor.TrackHold("hold", "unavailable")
		return models.Hold{}, fmt.Errorf("ticket %d: %w", id, status.ErrTicketNotAvailable)
	}

	hold, err := s.holds.Hold(ctx, id, buyerID)
	if err != nil {
		s.monitor.TrackHold("hold", "rejected")
		return models.Hold{}, err
	}
	s.monitor.TrackHold("hold", "acquired")

	event := NewMarketEvent(EventTicketHeld, hold)
	event.GameID = ticket.GameID
	event.TicketID = ticket.ID
	s.broadcaster.Notify(event, MarketChannel)

	return hold, nil
}

func (s *TicketService) Release(ctx context.Context, id, buyerID int) error {
	if err := s.holds.Release(ctx, id, buyerID); err != nil {
		s.monitor.TrackHold("release", "rejected")
		return err
	}
	s.monitor.TrackHold("release", "released")

	event := NewMarketEvent(EventTicketReleased, nil)
	event.TicketID = id
	s.broadcaster.Notify(event, MarketChannel)
	return nil
}

func purchaseOutcome(err error) string {
	switch {
	case errors.Is(err, status.ErrNotFound):
		return "not_found"
	case errors.Is(err, status.ErrTicketNotAvailable):
		return "unavailable"
	default:
		return "failed"
	}
}
