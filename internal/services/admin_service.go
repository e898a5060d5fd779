package services

import (
	"context"

	"seatwell/internal/store"
	"seatwell/models"
)

type AdminService struct {
	store    *store.Store
	currency string
}

func NewAdminService(s *store.Store, currency string) *AdminService {
	if currency == "" {
		currency = models.DefaultCurrency
	}
	return &AdminService{store: s, currency: currency}
}

// Stats summarizes the marketplace for the admin dashboard. Revenue is the
// sum of all transaction amounts.
func (s *AdminService) Stats(ctx context.Context) models.Stats {
	c := s.store.Counts()
	return models.Stats{
		Users:             c.Users,
		Games:             c.Games,
		Tickets:           c.Tickets,
		ActiveListings:    c.TicketsByStatus[models.TicketAvailable],
		SoldTickets:       c.TicketsByStatus[models.TicketSold],
		TotalTransactions: c.Transactions,
		TotalRevenue:      c.TransactionTotal,
		RevenueFormatted:  models.FormatCents(c.TransactionTotal, s.currency),
	}
}
