package models

import "time"

const (
	TransactionPending   = "pending"
	TransactionCompleted = "completed"
	TransactionFailed    = "failed"
)

type Transaction struct {
	ID        int       `json:"id"`
	TicketID  int       `json:"ticketId"`
	BuyerID   int       `json:"buyerId"`
	SellerID  int       `json:"sellerId"`
	Amount    int64     `json:"amount"` // cents
	Status    string    `json:"status"` // pending, completed, failed
	CreatedAt time.Time `json:"createdAt"`
}

// Purchase is the result of buying a listing.
type Purchase struct {
	Ticket      Ticket      `json:"ticket"`
	Transaction Transaction `json:"transaction"`
}

// Stats is the admin dashboard summary.
type Stats struct {
	Users             int    `json:"users"`
	Games             int    `json:"games"`
	Tickets           int    `json:"tickets"`
	ActiveListings    int    `json:"activeListings"`
	SoldTickets       int    `json:"soldTickets"`
	TotalTransactions int    `json:"totalTransactions"`
	TotalRevenue      int64  `json:"totalRevenue"`
	RevenueFormatted  string `json:"revenueFormatted"`
}
