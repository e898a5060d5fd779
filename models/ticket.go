package models

import (
	"encoding/json"
	"time"
)

const (
	TicketAvailable = "available"
	TicketPending   = "pending"
	TicketSold      = "sold"
	TicketCancelled = "cancelled"
)

type Ticket struct {
	ID         int        `json:"id"`
	GameID     int        `json:"gameId"`
	SellerID   int        `json:"sellerId"`
	BuyerID    *int       `json:"buyerId"`
	SeatNumber string     `json:"seatNumber"`
	Price      int64      `json:"price"`  // cents
	Status     string     `json:"status"` // available, pending, sold, cancelled
	CreatedAt  time.Time  `json:"createdAt"`
	SoldAt     *time.Time `json:"soldAt"`
}

func (t Ticket) IsAvailable() bool {
	return t.Status == TicketAvailable
}

// Clone returns a copy of t that shares no pointers with it.
func (t Ticket) Clone() Ticket {
	if t.BuyerID != nil {
		buyerID := *t.BuyerID
		t.BuyerID = &buyerID
	}
	if t.SoldAt != nil {
		soldAt := *t.SoldAt
		t.SoldAt = &soldAt
	}
	return t
}

// OptionalInt is a nullable patch field. Set reports whether the key was
// present in the body at all, so an explicit null can clear the value.
type OptionalInt struct {
	Set   bool
	Value *int
}

func SetInt(v int) OptionalInt {
	return OptionalInt{Set: true, Value: &v}
}

func (o *OptionalInt) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// TicketPatch carries the fields of a partial ticket update. Named fields
// replace the stored value wholesale; "buyerId": null clears the buyer.
type TicketPatch struct {
	GameID     *int        `json:"gameId"`
	SellerID   *int        `json:"sellerId"`
	BuyerID    OptionalInt `json:"buyerId"`
	SeatNumber *string     `json:"seatNumber"`
	Price      *int64      `json:"price"`
	Status     *string     `json:"status"`
}

func (p TicketPatch) Apply(t Ticket) Ticket {
	if p.GameID != nil {
		t.GameID = *p.GameID
	}
	if p.SellerID != nil {
		t.SellerID = *p.SellerID
	}
	if p.BuyerID.Set {
		t.BuyerID = nil
		if p.BuyerID.Value != nil {
			buyerID := *p.BuyerID.Value
			t.BuyerID = &buyerID
		}
	}
	if p.SeatNumber != nil {
		t.SeatNumber = *p.SeatNumber
	}
	if p.Price != nil {
		t.Price = *p.Price
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	return t
}

// Hold is a short-lived reservation of a listing for one buyer.
type Hold struct {
	TicketID  int       `json:"ticketId"`
	BuyerID   int       `json:"buyerId"`
	ExpiresAt time.Time `json:"expiresAt"`
}
