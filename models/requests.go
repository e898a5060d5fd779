package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var (
	userTypes      = []any{UserTypeBuyer, UserTypeSeller, UserTypeAdmin}
	gameStatuses   = []any{GameUpcoming, GameActive, GameCompleted}
	ticketStatuses = []any{TicketAvailable, TicketPending, TicketSold, TicketCancelled}
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Type     string `json:"type"`
}

func (r CreateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(3, 50)),
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
		validation.Field(&r.Password, validation.Required),
		validation.Field(&r.Type, validation.In(userTypes...)),
	)
}

func (r CreateUserRequest) User() User {
	return User{
		Username: r.Username,
		Email:    r.Email,
		Password: r.Password,
		Type:     r.Type,
	}
}

type CreateGameRequest struct {
	HomeTeam string    `json:"homeTeam"`
	AwayTeam string    `json:"awayTeam"`
	Date     time.Time `json:"date"`
	Venue    string    `json:"venue"`
	Status   string    `json:"status"`
}

func (r CreateGameRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.HomeTeam, validation.Required),
		validation.Field(&r.AwayTeam, validation.Required),
		validation.Field(&r.Date, validation.Required),
		validation.Field(&r.Venue, validation.Required),
		validation.Field(&r.Status, validation.In(gameStatuses...)),
	)
}

func (r CreateGameRequest) Game() Game {
	return Game{
		HomeTeam: r.HomeTeam,
		AwayTeam: r.AwayTeam,
		Date:     r.Date,
		Venue:    r.Venue,
		Status:   r.Status,
	}
}

func (p GamePatch) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.HomeTeam, validation.NilOrNotEmpty),
		validation.Field(&p.AwayTeam, validation.NilOrNotEmpty),
		validation.Field(&p.Venue, validation.NilOrNotEmpty),
		validation.Field(&p.Status, validation.NilOrNotEmpty, validation.In(gameStatuses...)),
	)
}

type CreateTicketRequest struct {
	GameID     int    `json:"gameId"`
	SellerID   int    `json:"sellerId"`
	SeatNumber string `json:"seatNumber"`
	Price      *int64 `json:"price"`
	Status     string `json:"status"`
}

func (r CreateTicketRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.GameID, validation.Required, validation.Min(1)),
		validation.Field(&r.SellerID, validation.Required, validation.Min(1)),
		validation.Field(&r.SeatNumber, validation.Required, validation.Length(1, 32)),
		validation.Field(&r.Price, validation.NotNil, validation.Min(0)),
		validation.Field(&r.Status, validation.In(ticketStatuses...)),
	)
}

func (r CreateTicketRequest) Ticket() Ticket {
	t := Ticket{
		GameID:     r.GameID,
		SellerID:   r.SellerID,
		SeatNumber: r.SeatNumber,
		Status:     r.Status,
	}
	if r.Price != nil {
		t.Price = *r.Price
	}
	return t
}

// Validate only checks the values that would corrupt the listing; the patch
// is otherwise free-form.
func (p TicketPatch) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Price, validation.Min(0)),
		validation.Field(&p.Status, validation.NilOrNotEmpty, validation.In(ticketStatuses...)),
	)
}

// PurchaseRequest is shared by the purchase and hold endpoints.
type PurchaseRequest struct {
	BuyerID int `json:"buyerId"`
}

func (r PurchaseRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BuyerID, validation.Required, validation.Min(1)),
	)
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}
