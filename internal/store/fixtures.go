package store

import (
	_ "embed"
	"fmt"
	"time"

	"seatwell/models"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var DefaultFixtures []byte

type Fixtures struct {
	Users   []UserFixture   `yaml:"users"`
	Games   []GameFixture   `yaml:"games"`
	Tickets []TicketFixture `yaml:"tickets"`
}

type UserFixture struct {
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Type     string `yaml:"type"`
}

type GameFixture struct {
	HomeTeam string    `yaml:"homeTeam"`
	AwayTeam string    `yaml:"awayTeam"`
	Date     time.Time `yaml:"date"`
	Venue    string    `yaml:"venue"`
	Status   string    `yaml:"status"`
}

type TicketFixture struct {
	GameID     int    `yaml:"gameId"`
	SellerID   int    `yaml:"sellerId"`
	BuyerID    int    `yaml:"buyerId"`
	SeatNumber string `yaml:"seatNumber"`
	Price      int64  `yaml:"price"`
	Status     string `yaml:"status"`
}

// LoadFixtures parses a fixture document and checks that every ticket points
// at a game and users defined earlier in the same document.
func LoadFixtures(data []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}

	for i, t := range f.Tickets {
		if t.GameID < 1 || t.GameID > len(f.Games) {
			return nil, fmt.Errorf("fixture ticket %d: unknown game %d", i+1, t.GameID)
		}
		if t.SellerID < 1 || t.SellerID > len(f.Users) {
			return nil, fmt.Errorf("fixture ticket %d: unknown seller %d", i+1, t.SellerID)
		}
		if t.BuyerID < 0 || t.BuyerID > len(f.Users) {
			return nil, fmt.Errorf("fixture ticket %d: unknown buyer %d", i+1, t.BuyerID)
		}
	}
	return &f, nil
}

// Seed inserts the fixtures into s. It is meant for an empty store, since
// fixture references assume ids start at 1.
func (s *Store) Seed(f *Fixtures) {
	for _, u := range f.Users {
		s.CreateUser(models.User{
			Username: u.Username,
			Email:    u.Email,
			Password: u.Password,
			Type:     u.Type,
		})
	}

	for _, g := range f.Games {
		s.CreateGame(models.Game{
			HomeTeam: g.HomeTeam,
			AwayTeam: g.AwayTeam,
			Date:     g.Date,
			Venue:    g.Venue,
			Status:   g.Status,
		})
	}

	for _, t := range f.Tickets {
		ticket := s.CreateTicket(models.Ticket{
			GameID:     t.GameID,
			SellerID:   t.SellerID,
			SeatNumber: t.SeatNumber,
			Price:      t.Price,
			Status:     t.Status,
		})

		var patch models.TicketPatch
		if t.BuyerID != 0 {
			patch.BuyerID = models.SetInt(t.BuyerID)
		}
		if t.Status == models.TicketSold {
			sold := models.TicketSold
			patch.Status = &sold
		}
		if patch != (models.TicketPatch{}) {
			s.UpdateTicket(ticket.ID, patch)
		}
	}
}

// NewSeeded returns a store filled with the embedded demo fixtures.
func NewSeeded() (*Store, error) {
	return NewFromFixtures(DefaultFixtures)
}

func NewFromFixtures(data []byte) (*Store, error) {
	f, err := LoadFixtures(data)
	if err != nil {
		return nil, err
	}

	s := New()
	s.Seed(f)
	return s, nil
}
