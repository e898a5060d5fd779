package models

import "time"

const (
	GameUpcoming  = "upcoming"
	GameActive    = "active"
	GameCompleted = "completed"
)

type Game struct {
	ID        int       `json:"id"`
	HomeTeam  string    `json:"homeTeam"`
	AwayTeam  string    `json:"awayTeam"`
	Date      time.Time `json:"date"`
	Venue     string    `json:"venue"`
	Status    string    `json:"status"` // upcoming, active, completed
	CreatedAt time.Time `json:"createdAt"`
}

// GamePatch carries the fields of a partial game update. Nil fields are left untouched.
type GamePatch struct {
	HomeTeam *string    `json:"homeTeam"`
	AwayTeam *string    `json:"awayTeam"`
	Date     *time.Time `json:"date"`
	Venue    *string    `json:"venue"`
	Status   *string    `json:"status"`
}

func (p GamePatch) Apply(g Game) Game {
	if p.HomeTeam != nil {
		g.HomeTeam = *p.HomeTeam
	}
	if p.AwayTeam != nil {
		g.AwayTeam = *p.AwayTeam
	}
	if p.Date != nil {
		g.Date = *p.Date
	}
	if p.Venue != nil {
		g.Venue = *p.Venue
	}
	if p.Status != nil {
		g.Status = *p.Status
	}
	return g
}
