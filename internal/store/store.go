// Package store holds the marketplace state in process memory. Every entity
// type gets its own map and its own monotonically increasing id counter;
// nothing survives a restart.
package store

import (
	"maps"
	"slices"
	"sync"
	"time"

	"seatwell/internal/status"
	"seatwell/models"
)

type Store struct {
	mu sync.RWMutex

	users        map[int]models.User
	games        map[int]models.Game
	tickets      map[int]models.Ticket
	transactions map[int]models.Transaction

	nextUserID        int
	nextGameID        int
	nextTicketID      int
	nextTransactionID int

	now func() time.Time
}

// Counts is a point-in-time summary of the collections.
type Counts struct {
	Users            int
	Games            int
	Tickets          int
	TicketsByStatus  map[string]int
	Transactions     int
	TransactionTotal int64
}

func New() *Store {
	return &Store{
		users:             make(map[int]models.User),
		games:             make(map[int]models.Game),
		tickets:           make(map[int]models.Ticket),
		transactions:      make(map[int]models.Transaction),
		nextUserID:        1,
		nextGameID:        1,
		nextTicketID:      1,
		nextTransactionID: 1,
		now:               time.Now,
	}
}

// Users

func (s *Store) GetUser(id int) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	return u, ok
}

// GetUserByEmail returns the lowest-id user with the given email.
func (s *Store) GetUserByEmail(email string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range slices.Sorted(maps.Keys(s.users)) {
		if u := s.users[id]; u.Email == email {
			return u, true
		}
	}
	return models.User{}, false
}

func (s *Store) GetUserByUsername(username string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range slices.Sorted(maps.Keys(s.users)) {
		if u := s.users[id]; u.Username == username {
			return u, true
		}
	}
	return models.User{}, false
}

func (s *Store) AllUsers() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return inIDOrder(s.users)
}

// CreateUser does not enforce username or email uniqueness.
func (s *Store) CreateUser(u models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	u.ID = s.nextUserID
	s.nextUserID++
	u.CreatedAt = s.now()
	if u.Type == "" {
		u.Type = models.UserTypeBuyer
	}
	s.users[u.ID] = u
	return u
}

// Games

func (s *Store) GetGame(id int) (models.Game, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.games[id]
	return g, ok
}

// AllGames returns games ordered by date, oldest first.
func (s *Store) AllGames() []models.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()

	games := inIDOrder(s.games)
	slices.SortStableFunc(games, func(a, b models.Game) int {
		return a.Date.Compare(b.Date)
	})
	return games
}

func (s *Store) CreateGame(g models.Game) models.Game {
	s.mu.Lock()
	defer s.mu.Unlock()

	g.ID = s.nextGameID
	s.nextGameID++
	g.CreatedAt = s.now()
	if g.Status == "" {
		g.Status = models.GameUpcoming
	}
	s.games[g.ID] = g
	return g
}

func (s *Store) UpdateGame(id int, patch models.GamePatch) (models.Game, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[id]
	if !ok {
		return models.Game{}, false
	}
	g = patch.Apply(g)
	s.games[id] = g
	return g, true
}

// DeleteGame removes the game and every ticket listed for it. Transactions
// that reference those tickets are kept.
func (s *Store) DeleteGame(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[id]; !ok {
		return false
	}
	delete(s.games, id)
	maps.DeleteFunc(s.tickets, func(_ int, t models.Ticket) bool {
		return t.GameID == id
	})
	return true
}

// Tickets

func (s *Store) GetTicket(id int) (models.Ticket, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tickets[id]
	return t.Clone(), ok
}

func (s *Store) AllTickets() []models.Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tickets := inIDOrder(s.tickets)
	for i := range tickets {
		tickets[i] = tickets[i].Clone()
	}
	return tickets
}

func (s *Store) TicketsByGame(gameID int) []models.Ticket {
	return s.filterTickets(func(t models.Ticket) bool { return t.GameID == gameID })
}

func (s *Store) TicketsBySeller(sellerID int) []models.Ticket {
	return s.filterTickets(func(t models.Ticket) bool { return t.SellerID == sellerID })
}

func (s *Store) filterTickets(keep func(models.Ticket) bool) []models.Ticket {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tickets := []models.Ticket{}
	for _, t := range inIDOrder(s.tickets) {
		if keep(t) {
			tickets = append(tickets, t.Clone())
		}
	}
	return tickets
}

// CreateTicket stores a new listing. The game reference is not checked here.
func (s *Store) CreateTicket(t models.Ticket) models.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = s.nextTicketID
	s.nextTicketID++
	t.CreatedAt = s.now()
	t.BuyerID = nil
	t.SoldAt = nil
	if t.Status == "" {
		t.Status = models.TicketAvailable
	}
	s.tickets[t.ID] = t
	return t
}

// UpdateTicket merges the patch into the listing. The first transition to
// sold stamps SoldAt; any other status clears it.
func (s *Store) UpdateTicket(id int, patch models.TicketPatch) (models.Ticket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tickets[id]
	if !ok {
		return models.Ticket{}, false
	}
	t = patch.Apply(t)
	switch {
	case t.Status != models.TicketSold:
		t.SoldAt = nil
	case t.SoldAt == nil:
		soldAt := s.now()
		t.SoldAt = &soldAt
	}
	s.tickets[id] = t
	return t.Clone(), true
}

// PurchaseTicket marks an available listing as sold to buyerID and records a
// completed transaction for its price. The status check and the write happen
// under one lock, so a listing is sold at most once.
func (s *Store) PurchaseTicket(id, buyerID int) (models.Ticket, models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tickets[id]
	if !ok {
		return models.Ticket{}, models.Transaction{}, status.ErrNotFound
	}
	if !t.IsAvailable() {
		return models.Ticket{}, models.Transaction{}, status.ErrTicketNotAvailable
	}

	now := s.now()
	t.Status = models.TicketSold
	t.BuyerID = &buyerID
	t.SoldAt = &now
	s.tickets[id] = t

	tx := s.insertTransaction(models.Transaction{
		TicketID: t.ID,
		BuyerID:  buyerID,
		SellerID: t.SellerID,
		Amount:   t.Price,
		Status:   models.TransactionCompleted,
	})
	return t.Clone(), tx, nil
}

// Transactions

func (s *Store) GetTransaction(id int) (models.Transaction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, ok := s.transactions[id]
	return tx, ok
}

func (s *Store) AllTransactions() []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return inIDOrder(s.transactions)
}

func (s *Store) CreateTransaction(tx models.Transaction) models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.insertTransaction(tx)
}

// insertTransaction requires s.mu to be held for writing.
func (s *Store) insertTransaction(tx models.Transaction) models.Transaction {
	tx.ID = s.nextTransactionID
	s.nextTransactionID++
	tx.CreatedAt = s.now()
	if tx.Status == "" {
		tx.Status = models.TransactionPending
	}
	s.transactions[tx.ID] = tx
	return tx
}

func (s *Store) Counts() Counts {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c := Counts{
		Users:           len(s.users),
		Games:           len(s.games),
		Tickets:         len(s.tickets),
		TicketsByStatus: make(map[string]int),
		Transactions:    len(s.transactions),
	}
	for _, t := range s.tickets {
		c.TicketsByStatus[t.Status]++
	}
	for _, tx := range s.transactions {
		c.TransactionTotal += tx.Amount
	}
	return c
}

func inIDOrder[T any](m map[int]T) []T {
	out := make([]T, 0, len(m))
	for _, id := range slices.Sorted(maps.Keys(m)) {
		out = append(out, m[id])
	}
	return out
}
