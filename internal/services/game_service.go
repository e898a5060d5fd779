package services

import (
	"context"
	"fmt"
	"log/slog"

	"seatwell/internal/status"
	"seatwell/internal/store"
	"seatwell/models"
)

type GameService struct {
	store       *store.Store
	broadcaster *Broadcaster
	logger      *slog.Logger
}

func NewGameService(s *store.Store, broadcaster *Broadcaster, logger *slog.Logger) *GameService {
	if logger == nil {
		logger = slog.Default()
	}
	return &GameService{store: s, broadcaster: broadcaster, logger: logger}
}

func (s *GameService) List(ctx context.Context) []models.Game {
	return s.store.AllGames()
}

func (s *GameService) Get(ctx context.Context, id int) (models.Game, error) {
	game, ok := s.store.GetGame(id)
	if !ok {
		return models.Game{}, fmt.Errorf("game %d: %w", id, status.ErrNotFound)
	}
	return game, nil
}

func (s *GameService) Create(ctx context.Context, req models.CreateGameRequest) models.Game {
	game := s.store.CreateGame(req.Game())
	s.logger.Info("Game created", "gameID", game.ID, "home", game.HomeTeam, "away", game.AwayTeam)
	return game
}

func (s *GameService) Update(ctx context.Context, id int, patch models.GamePatch) (models.Game, error) {
	game, ok := s.store.UpdateGame(id, patch)
	if !ok {
		return models.Game{}, fmt.Errorf("game %d: %w", id, status.ErrNotFound)
	}
	return game, nil
}

// Delete removes the game together with its listings.
func (s *GameService) Delete(ctx context.Context, id int) error {
	if !s.store.DeleteGame(id) {
		return fmt.Errorf("game %d: %w", id, status.ErrNotFound)
	}
	s.logger.Info("Game deleted", "gameID", id)

	event := NewMarketEvent(EventGameDeleted, nil)
	event.GameID = id
	s.broadcaster.Notify(event, MarketChannel)
	return nil
}
