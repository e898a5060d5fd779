package handlers

import (
	"log/slog"
	"net/http"

	"seatwell/internal/services"
	"seatwell/models"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type GameHandler struct {
	gameService *services.GameService
	logger      *slog.Logger
}

func NewGameHandler(gameService *services.GameService, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		gameService: gameService,
		logger:      logger,
	}
}

// ListGames - GET /api/games, ordered by date
func (h *GameHandler) ListGames(e *core.RequestEvent) error {
	return e.JSON(http.StatusOK, h.gameService.List(e.Request.Context()))
}

// GetGame - GET /api/games/{id}
func (h *GameHandler) GetGame(e *core.RequestEvent) error {
	id, ok := pathID(e, "id")
	if !ok {
		return apis.NewNotFoundError("Game not found", nil)
	}

	game, err := h.gameService.Get(e.Request.Context(), id)
	if err != nil {
		return apiError(h.logger, err, "Game", "Failed to fetch game")
	}

	return e.JSON(http.StatusOK, game)
}

// CreateGame - POST /api/games
func (h *GameHandler) CreateGame(e *core.RequestEvent) error {
	var req models.CreateGameRequest
	if err := bindAndValidate(e, &req, "Invalid game data"); err != nil {
		return err
	}

	return e.JSON(http.StatusCreated, h.gameService.Create(e.Request.Context(), req))
}

// UpdateGame - PATCH /api/games/{id}
func (h *GameHandler) UpdateGame(e *core.RequestEvent) error {
	id, ok := pathID(e, "id")
	if !ok {
		return apis.NewNotFoundError("Game not found", nil)
	}

	var patch models.GamePatch
	if err := bindAndValidate(e, &patch, "Invalid game data"); err != nil {
		return err
	}

	game, err := h.gameService.Update(e.Request.Context(), id, patch)
	if err != nil {
		return apiError(h.logger, err, "Game", "Failed to update game")
	}

	return e.JSON(http.StatusOK, game)
}

// DeleteGame - DELETE /api/games/{id}, removes the game's tickets too
func (h *GameHandler) DeleteGame(e *core.RequestEvent) error {
	id, ok := pathID(e, "id")
	if !ok {
		return apis.NewNotFoundError("Game not found", nil)
	}

	if err := h.gameService.Delete(e.Request.Context(), id); err != nil {
		return apiError(h.logger, err, "Game", "Failed to delete game")
	}

	return e.NoContent(http.StatusNoContent)
}
