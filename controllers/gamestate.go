package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quinbingo/quinbingo-backend/game"
)

// GetState returns the current game snapshot plus cosmetic fixtures,
// for page rendering and polling clients.
func (api *API) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"game":        api.Game.Snapshot(),
		"sponsors":    Sponsors,
		"prize_image": PrizeImage,
	})
}

// RegisterCard handles POST /api/cards.
func (api *API) RegisterCard(c *gin.Context) {
	var req struct {
		PlayerName string `json:"player_name"`
		CardID     string `json:"card_id"`
		Numbers    string `json:"numbers"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := api.Game.RegisterCard(req.PlayerName, req.CardID, req.Numbers); err != nil {
		var verr *game.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":      verr.Message,
				"error_kind": string(verr.Kind),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save card"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "card registered",
		"card_count": api.Game.Snapshot().CardCount,
	})
}

// StartGame handles POST /api/game/start.
func (api *API) StartGame(c *gin.Context) {
	if err := api.Game.StartCountdown(); err != nil {
		if errors.Is(err, game.ErrNotAllowed) {
			c.JSON(http.StatusConflict, gin.H{"error": "game already started"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start countdown"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "countdown started"})
}

// ResetGame handles POST /api/game/reset.
func (api *API) ResetGame(c *gin.Context) {
	state := api.Game.Reset()
	c.JSON(http.StatusOK, gin.H{"message": "game reset", "game": state})
}
