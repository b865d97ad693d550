package controllers

import (
	"github.com/quinbingo/quinbingo-backend/config"
	"github.com/quinbingo/quinbingo-backend/game"
	"github.com/quinbingo/quinbingo-backend/models"
)

// Sponsors and the prize image are cosmetic fixtures shown on the
// viewer page; they live outside the game snapshot.
var Sponsors = []models.Sponsor{
	{Name: "Patrocinador 1", Image: "sponsor1.png"},
	{Name: "Patrocinador 2", Image: "sponsor2.png"},
	{Name: "Patrocinador 3", Image: "sponsor3.png"},
}

const PrizeImage = "premio.jpg"

// API bundles the handlers' dependencies. The game façade is injected
// here instead of living in a package global.
type API struct {
	Game *game.Game
	Auth *Auth
	Cfg  *config.Config
}

func NewAPI(g *game.Game, cfg *config.Config) *API {
	return &API{
		Game: g,
		Auth: NewAuth(cfg.AdminPassword),
		Cfg:  cfg,
	}
}
