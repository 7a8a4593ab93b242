// Package playerrouter registers the player directory routes on a chi router.
package playerrouter

import (
	playerhandlers "github.com/bettercodepaul/Skat/app/modules/player/infrastructure/handlers"
	"github.com/bettercodepaul/Skat/config"
	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"
)

// BasePath is the mount point of the player API.
const BasePath = "/api/players"

// Mount registers the player routes under BasePath.
func Mount(r chi.Router, handlers *playerhandlers.PlayerHandlers, cfg config.HTTPConfig) {
	limiter := playerhandlers.NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)

	r.Route(BasePath, func(r chi.Router) {
		r.Use(playerhandlers.CorrelationIDMiddleware)
		r.Use(playerhandlers.CORSMiddleware(cfg.AllowedOrigins))
		r.Use(playerhandlers.RateLimitMiddleware(limiter))

		r.Get("/", handlers.HandleListPlayers)
		r.Post("/", handlers.HandleCreatePlayer)
		r.Put("/{id}", handlers.HandleUpdatePlayer)
		r.Delete("/{id}", handlers.HandleDeletePlayer)
	})
}
