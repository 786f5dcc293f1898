package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/wavy-96/catan-chambers/handlers"
	"github.com/wavy-96/catan-chambers/middleware"
)

// SetupRoutes mounts the full HTTP surface. Reads are public; anything that
// mutates state sits behind the admin JWT.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	corsAllowedOrigins []string,
	authHandler *handlers.AuthHandler,
	playerHandler *handlers.PlayerHandler,
	tournamentHandler *handlers.TournamentHandler,
	gameHandler *handlers.GameHandler,
	statsHandler *handlers.StatsHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	requireAdmin := middleware.RequireAdmin(jwtSecret)

	router.Post("/auth/login", authHandler.Login)

	router.Route("/players", func(r chi.Router) {
		r.Get("/", playerHandler.List)
		r.With(requireAdmin).Post("/", playerHandler.Create)
	})

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.List)
		r.With(requireAdmin).Post("/", tournamentHandler.Create)

		r.Route("/{tournamentID}", func(r chi.Router) {
			r.Get("/", tournamentHandler.GetByID)
			r.Get("/games", gameHandler.ListByTournament)
			r.With(requireAdmin).Post("/games", gameHandler.Record)

			r.Get("/standings", statsHandler.TournamentStandings)
			r.Get("/positions", statsHandler.Positions)
			r.Get("/comparison", statsHandler.Comparison)
			r.Get("/progression", statsHandler.Progression)
			r.Get("/risk", statsHandler.Risk)
		})
	})

	router.With(requireAdmin).Delete("/games/{gameID}", gameHandler.Delete)

	router.Route("/stats", func(r chi.Router) {
		r.Get("/standings", statsHandler.GlobalStandings)
		r.Get("/overview", statsHandler.Overview)
	})

	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWs)
}
