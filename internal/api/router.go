package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/apython1998/ultistats/internal/api/handlers"
	"github.com/apython1998/ultistats/internal/auth"
	"github.com/apython1998/ultistats/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	userService services.UserServiceProvider,
	teamService services.TeamServiceProvider,
	playerService services.PlayerServiceProvider,
	tournamentService services.TournamentServiceProvider,
	gameService services.GameServiceProvider,
	statService services.StatServiceProvider,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration for development
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"}, // Adjust for your frontend URL
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Location"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService)
	teamHandler := handlers.NewTeamHandler(teamService)
	playerHandler := handlers.NewPlayerHandler(playerService, statService)
	tournamentHandler := handlers.NewTournamentHandler(tournamentService)
	gameHandler := handlers.NewGameHandler(gameService)
	statHandler := handlers.NewStatHandler(statService)

	r.Route("/v1", func(r chi.Router) {
		// Registration is the only open route.
		r.Post("/register", userHandler.Register)

		// Login trades basic credentials for a bearer token.
		r.Group(func(r chi.Router) {
			r.Use(auth.Basic(userService))
			r.Post("/login", userHandler.Login)
		})

		// Everything else requires a valid bearer token.
		r.Group(func(r chi.Router) {
			r.Use(auth.Bearer(userService))

			r.Delete("/logout", userHandler.Logout)

			r.Route("/users/{id}", func(r chi.Router) {
				r.Get("/", userHandler.Get)
				r.Put("/", userHandler.Update)
				r.Delete("/", userHandler.Delete)
			})

			r.Route("/teams", func(r chi.Router) {
				r.Get("/", teamHandler.GetAll)
				r.Post("/", teamHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", teamHandler.Get)
					r.Put("/", teamHandler.Update)
					r.Delete("/", teamHandler.Delete)
					r.Get("/players", teamHandler.GetPlayers)
				})
			})

			r.Route("/players", func(r chi.Router) {
				r.Get("/", playerHandler.GetAll)
				r.Post("/", playerHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", playerHandler.Get)
					r.Put("/", playerHandler.Update)
					r.Delete("/", playerHandler.Delete)
					r.Get("/statistics", playerHandler.GetStatistics)
					r.Get("/statistics/totals", playerHandler.GetStatTotals)
				})
			})

			r.Route("/tournaments", func(r chi.Router) {
				r.Get("/", tournamentHandler.GetAll)
				r.Post("/", tournamentHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", tournamentHandler.Get)
					r.Put("/", tournamentHandler.Update)
					r.Delete("/", tournamentHandler.Delete)
					r.Get("/players", tournamentHandler.GetPlayers)
					r.Put("/players/{playerID}", tournamentHandler.AddPlayer)
					r.Delete("/players/{playerID}", tournamentHandler.RemovePlayer)
				})
			})

			r.Route("/games", func(r chi.Router) {
				r.Get("/", gameHandler.GetAll)
				r.Post("/", gameHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", gameHandler.Get)
					r.Put("/", gameHandler.Update)
					r.Delete("/", gameHandler.Delete)
					r.Get("/points", gameHandler.GetPoints)
					r.Post("/points", gameHandler.AddPoint)
					r.Delete("/points/{pointID}", gameHandler.DeletePoint)
				})
			})

			r.Route("/statistics", func(r chi.Router) {
				r.Post("/", statHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", statHandler.Get)
					r.Delete("/", statHandler.Delete)
				})
			})
		})
	})

	return r
}
