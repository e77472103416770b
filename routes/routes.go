package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/halftime-club/paddock-predict/handlers"
	"github.com/halftime-club/paddock-predict/middleware"
	"github.com/halftime-club/paddock-predict/models"
)

// SetupRoutes собирает весь HTTP-роутинг приложения.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	playerHandler *handlers.PlayerHandler,
	riderHandler *handlers.RiderHandler,
	raceHandler *handlers.RaceHandler,
	predictionHandler *handlers.PredictionHandler,
	resultHandler *handlers.ResultHandler,
	scoreHandler *handlers.ScoreHandler,
	standingsHandler *handlers.StandingsHandler,
	championshipHandler *handlers.ChampionshipHandler,
	syncHandler *handlers.SyncHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate([]byte(jwtSecret))
	adminOnly := middleware.Authorize(models.RoleAdmin)

	router.Mount("/swagger", httpSwagger.WrapHandler)

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	router.Route("/players", func(r chi.Router) {
		r.Get("/", playerHandler.List)
		r.Get("/{playerID}", playerHandler.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/{playerID}/avatar", playerHandler.UploadAvatar)
			r.Get("/{playerID}/penalties", scoreHandler.Penalties)
		})
	})

	router.Route("/riders", func(r chi.Router) {
		r.Get("/", riderHandler.List)
		r.Get("/{riderID}", riderHandler.GetByID)
	})

	router.Route("/races", func(r chi.Router) {
		r.Get("/", raceHandler.ListBySeason)
		r.Get("/{raceID}", raceHandler.GetByID)
		r.Get("/{raceID}/results/{resultType}", resultHandler.ListByRace)
		r.Get("/{raceID}/glorious-seven", resultHandler.GetGloriousSeven)
		r.Get("/{raceID}/scores", scoreHandler.ListByRace)

		// Прогнозы текущего игрока.
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Put("/{raceID}/prediction", predictionHandler.Submit)
			r.Get("/{raceID}/prediction", predictionHandler.GetMine)
			r.Get("/{raceID}/breakdown", scoreHandler.Breakdown)
		})

		// Ввод результатов и пересчёт очков: только админ.
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(adminOnly)
			r.Put("/{raceID}/results/{resultType}", resultHandler.Replace)
			r.Put("/{raceID}/glorious-seven", resultHandler.SetGloriousSeven)
			r.Post("/{raceID}/glorious-seven/generate", resultHandler.GenerateGloriousSeven)
			r.Put("/{raceID}/status", raceHandler.UpdateStatus)
			r.Post("/{raceID}/calculate", scoreHandler.Calculate)
			r.Get("/{raceID}/calculate", scoreHandler.Preview)
		})
	})

	router.Route("/standings", func(r chi.Router) {
		r.Get("/leaderboard", standingsHandler.Leaderboard)
		r.Get("/progression", standingsHandler.Progression)
	})

	router.Route("/championship", func(r chi.Router) {
		r.Get("/result", championshipHandler.GetResult)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Put("/prediction", championshipHandler.SubmitPrediction)
			r.Get("/prediction", championshipHandler.GetMyPrediction)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(adminOnly)
			r.Put("/result", championshipHandler.RecordResult)
		})
	})

	router.Route("/sync", func(r chi.Router) {
		r.Use(authenticate)
		r.Use(adminOnly)
		r.Post("/season", syncHandler.SyncSeason)
		r.Post("/riders", syncHandler.SyncRiders)
		r.Post("/calendar", syncHandler.SyncCalendar)
	})

	router.Get("/ws/seasons/{seasonYear}", webSocketHandler.ServeWs)
}
