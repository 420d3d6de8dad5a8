package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	chatHandler "github.com/relately/backend/internal/handler/chat"
	checkinHandler "github.com/relately/backend/internal/handler/checkin"
	profileHandler "github.com/relately/backend/internal/handler/profile"
	quizHandler "github.com/relately/backend/internal/handler/quiz"
	subscriptionHandler "github.com/relately/backend/internal/handler/subscription"
	"github.com/relately/backend/internal/middleware"
	chatService "github.com/relately/backend/internal/service/chat"
	checkinService "github.com/relately/backend/internal/service/checkin"
	profileService "github.com/relately/backend/internal/service/profile"
	quizService "github.com/relately/backend/internal/service/quiz"
	subscriptionService "github.com/relately/backend/internal/service/subscription"
	"github.com/relately/backend/pkg/utils"
)

// Services bundles what the router needs wired in.
type Services struct {
	Chat          *chatService.Manager
	Checkins      *checkinService.Service
	Profiles      *profileService.Service
	Quizzes       *quizService.Service
	Subscriptions *subscriptionService.Service
}

// NewRouter wires HTTP routes to core services. Everything under /api
// requires the auth provider's bearer token.
func NewRouter(svcs Services, jwtSecret string) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.Auth(jwtSecret))

		chatHandler.New(svcs.Chat).RegisterRoutes(api)
		checkinHandler.New(svcs.Checkins).RegisterRoutes(api)
		profileHandler.New(svcs.Profiles).RegisterRoutes(api)
		quizHandler.New(svcs.Quizzes).RegisterRoutes(api)
		subscriptionHandler.New(svcs.Subscriptions).RegisterRoutes(api)
	})

	return r
}
