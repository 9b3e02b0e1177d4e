package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Sofya-Khabibulina/HabitTracker/internal/ratelimit"
	"github.com/Sofya-Khabibulina/HabitTracker/internal/service"
	"github.com/Sofya-Khabibulina/HabitTracker/internal/wizard"
)

// QuoteProviderI returns a motivational quote; it never fails outward.
type QuoteProviderI interface {
	Get(ctx context.Context) string
}

// Server is the HTTP boundary of the bot core. The chat front-end calls
// the /users routes for every update it handles; the /admin routes carry
// JWT-protected moderation and stats.
type Server struct {
	mx                *chi.Mux
	store             service.HabitStoreI
	guard             *ratelimit.Guard
	wizard            *wizard.Wizard
	quotes            QuoteProviderI
	jwtService        JWTServiceI
	adminIDs          map[int64]bool
	adminPasswordHash string
}

type Options struct {
	Store             service.HabitStoreI
	Guard             *ratelimit.Guard
	Wizard            *wizard.Wizard
	Quotes            QuoteProviderI
	JwtService        JWTServiceI
	AdminIDs          []int64
	AdminPasswordHash string
}

func New(opts *Options) *Server {
	admins := make(map[int64]bool, len(opts.AdminIDs))
	for _, id := range opts.AdminIDs {
		admins[id] = true
	}
	s := &Server{
		mx:                chi.NewMux(),
		store:             opts.Store,
		guard:             opts.Guard,
		wizard:            opts.Wizard,
		quotes:            opts.Quotes,
		jwtService:        opts.JwtService,
		adminIDs:          admins,
		adminPasswordHash: opts.AdminPasswordHash,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mx.Use(s.RequestIDMiddleware)
	s.mx.Use(s.SettingUpLoggerMiddleware)
	s.mx.Route("/api/v1", func(r chi.Router) {
		r.Post("/users/{id}/admit", s.AdmitAction)
		r.Post("/users/{id}/language", s.SetLanguage)
		r.Get("/users/{id}/habits", s.ListHabits)
		r.Delete("/users/{id}/habits/{habitID}", s.DeleteHabit)
		r.Post("/users/{id}/habits/{habitID}/checkin", s.CheckIn)
		r.Get("/users/{id}/habits/{habitID}/progress", s.HabitProgress)
		r.Post("/users/{id}/wizard/start", s.WizardStart)
		r.Post("/users/{id}/wizard/name", s.WizardName)
		r.Post("/users/{id}/wizard/frequency", s.WizardFrequency)
		r.Post("/users/{id}/wizard/cancel", s.WizardCancel)
		r.Get("/quote", s.Quote)
		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", s.Login)
			r.Group(func(r chi.Router) {
				r.Use(s.AuthMiddleware)
				r.Get("/stats", s.Stats)
				r.Get("/users/{id}/ban", s.BanStatus)
				r.Post("/users/{id}/ban", s.BanUser)
				r.Post("/users/{id}/unban", s.UnbanUser)
				r.Get("/broadcast/recipients", s.BroadcastRecipients)
			})
		})
	})
}

func (s *Server) Handler() http.Handler {
	return s.mx
}

func (s *Server) Run(address string) error {
	return http.ListenAndServe(address, s.mx)
}
