// Package server собирает HTTP API сервера синхронизации заметок.
package server

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/iudanet/notekeeper/internal/server/handlers"
	"github.com/iudanet/notekeeper/internal/server/middleware"
)

// Handlers набор обработчиков API
type Handlers struct {
	Auth   *handlers.AuthHandler
	Notes  *handlers.NotesHandler
	Health *handlers.HealthHandler
	Stream *handlers.StreamHandler // Stream nil отключает GET /notes/stream
}

// Options зависимости маршрутизатора помимо обработчиков
type Options struct {
	Tokens         middleware.TokenValidator
	AuthLimiter    *middleware.RateLimiter // AuthLimiter nil отключает лимит на /auth/google
	AllowedOrigins []string                // AllowedOrigins пустой список отключает CORS
}

// NewRouter создает маршрутизатор API.
//
//	POST /auth/google  обмен Google ID token на backend токен (rate limit по IP)
//	POST /notes/sync   применение пакета операций (Bearer)
//	GET  /notes        полный снимок заметок пользователя (Bearer)
//	GET  /notes/stream server-sent events об изменениях заметок (Bearer)
//	GET  /health       состояние сервера и хранилища
//
// Цепочка: logging -> recovery -> cors -> router, для защищенных маршрутов еще auth.
func NewRouter(logger *slog.Logger, h Handlers, opts Options) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		handlers.SendError(logger, w, handlers.ErrCodeNotFound, "not found", http.StatusNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		handlers.SendError(logger, w, handlers.ErrCodeMethodNotAllowed, "method not allowed", http.StatusMethodNotAllowed)
	})

	r.HandleFunc("/health", h.Health.Health).Methods(http.MethodGet)

	var googleAuth http.Handler = http.HandlerFunc(h.Auth.Google)
	if opts.AuthLimiter != nil {
		googleAuth = opts.AuthLimiter.Middleware(googleAuth)
	}
	r.Handle("/auth/google", googleAuth).Methods(http.MethodPost)

	protected := r.PathPrefix("/notes").Subrouter()
	protected.Use(middleware.AuthMiddleware(logger, opts.Tokens))
	protected.HandleFunc("", h.Notes.List).Methods(http.MethodGet)
	protected.HandleFunc("/sync", h.Notes.Sync).Methods(http.MethodPost)
	if h.Stream != nil {
		protected.HandleFunc("/stream", h.Stream.Stream).Methods(http.MethodGet)
	}

	var handler http.Handler = r
	if len(opts.AllowedOrigins) > 0 {
		handler = middleware.CORSMiddleware(opts.AllowedOrigins)(handler)
	}

	return middleware.LoggingWithSkip(logger, []string{"/health"})(
		middleware.RecoveryMiddleware(logger)(handler),
	)
}
