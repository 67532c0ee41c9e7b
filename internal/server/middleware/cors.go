package middleware

import (
	"net/http"
	"time"

	"github.com/rs/cors"
)

// corsMaxAge сколько браузер кэширует ответ на preflight
const corsMaxAge = 12 * time.Hour

// CORSMiddleware разрешает браузерным клиентам с allowedOrigins вызывать API.
// "*" разрешает любой origin. Preflight OPTIONS отвечается здесь же и дальше не идет.
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader, "Retry-After"},
		MaxAge:         int(corsMaxAge / time.Second),
	})
	return c.Handler
}
