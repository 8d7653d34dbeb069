package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORSHandler wraps the router; an empty origin list allows every origin.
func CORSHandler(allowedOrigins []string, next http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Trace-ID"},
		AllowCredentials: true,
	})
	return c.Handler(next)
}
