package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// Cors allows the listed origins, or any origin when the list is empty.
func Cors(allowedOrigins []string) Middleware {
	options := cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}
	if len(allowedOrigins) == 0 {
		options.AllowOriginFunc = func(origin string) bool {
			return true
		}
	}
	return cors.New(options).Handler
}
