package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// Cors lets browsers on origins call the API. Only the methods the routes
// use are allowed.
func Cors(origins []string) Middleware {
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
		},
		AllowedHeaders: []string{"*"},
	}).Handler
}
