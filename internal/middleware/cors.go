package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

func Cors(development bool) Middleware {
	options := cors.Options{
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		Debug:            development,
	}
	return cors.New(options).Handler
}
