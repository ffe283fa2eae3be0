package api

import (
	"distance-service/internal/api/handlers"
	"net/http"

	"github.com/rs/zerolog"
)

type Deps struct {
	Logger         zerolog.Logger
	Distance       handlers.DistanceCalculator
	History        handlers.HistoryLister
	Accounts       handlers.AccountManager
	Tokens         TokenVerifier
	AllowedOrigins []string
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	distHandler := &handlers.DistanceHandler{Service: d.Distance}
	historyHandler := &handlers.HistoryHandler{Service: d.History}
	authHandler := &handlers.AuthHandler{Service: d.Accounts}

	optional := func(h http.HandlerFunc) http.HandlerFunc { return authMiddleware(d.Tokens, false, h) }
	required := func(h http.HandlerFunc) http.HandlerFunc { return authMiddleware(d.Tokens, true, h) }

	mux.HandleFunc("/health", handlers.Health)

	for _, prefix := range []string{"", "/api"} {
		mux.HandleFunc(prefix+"/calculate", optional(distHandler.Calculate))
		mux.HandleFunc(prefix+"/autocomplete", distHandler.Autocomplete)
		mux.HandleFunc(prefix+"/history", optional(historyHandler.List))
	}

	mux.HandleFunc("/api/auth/register", authHandler.Register)
	mux.HandleFunc("/api/auth/login", authHandler.Login)
	mux.HandleFunc("/api/auth/user", required(authHandler.CurrentUser))

	mux.HandleFunc("/", handlers.NotFound)

	return loggingMiddleware(d.Logger, corsMiddleware(d.AllowedOrigins, mux))
}
