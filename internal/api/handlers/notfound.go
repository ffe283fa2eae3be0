package handlers

import (
	"distance-service/internal/api/dto"
	"math/rand"
	"net/http"

	"github.com/rs/zerolog"
)

var notFoundQuotes = []string{
	"Looks like you've wandered off the map! Even GPS can't find this page.",
	"This route doesn't exist. Maybe try recalculating?",
	"404: Distance to this page is infinite.",
	"You've gone so far you've left the known world. Here be dragons!",
	"Not all who wander are lost, but this page definitely is.",
	"The shortest path to nowhere is right here.",
	"We measured twice and still couldn't find this page.",
}

var availableEndpoints = []string{
	"/calculate - Calculate distance between two locations",
	"/autocomplete - Get address suggestions",
	"/history - View calculation history",
	"/api/auth/register - Create an account",
	"/api/auth/login - Obtain an access token",
	"/api/auth/user - View the signed-in account",
}

// NotFound answers every unknown route with a random quote and the list of endpoints.
func NotFound(w http.ResponseWriter, r *http.Request) {
	zerolog.Ctx(r.Context()).Warn().
		Str("path", r.URL.RequestURI()).
		Str("method", r.Method).
		Str("remote_addr", r.RemoteAddr).
		Msg("404 not found")

	writeJSON(w, r, http.StatusNotFound, dto.NotFoundResponse{
		Status:             http.StatusNotFound,
		Message:            notFoundQuotes[rand.Intn(len(notFoundQuotes))],
		Tip:                "Try going back home or check if the URL is correct!",
		AvailableEndpoints: availableEndpoints,
	})
}
