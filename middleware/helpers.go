package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

type contextKey string

const tournamentContextKey contextKey = "tournament_id"

// GetTournamentIDFromContext returns the tournament id of the verified session token.
func GetTournamentIDFromContext(ctx context.Context) (string, error) {
	id, ok := ctx.Value(tournamentContextKey).(string)
	if !ok || id == "" {
		return "", errors.New("tournament session not found in context")
	}
	return id, nil
}

func withTournamentID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, tournamentContextKey, id)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
