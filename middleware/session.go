package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v4"
)

const (
	jwtClaimTournamentID = "tournament_id"
	tournamentURLParam   = "tournamentID"
)

var ErrInvalidSession = errors.New("invalid session token")

// SessionManager issues and verifies the HS256 tokens that bind a browser to the
// tournament it started.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionManager(secret string, ttl time.Duration) *SessionManager {
	return &SessionManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (m *SessionManager) Issue(tournamentID string) (string, time.Time, error) {
	issuedAt := m.now()
	expiresAt := issuedAt.Add(m.ttl)

	claims := jwt.MapClaims{
		jwtClaimTournamentID: tournamentID,
		"exp":                expiresAt.Unix(),
		"iat":                issuedAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks the signature and expiry of a token and returns its tournament id.
func (m *SessionManager) Verify(tokenString string) (string, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.Parse(tokenString, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidSession
	}
	id, ok := claims[jwtClaimTournamentID].(string)
	if !ok || id == "" {
		return "", fmt.Errorf("%w: missing '%s' claim", ErrInvalidSession, jwtClaimTournamentID)
	}
	return id, nil
}

func tokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
		return ""
	}
	// browsers cannot set headers on websocket upgrades
	return r.URL.Query().Get("token")
}

// RequireSession rejects requests without a valid token for the tournament named in the
// URL.
func (m *SessionManager) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := tokenFromRequest(r)
		if tokenString == "" {
			writeError(w, http.StatusUnauthorized, "missing session token")
			return
		}

		tournamentID, err := m.Verify(tokenString)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired session token")
			return
		}

		if urlID := chi.URLParam(r, tournamentURLParam); urlID != "" && urlID != tournamentID {
			writeError(w, http.StatusForbidden, "session token does not belong to this tournament")
			return
		}

		next.ServeHTTP(w, r.WithContext(withTournamentID(r.Context(), tournamentID)))
	})
}
