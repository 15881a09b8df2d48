package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

/*
auth method    resolves the participant id for a request.
A bearer token yields the stable "sub" claim. Without one the client
supplies its session id (header or query param, the id is opaque to the
engine); a client with neither gets a fresh anonymous id, mirroring
anonymous sign-in.
*/
func (s *server) auth(r *http.Request) (string, error) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if token == "" {
		if pid := r.Header.Get("X-Participant-Id"); pid != "" {
			return pid, nil
		}
		if pid := r.URL.Query().Get("pid"); pid != "" {
			return pid, nil
		}
		return "anon-" + uuid.NewString(), nil
	}
	validToken, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.config.JwtSecret), nil
	})
	if err != nil || !validToken.Valid {
		return "", fmt.Errorf("invalid token: %w", err)
	}
	mapClaims, ok := validToken.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid map claims")
	}
	v, ok := mapClaims["sub"]
	if !ok {
		return "", fmt.Errorf("participant id not found")
	}
	participantId, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("invalid participant id")
	}
	return participantId, nil
}
