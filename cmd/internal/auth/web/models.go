package web

import (
	"time"

	"warasin/cmd/security/token"
)

type loginRequest struct {
	Token string `json:"token"`
}

type sessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          token.Claims `json:"user"`
	ExpiresAt     *time.Time   `json:"expires_at,omitempty"`
}

func toSessionResponse(user token.Claims) sessionResponse {
	resp := sessionResponse{Authenticated: user != nil, User: user}
	if exp, ok := user.ExpiresAt(); ok {
		resp.ExpiresAt = &exp
	}
	return resp
}
