package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"solidarity-api/internal/handler/http/respond"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

// TokenHandler returns the POST /auth/token handler. It validates
// the submitted credentials against the configured admin account and
// issues a signed JWT on success. Failed attempts are logged without
// the submitted password.
func TokenHandler(cfg *Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respond.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
			return
		}

		if !cfg.checkCredentials(req.Email, req.Password) {
			slog.Warn("authentication failed",
				slog.String("email", req.Email),
				slog.String("remote_addr", r.RemoteAddr),
			)
			respond.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}

		expiresAt := time.Now().Add(cfg.TokenTTL)
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub":  cfg.AdminEmail,
			"role": "admin",
			"iat":  time.Now().Unix(),
			"exp":  expiresAt.Unix(),
		})
		signed, err := token.SignedString(cfg.Secret)
		if err != nil {
			respond.SafeError(w, http.StatusInternalServerError, err)
			return
		}

		slog.Info("admin token issued", slog.Time("expires_at", expiresAt))
		respond.JSON(w, http.StatusOK, tokenResponse{
			Token:     signed,
			ExpiresAt: expiresAt.Unix(),
		})
	}
}
