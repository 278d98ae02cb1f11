package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"log/slog"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
)

type ctxKey string

const ctxIdentity ctxKey = "identity"

// package-level logger used by middleware and helpers; can be set via SetLogger from caller
var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger installs a logger for the api package. Passing nil is a no-op.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// Identity is the caller identity decoded from a bearer token.
type Identity struct {
	Username string
	IsAdmin  bool
}

// IdentityFrom returns the identity attached by AuthenticateJWT, if any.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxIdentity).(Identity)
	return id, ok
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote", r.RemoteAddr),
		)
		next.ServeHTTP(w, r)
	})
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic", slog.Any("err", err))
				writeErrorStatus(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// AuthenticateJWT attaches a caller identity to the request context when a
// valid bearer token is present. It never rejects a request: a missing,
// malformed or expired token just leaves the request anonymous, and the
// guards below decide later whether that matters.
func AuthenticateJWT(secret string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id, ok := identityFromHeader(r.Header.Get("Authorization"), secret); ok {
				r = r.WithContext(context.WithValue(r.Context(), ctxIdentity, id))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func identityFromHeader(header, secret string) (Identity, bool) {
	if header == "" {
		return Identity{}, false
	}

	// the scheme is matched case-insensitively, "bearer x" is as good as
	// "Bearer x"
	const scheme = "Bearer "
	if len(header) <= len(scheme) || !strings.EqualFold(header[:len(scheme)], scheme) {
		return Identity{}, false
	}
	tokenString := strings.TrimSpace(header[len(scheme):])
	if tokenString == "" {
		return Identity{}, false
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return Identity{}, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, false
	}
	username, _ := claims["username"].(string)
	if username == "" {
		return Identity{}, false
	}
	isAdmin, _ := claims["isadmin"].(bool)

	return Identity{Username: username, IsAdmin: isAdmin}, true
}

// RequireLoggedIn admits any authenticated caller.
func RequireLoggedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := IdentityFrom(r.Context()); !ok {
			writeErrorStatus(w, "authentication required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin admits only callers whose token carries the admin flag.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFrom(r.Context())
		if !ok || !id.IsAdmin {
			writeErrorStatus(w, "admin privileges required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSelfOrAdmin admits an admin, or the user named by the {username}
// path variable acting on their own account.
func RequireSelfOrAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFrom(r.Context())
		if !ok || (!id.IsAdmin && id.Username != mux.Vars(r)["username"]) {
			writeErrorStatus(w, "not authorized for this user", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
