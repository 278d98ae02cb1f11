package api

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/kfglabs/directory/internal/apperror"
	"github.com/kfglabs/directory/pkg/models"
	"github.com/kfglabs/directory/pkg/repository"
)

type AuthHandler struct {
	userRepo      repository.UserRepo
	jwtSecret     string
	tokenDuration time.Duration
}

// NewAuthHandler creates a new AuthHandler with required dependencies.
func NewAuthHandler(ur repository.UserRepo, jwtSecret string, tokenDuration time.Duration) *AuthHandler {
	return &AuthHandler{userRepo: ur, jwtSecret: jwtSecret, tokenDuration: tokenDuration}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// createToken signs the identity claims the middleware later decodes.
func createToken(u *models.User, secret string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": u.Username,
		"isadmin":  u.IsAdmin,
		"exp":      time.Now().Add(ttl).Unix(),
	})
	return token.SignedString([]byte(secret))
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, apperror.Invalid("could not read request body"))
		return
	}
	if err := validateBody(r.Context(), "userRegister", body); err != nil {
		writeError(w, err)
		return
	}

	var nu models.NewUser
	if err := json.Unmarshal(body, &nu); err != nil {
		writeError(w, apperror.Invalid("request body is not valid JSON"))
		return
	}
	// self-registration never grants admin; that path goes through /users
	nu.IsAdmin = false

	user, err := h.userRepo.RegisterUser(r.Context(), &nu)
	if err != nil {
		writeError(w, err)
		return
	}

	tokenStr, err := createToken(user, h.jwtSecret, h.tokenDuration)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, authResponse{Token: tokenStr, User: user}, http.StatusCreated)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, apperror.Invalid("could not read request body"))
		return
	}
	if err := validateBody(r.Context(), "userAuth", body); err != nil {
		writeError(w, err)
		return
	}

	var req loginRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, apperror.Invalid("request body is not valid JSON"))
		return
	}

	user, err := h.userRepo.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	tokenStr, err := createToken(user, h.jwtSecret, h.tokenDuration)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, authResponse{Token: tokenStr, User: user}, http.StatusOK)
}
