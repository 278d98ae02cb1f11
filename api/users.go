package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/kfglabs/directory/internal/apperror"
	"github.com/kfglabs/directory/pkg/models"
	"github.com/kfglabs/directory/pkg/repository"
)

type UsersHandler struct {
	userRepo repository.UserRepo
}

func NewUsersHandler(ur repository.UserRepo) *UsersHandler {
	return &UsersHandler{userRepo: ur}
}

// Create is the admin path for adding accounts; unlike Register it returns
// the user, not a token for them.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	user, err := h.userRepo.RegisterUser(r.Context(), &nu)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]any{"user": user}, http.StatusCreated)
}

func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filters := map[string]any{}
	var f models.UserFilter
	if q.Has("isadmin") {
		b, err := strconv.ParseBool(q.Get("isadmin"))
		if err != nil {
			writeError(w, apperror.Invalid("isadmin must be a boolean"))
			return
		}
		filters["isadmin"] = b
		f.IsAdmin = &b
	}
	for key := range q {
		if _, ok := filters[key]; !ok {
			filters[key] = q.Get(key)
		}
	}
	if err := validateQuery(r.Context(), "userSearch", filters); err != nil {
		writeError(w, err)
		return
	}

	users, err := h.userRepo.ListUsers(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]any{"users": users}, http.StatusOK)
}

func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	user, err := h.userRepo.GetUser(r.Context(), username)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]any{"user": user}, http.StatusOK)
}

func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, apperror.Invalid("could not read request body"))
		return
	}
	if err := validateBody(r.Context(), "userUpdate", body); err != nil {
		writeError(w, err)
		return
	}

	var p models.UserPatch
	if err := json.Unmarshal(body, &p); err != nil {
		writeError(w, apperror.Invalid("request body is not valid JSON"))
		return
	}

	// only an admin may change the admin flag; the self-or-admin guard on
	// this route also admits the account owner
	if p.IsAdmin != nil {
		if id, ok := IdentityFrom(r.Context()); !ok || !id.IsAdmin {
			writeError(w, apperror.Unauthorized("admin privileges required to change isadmin"))
			return
		}
	}

	user, err := h.userRepo.UpdateUser(r.Context(), username, p)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]any{"user": user}, http.StatusOK)
}

func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	if err := h.userRepo.DeleteUser(r.Context(), username); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, map[string]any{"deleted": username}, http.StatusOK)
}
