package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/kfglabs/directory/api"
	dbfs "github.com/kfglabs/directory/db"
	"github.com/kfglabs/directory/internal/config"
	dbpkg "github.com/kfglabs/directory/internal/db"
	"github.com/kfglabs/directory/internal/repository/sqlite"
	"github.com/kfglabs/directory/pkg/models"
	"golang.org/x/crypto/bcrypt"
)

// setupServer wires the full router against a migrated in-memory database,
// exactly as cmd/server does on boot.
func setupServer(t *testing.T) (*mux.Router, *config.Config) {
	t.Helper()
	ctx := context.Background()

	cfg := &config.Config{
		Addr:          ":0",
		JWTSecret:     "routes-test-secret",
		APITimeout:    5 * time.Second,
		TokenDuration: time.Hour,
		BcryptCost:    bcrypt.MinCost,
	}

	database, err := dbpkg.New(ctx, "file:routestest?mode=memory&cache=shared", nil)
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := dbpkg.Migrate(ctx, database, dbfs.Migrations, dbfs.SeedFiles); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	// seed an admin account directly; registration never grants admin
	repo := sqlite.New(database, nil, cfg.BcryptCost)
	if _, err := repo.RegisterUser(ctx, &models.NewUser{Username: "root", Password: "pw123456", IsAdmin: true}); err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}

	return api.SetupRoutes(cfg, "test", "now", database), cfg
}

func doJSON(t *testing.T, router *mux.Router, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var bodyReader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, bodyReader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	res := w.Result()
	defer res.Body.Close()
	b, _ := io.ReadAll(res.Body)
	return res, b
}

func TestRouterEndToEnd(t *testing.T) {
	router, _ := setupServer(t)

	// open endpoints answer without a token
	res, _ := doJSON(t, router, http.MethodGet, "/health", "", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("health: expected 200 got %d", res.StatusCode)
	}

	// writes are rejected while anonymous
	res, _ = doJSON(t, router, http.MethodPost, "/employees", "", map[string]any{
		"firstName": "Eve", "lastName": "Eng", "email": "eve@example.com",
	})
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("anonymous create: expected 401 got %d", res.StatusCode)
	}

	// self-registration yields a working, non-admin token
	res, b := doJSON(t, router, http.MethodPost, "/auth/register", "", map[string]any{
		"username": "amy", "password": "pw123456", "firstName": "Amy",
	})
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201 got %d (body: %s)", res.StatusCode, string(b))
	}
	var reg struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	if err := json.Unmarshal(b, &reg); err != nil || reg.Token == "" {
		t.Fatalf("register: bad response %s", string(b))
	}
	if reg.User.IsAdmin {
		t.Fatalf("register: expected non-admin user, got %#v", reg.User)
	}
	amyToken := reg.Token

	res, _ = doJSON(t, router, http.MethodPost, "/employees", amyToken, map[string]any{
		"firstName": "Eve", "lastName": "Eng", "email": "eve@example.com",
	})
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("non-admin create: expected 401 got %d", res.StatusCode)
	}

	// the seeded admin logs in and can write
	res, b = doJSON(t, router, http.MethodPost, "/auth/login", "", map[string]any{
		"username": "root", "password": "pw123456",
	})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("login: expected 200 got %d (body: %s)", res.StatusCode, string(b))
	}
	var login struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(b, &login); err != nil || login.Token == "" {
		t.Fatalf("login: bad response %s", string(b))
	}
	rootToken := login.Token

	res, b = doJSON(t, router, http.MethodPost, "/employees", rootToken, map[string]any{
		"firstName": "Eve", "lastName": "Eng", "email": "eve@example.com", "department": "Platform",
	})
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("admin create: expected 201 got %d (body: %s)", res.StatusCode, string(b))
	}
	var created struct {
		Employee models.Employee `json:"employee"`
	}
	if err := json.Unmarshal(b, &created); err != nil || created.Employee.ID == 0 {
		t.Fatalf("admin create: bad response %s", string(b))
	}

	// reads are open to anyone, filters narrow the list
	res, b = doJSON(t, router, http.MethodGet, "/employees?lastName=eng", "", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("search: expected 200 got %d", res.StatusCode)
	}
	var listed struct {
		Employees []models.Employee `json:"employees"`
	}
	if err := json.Unmarshal(b, &listed); err != nil {
		t.Fatalf("search: bad response %s", string(b))
	}
	if len(listed.Employees) != 1 || listed.Employees[0].Email != "eve@example.com" {
		t.Fatalf("search: unexpected result %#v", listed.Employees)
	}

	// the new department shows up in the lookup projection
	res, b = doJSON(t, router, http.MethodGet, "/departments", "", nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("departments: expected 200 got %d", res.StatusCode)
	}
	if !strings.Contains(string(b), "Platform") {
		t.Fatalf("departments: expected Platform in %s", string(b))
	}

	// users may read their own account but nobody else's
	res, _ = doJSON(t, router, http.MethodGet, "/users/amy", amyToken, nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("self get: expected 200 got %d", res.StatusCode)
	}
	res, _ = doJSON(t, router, http.MethodGet, "/users/root", amyToken, nil)
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("other get: expected 401 got %d", res.StatusCode)
	}
	res, _ = doJSON(t, router, http.MethodGet, "/users/amy", rootToken, nil)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("admin get: expected 200 got %d", res.StatusCode)
	}

	// a user cannot grant themselves admin through their own PATCH route
	res, b = doJSON(t, router, http.MethodPatch, "/users/amy", amyToken, map[string]any{"isadmin": true})
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("self isadmin patch: expected 401 got %d (body: %s)", res.StatusCode, string(b))
	}
	res, b = doJSON(t, router, http.MethodPost, "/auth/login", "", map[string]any{
		"username": "amy", "password": "pw123456",
	})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("relogin: expected 200 got %d", res.StatusCode)
	}
	var relogin struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(b, &relogin); err != nil || relogin.Token == "" {
		t.Fatalf("relogin: bad response %s", string(b))
	}
	res, _ = doJSON(t, router, http.MethodPost, "/employees", relogin.Token, map[string]any{
		"firstName": "Mal", "lastName": "Ory", "email": "mal@example.com",
	})
	if res.StatusCode != http.StatusUnauthorized {
		t.Fatalf("post-patch create: expected 401 got %d", res.StatusCode)
	}

	// an admin may grant the flag on the same route
	res, b = doJSON(t, router, http.MethodPatch, "/users/amy", rootToken, map[string]any{"isadmin": true})
	if res.StatusCode != http.StatusOK {
		t.Fatalf("admin isadmin patch: expected 200 got %d (body: %s)", res.StatusCode, string(b))
	}
	var promoted struct {
		User models.User `json:"user"`
	}
	if err := json.Unmarshal(b, &promoted); err != nil || !promoted.User.IsAdmin {
		t.Fatalf("admin isadmin patch: bad response %s", string(b))
	}

	// unmatched routes answer with the error envelope
	res, b = doJSON(t, router, http.MethodGet, "/nope", "", nil)
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("unmatched: expected 404 got %d", res.StatusCode)
	}
	if !strings.Contains(string(b), `"error"`) {
		t.Fatalf("unmatched: expected error envelope, got %s", string(b))
	}
}
