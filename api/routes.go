package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/kfglabs/directory/internal/config"
	"github.com/kfglabs/directory/internal/db"
	"github.com/kfglabs/directory/internal/repository/sqlite"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, db *db.DB) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)
	r.Use(AuthenticateJWT(cfg.JWTSecret))

	// Repository
	repo := sqlite.New(db, nil, cfg.BcryptCost)

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(repo, cfg.JWTSecret, cfg.TokenDuration)
	employeesHandler := NewEmployeesHandler(repo)
	skillsHandler := NewSkillsHandler(repo, repo)
	usersHandler := NewUsersHandler(repo)
	lookupsHandler := NewLookupsHandler(repo)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")
	r.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Employees
	r.Handle("/employees", RequireAdmin(http.HandlerFunc(employeesHandler.Create))).Methods("POST")
	r.HandleFunc("/employees", employeesHandler.List).Methods("GET")
	r.HandleFunc("/employees/{id}", employeesHandler.Get).Methods("GET")
	r.Handle("/employees/{id}", RequireAdmin(http.HandlerFunc(employeesHandler.Update))).Methods("PATCH")
	r.Handle("/employees/{id}", RequireAdmin(http.HandlerFunc(employeesHandler.Delete))).Methods("DELETE")
	r.HandleFunc("/employees/{id}/skills", employeesHandler.Skills).Methods("GET")
	r.Handle("/employees/{id}/skills/{skillID}", RequireAdmin(http.HandlerFunc(employeesHandler.AssignSkill))).Methods("POST")
	r.Handle("/employees/{id}/skills/{skillID}", RequireAdmin(http.HandlerFunc(employeesHandler.UnassignSkill))).Methods("DELETE")

	// Skills
	r.Handle("/skills", RequireAdmin(http.HandlerFunc(skillsHandler.Create))).Methods("POST")
	r.HandleFunc("/skills", skillsHandler.List).Methods("GET")
	r.HandleFunc("/skills/{id}", skillsHandler.Get).Methods("GET")
	r.Handle("/skills/{id}", RequireAdmin(http.HandlerFunc(skillsHandler.Update))).Methods("PATCH")
	r.Handle("/skills/{id}", RequireAdmin(http.HandlerFunc(skillsHandler.Delete))).Methods("DELETE")
	r.HandleFunc("/skills/{id}/employees", skillsHandler.Employees).Methods("GET")

	// Users
	r.Handle("/users", RequireAdmin(http.HandlerFunc(usersHandler.Create))).Methods("POST")
	r.Handle("/users", RequireAdmin(http.HandlerFunc(usersHandler.List))).Methods("GET")
	r.Handle("/users/{username}", RequireSelfOrAdmin(http.HandlerFunc(usersHandler.Get))).Methods("GET")
	r.Handle("/users/{username}", RequireSelfOrAdmin(http.HandlerFunc(usersHandler.Update))).Methods("PATCH")
	r.Handle("/users/{username}", RequireSelfOrAdmin(http.HandlerFunc(usersHandler.Delete))).Methods("DELETE")

	// Lookups
	r.HandleFunc("/departments", lookupsHandler.Departments).Methods("GET")
	r.HandleFunc("/officeLocations", lookupsHandler.OfficeLocations).Methods("GET")

	r.NotFoundHandler = http.HandlerFunc(notFoundHandler)

	return r
}
