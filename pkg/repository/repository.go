package repository

import (
	"context"

	"github.com/kfglabs/directory/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.
//
// Shared conventions: Create fails with a Conflict error when the entity's
// natural unique key (email, skill name, username) is already taken. Get,
// Update and Delete fail with a NotFound error when no row has the given
// identity. Search and the relation queries return an empty slice, never an
// error, when nothing matches.

type EmployeeRepo interface {
	CreateEmployee(ctx context.Context, e *models.Employee) (*models.Employee, error)
	SearchEmployees(ctx context.Context, f models.EmployeeFilter) ([]models.Employee, error)
	GetEmployee(ctx context.Context, id int64) (*models.Employee, error)
	UpdateEmployee(ctx context.Context, id int64, p models.EmployeePatch) (*models.Employee, error)
	DeleteEmployee(ctx context.Context, id int64) error

	SkillsOf(ctx context.Context, employeeID int64) ([]models.Skill, error)
	FindBySkill(ctx context.Context, skillID int64) ([]models.Employee, error)
	AssignSkill(ctx context.Context, employeeID, skillID int64) error
	UnassignSkill(ctx context.Context, employeeID, skillID int64) error
}

type SkillRepo interface {
	CreateSkill(ctx context.Context, s *models.Skill) (*models.Skill, error)
	SearchSkills(ctx context.Context, f models.SkillFilter) ([]models.Skill, error)
	GetSkill(ctx context.Context, id int64) (*models.Skill, error)
	UpdateSkill(ctx context.Context, id int64, p models.SkillPatch) (*models.Skill, error)
	DeleteSkill(ctx context.Context, id int64) error
}

type UserRepo interface {
	RegisterUser(ctx context.Context, nu *models.NewUser) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	ListUsers(ctx context.Context, f models.UserFilter) ([]models.User, error)
	GetUser(ctx context.Context, username string) (*models.User, error)
	UpdateUser(ctx context.Context, username string, p models.UserPatch) (*models.User, error)
	DeleteUser(ctx context.Context, username string) error
}

// LookupRepo serves the distinct-value projections derived from employees.
type LookupRepo interface {
	Departments(ctx context.Context) ([]string, error)
	OfficeLocations(ctx context.Context) ([]string, error)
}
