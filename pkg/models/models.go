package models

// Domain models matching the database schema in db/migrations/0001_init.sql.
// Patch types carry optional new values for partial updates: a nil field
// means "leave unchanged". Filter types carry optional search filters: a nil
// field means "do not filter on this column".

type Employee struct {
	ID             int64  `json:"id" db:"id"`
	FirstName      string `json:"firstName" db:"first_name"`
	LastName       string `json:"lastName" db:"last_name"`
	Email          string `json:"email" db:"email"`
	Extension      string `json:"extension,omitempty" db:"extension"`
	TeamsLink      string `json:"teamsLink,omitempty" db:"teams_link"`
	Department     string `json:"department,omitempty" db:"department"`
	OfficeLocation string `json:"officeLocation,omitempty" db:"office_location"`
}

type EmployeePatch struct {
	FirstName      *string `json:"firstName,omitempty"`
	LastName       *string `json:"lastName,omitempty"`
	Email          *string `json:"email,omitempty"`
	Extension      *string `json:"extension,omitempty"`
	TeamsLink      *string `json:"teamsLink,omitempty"`
	Department     *string `json:"department,omitempty"`
	OfficeLocation *string `json:"officeLocation,omitempty"`
}

type EmployeeFilter struct {
	FirstName      *string `json:"firstName,omitempty"`
	LastName       *string `json:"lastName,omitempty"`
	Email          *string `json:"email,omitempty"`
	Department     *string `json:"department,omitempty"`
	OfficeLocation *string `json:"officeLocation,omitempty"`
}

type Skill struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description,omitempty" db:"description"`
}

type SkillPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

type SkillFilter struct {
	Name *string `json:"name,omitempty"`
	// MinEmployees keeps only skills held by at least this many employees.
	MinEmployees *int64 `json:"minEmployees,omitempty"`
}

// User is the public projection of an account; the password hash never
// leaves the repository layer.
type User struct {
	Username  string `json:"username" db:"username"`
	FirstName string `json:"firstName,omitempty" db:"first_name"`
	LastName  string `json:"lastName,omitempty" db:"last_name"`
	Email     string `json:"email,omitempty" db:"email"`
	IsAdmin   bool   `json:"isadmin" db:"is_admin"`
}

// NewUser is account-creation input; Password is plaintext and is hashed
// before anything is stored.
type NewUser struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"isadmin"`
}

type UserPatch struct {
	Password  *string `json:"password,omitempty"`
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Email     *string `json:"email,omitempty"`
	IsAdmin   *bool   `json:"isadmin,omitempty"`
}

type UserFilter struct {
	IsAdmin *bool `json:"isadmin,omitempty"`
}
