package mock

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/kfglabs/directory/internal/apperror"
	"github.com/kfglabs/directory/pkg/models"
	"github.com/kfglabs/directory/pkg/repository"
)

// Test helpers and mocks. Each mock keeps records in memory and honors the
// same Conflict/NotFound semantics as the real repositories; setting Err
// forces every method of that mock to fail.
type Mocks struct {
	Employees *EmployeeRepoMock
	Users     *UserRepoMock
	Skills    *SkillRepoMock
}

func NewMocks() *Mocks {
	return &Mocks{
		Employees: &EmployeeRepoMock{Stored: map[int64]models.Employee{}, Assigned: map[[2]int64]bool{}},
		Users:     &UserRepoMock{Stored: map[string]models.User{}, Passwords: map[string]string{}},
		Skills:    &SkillRepoMock{Stored: map[int64]models.Skill{}},
	}
}

var _ repository.EmployeeRepo = (*EmployeeRepoMock)(nil)
var _ repository.UserRepo = (*UserRepoMock)(nil)
var _ repository.SkillRepo = (*SkillRepoMock)(nil)
var _ repository.LookupRepo = (*EmployeeRepoMock)(nil)

type EmployeeRepoMock struct {
	Stored   map[int64]models.Employee
	Assigned map[[2]int64]bool
	NextID   int64
	Err      error
}

func (m *EmployeeRepoMock) CreateEmployee(ctx context.Context, e *models.Employee) (*models.Employee, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, other := range m.Stored {
		if other.Email == e.Email {
			return nil, apperror.Conflict(fmt.Sprintf("duplicate employee email: %s", e.Email))
		}
	}
	m.NextID++
	stored := *e
	stored.ID = m.NextID
	m.Stored[stored.ID] = stored
	return &stored, nil
}

func (m *EmployeeRepoMock) SearchEmployees(ctx context.Context, f models.EmployeeFilter) ([]models.Employee, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := []models.Employee{}
	for _, e := range m.Stored {
		if containsFold(e.FirstName, f.FirstName) &&
			containsFold(e.LastName, f.LastName) &&
			containsFold(e.Email, f.Email) &&
			containsFold(e.Department, f.Department) &&
			containsFold(e.OfficeLocation, f.OfficeLocation) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].FirstName < out[j].FirstName
	})
	return out, nil
}

func (m *EmployeeRepoMock) GetEmployee(ctx context.Context, id int64) (*models.Employee, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	e, ok := m.Stored[id]
	if !ok {
		return nil, apperror.NotFound("employee", id)
	}
	return &e, nil
}

func (m *EmployeeRepoMock) UpdateEmployee(ctx context.Context, id int64, p models.EmployeePatch) (*models.Employee, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	e, ok := m.Stored[id]
	if !ok {
		return nil, apperror.NotFound("employee", id)
	}
	if p.FirstName == nil && p.LastName == nil && p.Email == nil && p.Extension == nil &&
		p.TeamsLink == nil && p.Department == nil && p.OfficeLocation == nil {
		return nil, apperror.Invalid("no data")
	}
	apply(&e.FirstName, p.FirstName)
	apply(&e.LastName, p.LastName)
	apply(&e.Email, p.Email)
	apply(&e.Extension, p.Extension)
	apply(&e.TeamsLink, p.TeamsLink)
	apply(&e.Department, p.Department)
	apply(&e.OfficeLocation, p.OfficeLocation)
	m.Stored[id] = e
	return &e, nil
}

func (m *EmployeeRepoMock) DeleteEmployee(ctx context.Context, id int64) error {
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Stored[id]; !ok {
		return apperror.NotFound("employee", id)
	}
	delete(m.Stored, id)
	return nil
}

func (m *EmployeeRepoMock) SkillsOf(ctx context.Context, employeeID int64) ([]models.Skill, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return []models.Skill{}, nil
}

func (m *EmployeeRepoMock) FindBySkill(ctx context.Context, skillID int64) ([]models.Employee, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := []models.Employee{}
	for pair := range m.Assigned {
		if pair[1] == skillID {
			if e, ok := m.Stored[pair[0]]; ok {
				out = append(out, e)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastName < out[j].LastName })
	return out, nil
}

func (m *EmployeeRepoMock) AssignSkill(ctx context.Context, employeeID, skillID int64) error {
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Stored[employeeID]; !ok {
		return apperror.NotFound("employee", employeeID)
	}
	pair := [2]int64{employeeID, skillID}
	if m.Assigned[pair] {
		return apperror.Conflict(fmt.Sprintf("employee %d already has skill %d", employeeID, skillID))
	}
	m.Assigned[pair] = true
	return nil
}

func (m *EmployeeRepoMock) UnassignSkill(ctx context.Context, employeeID, skillID int64) error {
	if m.Err != nil {
		return m.Err
	}
	pair := [2]int64{employeeID, skillID}
	if !m.Assigned[pair] {
		return apperror.NotFound("skill assignment", fmt.Sprintf("%d/%d", employeeID, skillID))
	}
	delete(m.Assigned, pair)
	return nil
}

func (m *EmployeeRepoMock) Departments(ctx context.Context) ([]string, error) {
	return m.distinct(func(e models.Employee) string { return e.Department })
}

func (m *EmployeeRepoMock) OfficeLocations(ctx context.Context) ([]string, error) {
	return m.distinct(func(e models.Employee) string { return e.OfficeLocation })
}

func (m *EmployeeRepoMock) distinct(field func(models.Employee) string) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	seen := map[string]bool{}
	out := []string{}
	for _, e := range m.Stored {
		v := field(e)
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out, nil
}

type UserRepoMock struct {
	Stored    map[string]models.User
	Passwords map[string]string
	Err       error
}

func (m *UserRepoMock) RegisterUser(ctx context.Context, nu *models.NewUser) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if _, ok := m.Stored[nu.Username]; ok {
		return nil, apperror.Conflict(fmt.Sprintf("duplicate username: %s", nu.Username))
	}
	u := models.User{
		Username:  nu.Username,
		FirstName: nu.FirstName,
		LastName:  nu.LastName,
		Email:     nu.Email,
		IsAdmin:   nu.IsAdmin,
	}
	m.Stored[nu.Username] = u
	m.Passwords[nu.Username] = nu.Password
	return &u, nil
}

func (m *UserRepoMock) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	u, ok := m.Stored[username]
	if !ok || m.Passwords[username] != password {
		return nil, apperror.Unauthorized("invalid username/password")
	}
	return &u, nil
}

func (m *UserRepoMock) ListUsers(ctx context.Context, f models.UserFilter) ([]models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := []models.User{}
	for _, u := range m.Stored {
		if f.IsAdmin != nil && u.IsAdmin != *f.IsAdmin {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (m *UserRepoMock) GetUser(ctx context.Context, username string) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	u, ok := m.Stored[username]
	if !ok {
		return nil, apperror.NotFound("user", username)
	}
	return &u, nil
}

func (m *UserRepoMock) UpdateUser(ctx context.Context, username string, p models.UserPatch) (*models.User, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	u, ok := m.Stored[username]
	if !ok {
		return nil, apperror.NotFound("user", username)
	}
	if p.Password == nil && p.FirstName == nil && p.LastName == nil && p.Email == nil && p.IsAdmin == nil {
		return nil, apperror.Invalid("no data")
	}
	if p.Password != nil {
		m.Passwords[username] = *p.Password
	}
	apply(&u.FirstName, p.FirstName)
	apply(&u.LastName, p.LastName)
	apply(&u.Email, p.Email)
	if p.IsAdmin != nil {
		u.IsAdmin = *p.IsAdmin
	}
	m.Stored[username] = u
	return &u, nil
}

func (m *UserRepoMock) DeleteUser(ctx context.Context, username string) error {
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Stored[username]; !ok {
		return apperror.NotFound("user", username)
	}
	delete(m.Stored, username)
	delete(m.Passwords, username)
	return nil
}

type SkillRepoMock struct {
	Stored map[int64]models.Skill
	NextID int64
	Err    error
}

func (m *SkillRepoMock) CreateSkill(ctx context.Context, s *models.Skill) (*models.Skill, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, other := range m.Stored {
		if strings.EqualFold(other.Name, s.Name) {
			return nil, apperror.Conflict(fmt.Sprintf("duplicate skill: %s", s.Name))
		}
	}
	m.NextID++
	stored := *s
	stored.ID = m.NextID
	m.Stored[stored.ID] = stored
	return &stored, nil
}

func (m *SkillRepoMock) SearchSkills(ctx context.Context, f models.SkillFilter) ([]models.Skill, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	out := []models.Skill{}
	for _, s := range m.Stored {
		if containsFold(s.Name, f.Name) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *SkillRepoMock) GetSkill(ctx context.Context, id int64) (*models.Skill, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	s, ok := m.Stored[id]
	if !ok {
		return nil, apperror.NotFound("skill", id)
	}
	return &s, nil
}

func (m *SkillRepoMock) UpdateSkill(ctx context.Context, id int64, p models.SkillPatch) (*models.Skill, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	s, ok := m.Stored[id]
	if !ok {
		return nil, apperror.NotFound("skill", id)
	}
	if p.Name == nil && p.Description == nil {
		return nil, apperror.Invalid("no data")
	}
	apply(&s.Name, p.Name)
	apply(&s.Description, p.Description)
	m.Stored[id] = s
	return &s, nil
}

func (m *SkillRepoMock) DeleteSkill(ctx context.Context, id int64) error {
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Stored[id]; !ok {
		return apperror.NotFound("skill", id)
	}
	delete(m.Stored, id)
	return nil
}

func apply(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func containsFold(haystack string, needle *string) bool {
	if needle == nil {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(*needle))
}
