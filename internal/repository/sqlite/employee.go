package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kfglabs/directory/internal/apperror"
	"github.com/kfglabs/directory/internal/sqlbuild"
	"github.com/kfglabs/directory/pkg/models"
)

const employeeCols = `id, first_name, last_name, email, extension, teams_link, department, office_location`

func scanEmployee(s scanner) (*models.Employee, error) {
	var e models.Employee
	if err := s.Scan(&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.Extension, &e.TeamsLink, &e.Department, &e.OfficeLocation); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *SQLiteRepo) CreateEmployee(ctx context.Context, e *models.Employee) (*models.Employee, error) {
	if e == nil {
		return nil, fmt.Errorf("employee is nil")
	}

	var count int
	row := r.conn.QueryRow(ctx, `SELECT COUNT(1) FROM employees WHERE email = ?`, e.Email)
	if err := row.Scan(&count); err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperror.Conflict(fmt.Sprintf("duplicate employee email: %s", e.Email))
	}

	res, err := r.conn.Exec(ctx,
		`INSERT INTO employees (first_name, last_name, email, extension, teams_link, department, office_location) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.FirstName, e.LastName, e.Email, e.Extension, e.TeamsLink, e.Department, e.OfficeLocation)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperror.Conflict(fmt.Sprintf("duplicate employee email: %s", e.Email))
		}
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return r.GetEmployee(ctx, id)
}

// SearchEmployees returns employees matching every supplied filter, ordered
// by last name. String filters match case-insensitive substrings; an empty
// filter returns all employees.
func (r *SQLiteRepo) SearchEmployees(ctx context.Context, f models.EmployeeFilter) ([]models.Employee, error) {
	var where sqlbuild.WhereClause
	where.Contains("first_name", f.FirstName)
	where.Contains("last_name", f.LastName)
	where.Contains("email", f.Email)
	where.Contains("department", f.Department)
	where.Contains("office_location", f.OfficeLocation)

	clause, args := where.Clause()
	query := `SELECT ` + employeeCols + ` FROM employees` + clause + ` ORDER BY last_name, first_name`

	rows, err := r.conn.QueryRows(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) GetEmployee(ctx context.Context, id int64) (*models.Employee, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+employeeCols+` FROM employees WHERE id = ?`, id)
	e, err := scanEmployee(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("employee", id)
		}
		return nil, err
	}
	return e, nil
}

func (r *SQLiteRepo) UpdateEmployee(ctx context.Context, id int64, p models.EmployeePatch) (*models.Employee, error) {
	var set sqlbuild.SetClause
	set.SetString("first_name", p.FirstName)
	set.SetString("last_name", p.LastName)
	set.SetString("email", p.Email)
	set.SetString("extension", p.Extension)
	set.SetString("teams_link", p.TeamsLink)
	set.SetString("department", p.Department)
	set.SetString("office_location", p.OfficeLocation)

	clause, args, err := set.Build()
	if err != nil {
		return nil, err
	}
	args = append(args, id)

	res, err := r.conn.Exec(ctx, `UPDATE employees SET `+clause+` WHERE id = ?`, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperror.Conflict("employee email already in use")
		}
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, apperror.NotFound("employee", id)
	}

	return r.GetEmployee(ctx, id)
}

func (r *SQLiteRepo) DeleteEmployee(ctx context.Context, id int64) error {
	res, err := r.conn.Exec(ctx, `DELETE FROM employees WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperror.NotFound("employee", id)
	}
	return nil
}

// SkillsOf lists the skills held by an employee; an unknown employee simply
// yields an empty list.
func (r *SQLiteRepo) SkillsOf(ctx context.Context, employeeID int64) ([]models.Skill, error) {
	rows, err := r.conn.QueryRows(ctx,
		`SELECT s.id, s.name, s.description
           FROM skills s
           JOIN employee_skills es ON s.id = es.skill_id
          WHERE es.employee_id = ?
          ORDER BY s.name`, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Skill{}
	for rows.Next() {
		var s models.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Description); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// FindBySkill lists employees holding a given skill.
func (r *SQLiteRepo) FindBySkill(ctx context.Context, skillID int64) ([]models.Employee, error) {
	rows, err := r.conn.QueryRows(ctx,
		`SELECT e.id, e.first_name, e.last_name, e.email, e.extension, e.teams_link, e.department, e.office_location
           FROM employees e
           JOIN employee_skills es ON e.id = es.employee_id
          WHERE es.skill_id = ?
          ORDER BY e.last_name, e.first_name`, skillID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

// AssignSkill links an employee to a skill. Both sides must exist; assigning
// the same skill twice is a conflict.
func (r *SQLiteRepo) AssignSkill(ctx context.Context, employeeID, skillID int64) error {
	if _, err := r.GetEmployee(ctx, employeeID); err != nil {
		return err
	}
	if _, err := r.GetSkill(ctx, skillID); err != nil {
		return err
	}

	if _, err := r.conn.Exec(ctx, `INSERT INTO employee_skills (employee_id, skill_id) VALUES (?, ?)`, employeeID, skillID); err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict(fmt.Sprintf("employee %d already has skill %d", employeeID, skillID))
		}
		return err
	}
	return nil
}

func (r *SQLiteRepo) UnassignSkill(ctx context.Context, employeeID, skillID int64) error {
	res, err := r.conn.Exec(ctx, `DELETE FROM employee_skills WHERE employee_id = ? AND skill_id = ?`, employeeID, skillID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperror.NotFound("skill assignment", fmt.Sprintf("%d/%d", employeeID, skillID))
	}
	return nil
}
