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

func (r *SQLiteRepo) CreateSkill(ctx context.Context, s *models.Skill) (*models.Skill, error) {
	if s == nil {
		return nil, fmt.Errorf("skill is nil")
	}

	// name column is COLLATE NOCASE, so this also catches case variants
	var count int
	row := r.conn.QueryRow(ctx, `SELECT COUNT(1) FROM skills WHERE name = ?`, s.Name)
	if err := row.Scan(&count); err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperror.Conflict(fmt.Sprintf("duplicate skill: %s", s.Name))
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO skills (name, description) VALUES (?, ?)`, s.Name, s.Description)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperror.Conflict(fmt.Sprintf("duplicate skill: %s", s.Name))
		}
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return r.GetSkill(ctx, id)
}

// SearchSkills returns skills ordered by name. The name filter matches
// case-insensitive substrings; minEmployees keeps only skills held by at
// least that many employees.
func (r *SQLiteRepo) SearchSkills(ctx context.Context, f models.SkillFilter) ([]models.Skill, error) {
	var where sqlbuild.WhereClause
	where.Contains("name", f.Name)
	where.AtLeast(`(SELECT COUNT(1) FROM employee_skills es WHERE es.skill_id = skills.id)`, f.MinEmployees)

	clause, args := where.Clause()
	query := `SELECT id, name, description FROM skills` + clause + ` ORDER BY name`

	rows, err := r.conn.QueryRows(ctx, query, args...)
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

func (r *SQLiteRepo) GetSkill(ctx context.Context, id int64) (*models.Skill, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, name, description FROM skills WHERE id = ?`, id)
	var s models.Skill
	if err := row.Scan(&s.ID, &s.Name, &s.Description); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("skill", id)
		}
		return nil, err
	}
	return &s, nil
}

func (r *SQLiteRepo) UpdateSkill(ctx context.Context, id int64, p models.SkillPatch) (*models.Skill, error) {
	var set sqlbuild.SetClause
	set.SetString("name", p.Name)
	set.SetString("description", p.Description)

	clause, args, err := set.Build()
	if err != nil {
		return nil, err
	}
	args = append(args, id)

	res, err := r.conn.Exec(ctx, `UPDATE skills SET `+clause+` WHERE id = ?`, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperror.Conflict("skill name already in use")
		}
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, apperror.NotFound("skill", id)
	}

	return r.GetSkill(ctx, id)
}

func (r *SQLiteRepo) DeleteSkill(ctx context.Context, id int64) error {
	res, err := r.conn.Exec(ctx, `DELETE FROM skills WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperror.NotFound("skill", id)
	}
	return nil
}
