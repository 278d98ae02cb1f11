package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kfglabs/directory/internal/apperror"
	"github.com/kfglabs/directory/internal/sqlbuild"
	"github.com/kfglabs/directory/pkg/models"
	"golang.org/x/crypto/bcrypt"
)

const userCols = `username, first_name, last_name, email, is_admin`

func scanUser(s scanner) (*models.User, error) {
	var u models.User
	if err := s.Scan(&u.Username, &u.FirstName, &u.LastName, &u.Email, &u.IsAdmin); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *SQLiteRepo) RegisterUser(ctx context.Context, nu *models.NewUser) (*models.User, error) {
	if nu == nil {
		return nil, fmt.Errorf("user is nil")
	}

	var count int
	row := r.conn.QueryRow(ctx, `SELECT COUNT(1) FROM users WHERE username = ?`, nu.Username)
	if err := row.Scan(&count); err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperror.Conflict(fmt.Sprintf("duplicate username: %s", nu.Username))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(nu.Password), r.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if _, err := r.conn.Exec(ctx,
		`INSERT INTO users (username, password_hash, first_name, last_name, email, is_admin) VALUES (?, ?, ?, ?, ?, ?)`,
		nu.Username, string(hash), nu.FirstName, nu.LastName, nu.Email, nu.IsAdmin); err != nil {
		if isUniqueViolation(err) {
			return nil, apperror.Conflict(fmt.Sprintf("duplicate username: %s", nu.Username))
		}
		return nil, err
	}

	return r.GetUser(ctx, nu.Username)
}

// Authenticate checks a username/password pair and returns the public
// projection on success. The stored hash never leaves this method's scope.
func (r *SQLiteRepo) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT username, password_hash, first_name, last_name, email, is_admin FROM users WHERE username = ?`, username)

	var u models.User
	var hash string
	if err := row.Scan(&u.Username, &hash, &u.FirstName, &u.LastName, &u.Email, &u.IsAdmin); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.Unauthorized("invalid username/password")
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, apperror.Unauthorized("invalid username/password")
	}

	return &u, nil
}

func (r *SQLiteRepo) ListUsers(ctx context.Context, f models.UserFilter) ([]models.User, error) {
	var where sqlbuild.WhereClause
	where.EqualsBool("is_admin", f.IsAdmin)

	clause, args := where.Clause()
	query := `SELECT ` + userCols + ` FROM users` + clause + ` ORDER BY username`

	rows, err := r.conn.QueryRows(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) GetUser(ctx context.Context, username string) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE username = ?`, username)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("user", username)
		}
		return nil, err
	}
	return u, nil
}

func (r *SQLiteRepo) UpdateUser(ctx context.Context, username string, p models.UserPatch) (*models.User, error) {
	var set sqlbuild.SetClause
	if p.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*p.Password), r.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		set.Set("password_hash", string(hash))
	}
	set.SetString("first_name", p.FirstName)
	set.SetString("last_name", p.LastName)
	set.SetString("email", p.Email)
	set.SetBool("is_admin", p.IsAdmin)

	clause, args, err := set.Build()
	if err != nil {
		return nil, err
	}
	args = append(args, username)

	res, err := r.conn.Exec(ctx, `UPDATE users SET `+clause+` WHERE username = ?`, args...)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, apperror.NotFound("user", username)
	}

	return r.GetUser(ctx, username)
}

func (r *SQLiteRepo) DeleteUser(ctx context.Context, username string) error {
	res, err := r.conn.Exec(ctx, `DELETE FROM users WHERE username = ?`, username)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperror.NotFound("user", username)
	}
	return nil
}
