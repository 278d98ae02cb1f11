package sqlite

import (
	"context"
)

// Departments and OfficeLocations are distinct-value projections over the
// employees table, not independently owned aggregates.

func (r *SQLiteRepo) Departments(ctx context.Context) ([]string, error) {
	return r.distinctColumn(ctx, `SELECT DISTINCT department FROM employees WHERE department <> '' ORDER BY department`)
}

func (r *SQLiteRepo) OfficeLocations(ctx context.Context) ([]string, error) {
	return r.distinctColumn(ctx, `SELECT DISTINCT office_location FROM employees WHERE office_location <> '' ORDER BY office_location`)
}

func (r *SQLiteRepo) distinctColumn(ctx context.Context, query string) ([]string, error) {
	rows, err := r.conn.QueryRows(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
