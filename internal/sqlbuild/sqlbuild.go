// Package sqlbuild assembles parameterized fragments for the dynamic parts
// of repository queries: the SET list of a partial update and the WHERE list
// of a filtered search. Column names are always fixed strings supplied by
// repository code; caller values only ever travel as bound arguments.
package sqlbuild

import (
	"strings"

	"github.com/kfglabs/directory/internal/apperror"
)

// SetClause collects "column = ?" assignments for a partial update. The
// typed setters append an assignment only when the corresponding pointer is
// non-nil, so a patch struct with pointer fields maps directly onto "change
// only what the caller supplied". Assignment order follows call order, and
// argument i binds to placeholder i.
type SetClause struct {
	cols []string
	args []any
}

// Set unconditionally appends an assignment for col.
func (s *SetClause) Set(col string, v any) {
	s.cols = append(s.cols, col+" = ?")
	s.args = append(s.args, v)
}

func (s *SetClause) SetString(col string, v *string) {
	if v != nil {
		s.Set(col, *v)
	}
}

func (s *SetClause) SetInt64(col string, v *int64) {
	if v != nil {
		s.Set(col, *v)
	}
}

func (s *SetClause) SetBool(col string, v *bool) {
	if v != nil {
		s.Set(col, *v)
	}
}

// Build returns the assignment list and its ordered arguments. An update
// must set at least one column; an empty clause is an invalid-argument
// error rather than a silent no-op.
func (s *SetClause) Build() (string, []any, error) {
	if len(s.cols) == 0 {
		return "", nil, apperror.Invalid("no data")
	}
	return strings.Join(s.cols, ", "), s.args, nil
}

// WhereClause collects optional filter predicates joined with AND. A nil
// filter value contributes nothing, so callers can feed every recognized
// filter through and let absent ones fall away.
type WhereClause struct {
	preds []string
	args  []any
}

// Contains filters col by case-insensitive substring containment.
func (w *WhereClause) Contains(col string, v *string) {
	if v != nil {
		w.preds = append(w.preds, "LOWER("+col+") LIKE ?")
		w.args = append(w.args, "%"+strings.ToLower(*v)+"%")
	}
}

// EqualsBool filters col by exact boolean equality.
func (w *WhereClause) EqualsBool(col string, v *bool) {
	if v != nil {
		w.preds = append(w.preds, col+" = ?")
		w.args = append(w.args, *v)
	}
}

// AtLeast filters col (or a column-valued expression) by a numeric minimum.
func (w *WhereClause) AtLeast(col string, v *int64) {
	if v != nil {
		w.preds = append(w.preds, col+" >= ?")
		w.args = append(w.args, *v)
	}
}

// Clause returns a leading " WHERE ..." fragment and its arguments, or an
// empty string when no filters were supplied.
func (w *WhereClause) Clause() (string, []any) {
	if len(w.preds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(w.preds, " AND "), w.args
}
