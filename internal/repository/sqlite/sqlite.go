package sqlite

import (
	"io"
	"strings"

	"log/slog"

	"github.com/kfglabs/directory/internal/db"
	"github.com/kfglabs/directory/pkg/repository"
	"golang.org/x/crypto/bcrypt"
)

// SQLiteRepo implements repository interfaces using the internal DB wrapper.
type SQLiteRepo struct {
	conn       *db.DB
	logger     *slog.Logger
	bcryptCost int
}

// Ensure SQLiteRepo implements the public interfaces.
var _ repository.EmployeeRepo = (*SQLiteRepo)(nil)
var _ repository.SkillRepo = (*SQLiteRepo)(nil)
var _ repository.UserRepo = (*SQLiteRepo)(nil)
var _ repository.LookupRepo = (*SQLiteRepo)(nil)

func New(conn *db.DB, logger *slog.Logger, bcryptCost int) *SQLiteRepo {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &SQLiteRepo{conn: conn, logger: logger, bcryptCost: bcryptCost}
}

// The store's unique constraints are the authoritative uniqueness check; the
// pre-insert duplicate lookups only exist for friendlier messages. Constraint
// violations that slip through the race window map to the same Conflict kind.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

type scanner interface {
	Scan(dest ...any) error
}
