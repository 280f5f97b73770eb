package repository

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/cardboard/core/internal/domain/entities"
)

const pqUniqueViolation = "23505"

// mapWriteError translates driver specific uniqueness violations into a
// conflict and everything else into an internal error.
func mapWriteError(op string, err error) error {
	if isUniqueViolation(err) {
		return entities.Conflict(op+": duplicate key", err)
	}
	return entities.Internal(op, err)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}

	return false
}

// requireAffected turns a write that matched no row into a not found error.
func requireAffected(result sql.Result, resource, id string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return entities.Internal("get rows affected", err)
	}

	if rowsAffected == 0 {
		return entities.NotFound(resource, id)
	}

	return nil
}
