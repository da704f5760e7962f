package utils

import (
	"database/sql"
	"errors"
)

// IsSQLNoRowsError reports whether an error is the no-rows query result.
func IsSQLNoRowsError(err error) bool {
	return err != nil && (errors.Is(err, sql.ErrNoRows) || err.Error() == "sql: no rows in result set")
}
