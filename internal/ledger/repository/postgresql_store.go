package repository

import (
	"database/sql"
	"strconv"
)

type postgresDialect struct{}

func (postgresDialect) placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}

// NewPostgreSQLStore creates a record store for PostgreSQL databases.
func NewPostgreSQLStore(db *sql.DB) *SQLStore {
	return newSQLStore(db, postgresDialect{})
}
