package repository

import (
	"database/sql"
)

type mysqlDialect struct{}

func (mysqlDialect) placeholder(int) string {
	return "?"
}

// NewMySQLStore creates a record store for MySQL databases. The connection string must set
// parseTime=true so DATE and TIMESTAMP columns scan into time.Time.
func NewMySQLStore(db *sql.DB) *SQLStore {
	return newSQLStore(db, mysqlDialect{})
}
