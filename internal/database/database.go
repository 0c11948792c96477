package database

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Connect opens a SQLite database using the provided DSN. The driver is
// limited to a single connection: SQLite allows one writer and the
// transaction log depends on appends being serialized.
func Connect(dsn string, log *zap.Logger) *sqlx.DB {
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		log.Fatal("failed to connect to database", zap.String("dsn", dsn), zap.Error(err))
	}
	db.SetMaxOpenConns(1)
	return db
}
