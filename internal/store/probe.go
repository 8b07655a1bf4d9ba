package store

import (
	"database/sql"
	"slices"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Probe reports whether the indexed engine can be used.
type Probe func() bool

// registeredDrivers lists the database/sql drivers linked into the binary.
var registeredDrivers = sql.Drivers

// ProbeSQLite checks that the SQLite driver is registered and actually
// answers: it opens a throwaway in-memory database, creates a table in it
// and discards it. Any failure, including a panic, means unavailable.
func ProbeSQLite() bool {
	return probeDriver(driverName)
}

func probeDriver(name string) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	if !slices.Contains(registeredDrivers(), name) {
		return false
	}

	dsn := "file:probe-" + uuid.NewString() + "?mode=memory"
	db, err := sqlx.Open(name, dsn)
	if err != nil {
		return false
	}
	defer db.Close()

	if _, err := db.Exec("CREATE TABLE probe (x INTEGER)"); err != nil {
		return false
	}
	return true
}

// Unavailable is a Probe that always reports the indexed engine as unusable.
func Unavailable() bool { return false }
