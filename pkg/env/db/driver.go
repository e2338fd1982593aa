package db

import "github.com/app-sre/dbconsole/pkg/sqlbuild"

const (
	driverMySQL      = "mysql"
	driverPostgreSQL = "pgx"

	driverMySQLPort      = 3306
	driverPostgreSQLPort = 5432

	driverMySQLFormat      = `%s:%s@tcp(%s:%d)/%s`
	driverPostgreSQLFormat = `postgres://%s:%s@%s:%d/%s`
)

type DriverType string

func (t DriverType) String() string {
	return t.Name()
}

func (t DriverType) Name() string {
	switch t {
	case "mysql":
		return driverMySQL
	case "postgresql", "postgres", "pgx":
		return driverPostgreSQL
	default:
		return ""
	}
}

func (t DriverType) Port() int {
	switch t.Name() {
	case driverMySQL:
		return driverMySQLPort
	case driverPostgreSQL:
		return driverPostgreSQLPort
	default:
		return 0
	}
}

func (t DriverType) Format() string {
	switch t.Name() {
	case driverMySQL:
		return driverMySQLFormat
	case driverPostgreSQL:
		return driverPostgreSQLFormat
	default:
		return ""
	}
}

// Dialect is the SQL dialect statements must be rewritten to for the driver.
func (t DriverType) Dialect() sqlbuild.Dialect {
	if t.Name() == driverPostgreSQL {
		return sqlbuild.PostgreSQL
	}
	return sqlbuild.MySQL
}

func (t DriverType) IsValid() bool {
	return t.Name() != ""
}
