package db

import (
	"fmt"
	"os"
	"strconv"

	"github.com/app-sre/dbconsole/pkg/env"
)

// DBEnv configures a direct database connection, used when the console talks
// to a node-local database instead of the query endpoint.
type DBEnv struct {
	Driver   DriverType
	Host     string
	Port     int
	Username string
	Password string
	Name     string
}

func NewDBEnv() *DBEnv {
	return &DBEnv{}
}

func (d *DBEnv) Populate() error {
	driver := os.Getenv("DB_DRIVER")
	if driver == "" {
		return &env.Error{Name: "DB_DRIVER"}
	}
	if t := DriverType(driver); !t.IsValid() {
		return fmt.Errorf("unable to use database driver: %s", driver)
	}
	d.Driver = DriverType(driver)

	host := os.Getenv("DB_HOST")
	if host == "" {
		return &env.Error{Name: "DB_HOST"}
	}
	d.Host = host

	d.Port = d.Driver.Port()
	if s := os.Getenv("DB_PORT"); s != "" {
		port, err := strconv.Atoi(s)
		if err != nil {
			return &env.TypeError{Name: "DB_PORT"}
		}
		d.Port = port
	}

	user := os.Getenv("DB_USER")
	if user == "" {
		return &env.Error{Name: "DB_USER"}
	}
	d.Username = user

	pass := os.Getenv("DB_PASS")
	if pass == "" {
		return &env.Error{Name: "DB_PASS"}
	}
	d.Password = pass

	name := os.Getenv("DB_NAME")
	if name == "" {
		return &env.Error{Name: "DB_NAME"}
	}
	d.Name = name

	return nil
}

func (d *DBEnv) ConnectionDSN() string {
	return fmt.Sprintf(d.Driver.Format(),
		d.Username,
		d.Password,
		d.Host,
		d.Port,
		d.Name,
	)
}
