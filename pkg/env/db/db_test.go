package db

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDBEnv(t *testing.T) {
	actual := NewDBEnv()

	assert.NotNil(t, actual)
	assert.IsType(t, &DBEnv{}, actual)
}

func TestPopulate(t *testing.T) {
	cases := []struct {
		description string
		given       func()
		expected    *DBEnv
		error       bool
		message     string
	}{
		{
			"all environment variables set",
			func() {
				t.Setenv("DB_DRIVER", "mysql")
				t.Setenv("DB_HOST", "test")
				t.Setenv("DB_PORT", "1234")
				t.Setenv("DB_USER", "test")
				t.Setenv("DB_PASS", "test123")
				t.Setenv("DB_NAME", "test")
			},
			&DBEnv{Driver: "mysql", Host: "test", Port: 1234, Username: "test", Password: "test123", Name: "test"},
			false,
			``,
		},
		{
			"default port taken from the driver",
			func() {
				t.Setenv("DB_DRIVER", "postgres")
				t.Setenv("DB_HOST", "test")
				t.Setenv("DB_USER", "test")
				t.Setenv("DB_PASS", "test123")
				t.Setenv("DB_NAME", "test")
			},
			&DBEnv{Driver: "postgres", Host: "test", Port: 5432, Username: "test", Password: "test123", Name: "test"},
			false,
			``,
		},
		{
			"missing required environment variables",
			func() {
				// No-op.
			},
			&DBEnv{},
			true,
			`unable to access environment variable: DB_DRIVER`,
		},
		{
			"unknown database driver",
			func() {
				t.Setenv("DB_DRIVER", "oracle")
			},
			&DBEnv{},
			true,
			`unable to use database driver: oracle`,
		},
		{
			"missing required DB_HOST environment variable",
			func() {
				t.Setenv("DB_DRIVER", "mysql")
			},
			&DBEnv{Driver: "mysql"},
			true,
			`unable to access environment variable: DB_HOST`,
		},
		{
			"invalid DB_PORT environment variable",
			func() {
				t.Setenv("DB_DRIVER", "mysql")
				t.Setenv("DB_HOST", "test")
				t.Setenv("DB_PORT", "test")
			},
			&DBEnv{Driver: "mysql", Host: "test", Port: 3306},
			true,
			`unable to convert environment variable: DB_PORT`,
		},
		{
			"missing required DB_NAME environment variable",
			func() {
				t.Setenv("DB_DRIVER", "mysql")
				t.Setenv("DB_HOST", "test")
				t.Setenv("DB_USER", "test")
				t.Setenv("DB_PASS", "test123")
			},
			&DBEnv{Driver: "mysql", Host: "test", Port: 3306, Username: "test", Password: "test123"},
			true,
			`unable to access environment variable: DB_NAME`,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Cleanup(func() {
				os.Clearenv()
			})

			tc.given()

			actual := NewDBEnv()
			err := actual.Populate()

			if tc.error {
				require.Error(t, err)
				assert.Equal(t, tc.message, err.Error())
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestConnectionDSN(t *testing.T) {
	t.Parallel()

	mysql := &DBEnv{Driver: "mysql", Host: "db", Port: 3306, Username: "u", Password: "p", Name: "n"}
	assert.Equal(t, "u:p@tcp(db:3306)/n", mysql.ConnectionDSN())

	pg := &DBEnv{Driver: "pgx", Host: "db", Port: 5432, Username: "u", Password: "p", Name: "n"}
	assert.Equal(t, "postgres://u:p@db:5432/n", pg.ConnectionDSN())
}
