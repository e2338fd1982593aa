package console

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPopulate(t *testing.T) {
	cases := []struct {
		description string
		given       func()
		expected    *Env
		error       bool
		message     string
	}{
		{
			"defaults with nothing set",
			func() {
				// No-op.
			},
			&Env{Role: RoleMaster, Port: 8080},
			false,
			``,
		},
		{
			"slave role and custom port",
			func() {
				t.Setenv("CONSOLE_ROLE", "Slave")
				t.Setenv("CONSOLE_PORT", "9090")
			},
			&Env{Role: RoleSlave, Port: 9090},
			false,
			``,
		},
		{
			"unknown role",
			func() {
				t.Setenv("CONSOLE_ROLE", "replica")
			},
			&Env{Role: RoleMaster},
			true,
			`unable to use console role: replica`,
		},
		{
			"invalid port",
			func() {
				t.Setenv("CONSOLE_PORT", "70000")
			},
			&Env{Role: RoleMaster, Port: 8080},
			true,
			`unable to convert environment variable: CONSOLE_PORT`,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Cleanup(func() {
				os.Clearenv()
			})

			tc.given()

			actual := NewConsoleEnv()
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
