package console

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/app-sre/dbconsole/pkg/env"
)

type Role string

const (
	RoleMaster Role = "master"
	RoleSlave  Role = "slave"

	defaultPort = 8080
)

type Env struct {
	Role Role
	Port int
}

func NewConsoleEnv() *Env {
	return &Env{}
}

func (c *Env) Populate() error {
	c.Role = RoleMaster
	if s := strings.ToLower(os.Getenv("CONSOLE_ROLE")); s != "" {
		switch Role(s) {
		case RoleMaster, RoleSlave:
			c.Role = Role(s)
		default:
			return fmt.Errorf("unable to use console role: %s", s)
		}
	}

	c.Port = defaultPort
	if s := os.Getenv("CONSOLE_PORT"); s != "" {
		port, err := strconv.Atoi(s)
		if err != nil || port <= 0 || port > 65535 {
			return &env.TypeError{Name: "CONSOLE_PORT"}
		}
		c.Port = port
	}

	return nil
}
