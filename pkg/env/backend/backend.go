package backend

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/app-sre/dbconsole/pkg/env"
)

type Kind string

const (
	KindHTTP Kind = "http"
	KindSQL  Kind = "sql"
)

// Env selects and configures the backend statements are sent to.
type Env struct {
	Kind  Kind
	URL   string
	Token string
}

func NewBackendEnv() *Env {
	return &Env{}
}

func (b *Env) Populate() error {
	b.Kind = KindHTTP
	if s := strings.ToLower(os.Getenv("BACKEND_KIND")); s != "" {
		switch Kind(s) {
		case KindHTTP, KindSQL:
			b.Kind = Kind(s)
		default:
			return fmt.Errorf("unable to use backend kind: %s", s)
		}
	}

	if b.Kind == KindSQL {
		return nil
	}

	endpoint := os.Getenv("BACKEND_URL")
	if endpoint == "" {
		return &env.Error{Name: "BACKEND_URL"}
	}
	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return &env.TypeError{Name: "BACKEND_URL"}
	}
	b.URL = strings.TrimRight(endpoint, "/")

	token := os.Getenv("BACKEND_TOKEN")
	if token == "" {
		return &env.Error{Name: "BACKEND_TOKEN"}
	}
	b.Token = token

	return nil
}
