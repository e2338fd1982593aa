package dbconsole

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/app-sre/dbconsole/pkg/audit"
	"github.com/app-sre/dbconsole/pkg/models"
	"github.com/app-sre/dbconsole/pkg/sqlbuild"
)

const (
	defaultRequestTimeout = 2 * time.Minute

	// AnonymousUser is recorded in the audit trail when the request carries no
	// user identity.
	AnonymousUser = "anonymous"
)

type ctxKey string

const contextKeyUser ctxKey = "user"

// Backend executes statements on behalf of a console.
type Backend interface {
	Query(ctx context.Context, stmt sqlbuild.Statement) (*models.QueryResult, error)
	CreateDatabase(ctx context.Context, name string) (*models.QueryResult, error)
	Slaves(ctx context.Context) (models.SlaveRegistry, error)
	Ping(ctx context.Context) error
}

type Config struct {
	Backend Backend
	Audit   audit.Audit
	Logger  *zap.SugaredLogger
}

func Production() bool {
	return os.Getenv("ENVIRONMENT") == "production"
}

func RequestTimeout() time.Duration {
	if s := os.Getenv("REQUEST_TIMEOUT"); s != "" {
		if d, err := parseDuration(s); err == nil {
			return d
		}
	}
	return defaultRequestTimeout
}

// WithUser returns a copy of ctx carrying the name of the acting user.
func WithUser(ctx context.Context, user string) context.Context {
	return context.WithValue(ctx, contextKeyUser, user)
}

func User(ctx context.Context) string {
	if user, ok := ctx.Value(contextKeyUser).(string); ok && user != "" {
		return user
	}
	return AnonymousUser
}

// parseDuration accepts a Go duration or a bare number of seconds. The sign
// is ignored.
func parseDuration(s string) (time.Duration, error) {
	if n, err := strconv.Atoi(s); err == nil {
		s = fmt.Sprintf("%ds", n)
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("unable to parse duration: %w", err)
	}
	return time.Duration(math.Abs(float64(d))), nil
}
