package console

import (
	"context"
	"fmt"
	"strings"
	"time"

	dbconsole "github.com/app-sre/dbconsole/pkg"
	"github.com/app-sre/dbconsole/pkg/audit"
	"github.com/app-sre/dbconsole/pkg/form"
	"github.com/app-sre/dbconsole/pkg/models"
	"github.com/app-sre/dbconsole/pkg/render"
	"github.com/app-sre/dbconsole/pkg/sqlbuild"
)

const (
	noResultsMessage = "No results found"
	unknownError     = "Unknown error"
)

// Confirmer asks the user to approve a destructive operation.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

// Always approves every prompt.
var Always = ConfirmFunc(func(context.Context, string) bool { return true })

// Console holds what the master and slave consoles share: the backend, the
// audit trail and the result panel every operation renders into.
type Console struct {
	cfg    *dbconsole.Config
	result *render.Panel
}

func newConsole(cfg *dbconsole.Config) *Console {
	return &Console{cfg: cfg, result: render.NewPanel()}
}

// Result returns the panel that operations render into.
func (c *Console) Result() *render.Panel {
	return c.result
}

// outcome describes how an operation reports a backend reply.
type outcome struct {
	// failure prefixes transport and audit errors.
	failure string
	// success replaces the server message on an ok reply without rows.
	success string
	// empty is shown for an ok reply without rows or message.
	empty string
	// rejected, when set, prefixes the server message of a reply that is not
	// ok, and an empty message reads as unknown.
	rejected string
}

// ExecuteQuery runs free-form SQL.
func (c *Console) ExecuteQuery(ctx context.Context, f *form.Query) {
	query := strings.TrimSpace(f.Query)
	if query == "" {
		c.result.ShowError("Please enter a query")
		return
	}

	c.run(ctx, "query", sqlbuild.Raw(query), outcome{
		failure: "Failed to execute query: ",
		empty:   noResultsMessage,
	})
}

// run is the single path from a statement to the result panel.
func (c *Console) run(ctx context.Context, operation string, stmt sqlbuild.Statement, o outcome) {
	result, err := c.submit(ctx, operation, stmt, func(ctx context.Context) (*models.QueryResult, error) {
		return c.cfg.Backend.Query(ctx, stmt)
	})
	c.show(result, err, o)
}

func (c *Console) submit(ctx context.Context, operation string, stmt sqlbuild.Statement, send func(context.Context) (*models.QueryResult, error)) (*models.QueryResult, error) {
	query, err := stmt.Bind()
	if err != nil {
		return nil, err
	}

	data := &audit.QueryData{
		Operation: operation,
		Query:     query,
		User:      dbconsole.User(ctx),
		Timestamp: time.Now().Unix(),
	}
	if err := c.cfg.Audit.Write(data); err != nil {
		c.cfg.Logger.Errorf("Unable to write audit: %s", err)
		return nil, fmt.Errorf("unable to write audit: %w", err)
	}

	result, err := send(ctx)
	if err != nil {
		c.cfg.Logger.Debugf("Unable to run %s: %s", operation, err)
		return nil, err
	}
	return result, nil
}

func (c *Console) show(result *models.QueryResult, err error, o outcome) {
	switch {
	case err != nil:
		c.result.ShowError(o.failure + err.Error())
	case !result.OK():
		message := result.Message
		if o.rejected != "" {
			if message == "" {
				message = unknownError
			}
			message = o.rejected + message
		}
		c.result.ShowError(message)
	case len(result.Rows) > 0:
		c.result.ShowTable(result.Header, result.Table())
	case o.success != "":
		c.result.ShowSuccess(o.success)
	case result.Message == "" && o.empty != "":
		c.result.ShowSuccess(o.empty)
	default:
		c.result.ShowSuccess(result.Message)
	}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
