package sqlexec

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/app-sre/dbconsole/pkg/models"
	"github.com/app-sre/dbconsole/pkg/sqlbuild"
)

const (
	statusError = "error"

	selectMessage = "Select executed successfully"
	execMessage   = "Query executed successfully. Rows affected: %d"
	createMessage = "Database %s created successfully"
)

var rowKeywords = []string{"SELECT", "SHOW", "DESCRIBE", "DESC", "EXPLAIN", "WITH"}

// Backend runs statements directly against a node-local database. Values are
// bound by the driver rather than rendered into the statement text.
type Backend struct {
	db      *sql.DB
	dialect sqlbuild.Dialect
}

func New(db *sql.DB, dialect sqlbuild.Dialect) *Backend {
	return &Backend{db: db, dialect: dialect}
}

// Query executes the statement. Database errors are reported in the result,
// the way a node reports them, not as a Go error.
func (b *Backend) Query(ctx context.Context, stmt sqlbuild.Statement) (*models.QueryResult, error) {
	stmt = stmt.Rebind(b.dialect)

	if !returnsRows(stmt.SQL) {
		res, err := b.db.ExecContext(ctx, stmt.SQL, stmt.Args...)
		if err != nil {
			return failed(err), nil
		}
		affected, _ := res.RowsAffected()
		return &models.QueryResult{Status: models.StatusOK, Message: fmt.Sprintf(execMessage, affected)}, nil
	}

	rows, err := b.db.QueryContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return failed(err), nil
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return failed(err), nil
	}

	result := &models.QueryResult{
		Status:  models.StatusOK,
		Message: selectMessage,
		Header:  cols,
	}

	vals := make([]any, len(cols))
	for i := range cols {
		vals[i] = new(sql.RawBytes)
	}

	for rows.Next() {
		if err := rows.Scan(vals...); err != nil {
			return failed(err), nil
		}

		row := make([]any, 0, len(cols))
		for _, v := range vals {
			content := *(v.(*sql.RawBytes))
			if content == nil {
				row = append(row, nil)
				continue
			}
			row = append(row, string(content))
		}
		result.Rows = append(result.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return failed(err), nil
	}

	return result, nil
}

func (b *Backend) CreateDatabase(ctx context.Context, name string) (*models.QueryResult, error) {
	stmt := sqlbuild.CreateDatabase(name).Rebind(b.dialect)

	if _, err := b.db.ExecContext(ctx, stmt.SQL); err != nil {
		return failed(err), nil
	}
	return &models.QueryResult{Status: models.StatusOK, Message: fmt.Sprintf(createMessage, name)}, nil
}

// Slaves returns an empty registry: a standalone node knows no other nodes.
func (b *Backend) Slaves(context.Context) (models.SlaveRegistry, error) {
	return models.SlaveRegistry{}, nil
}

func (b *Backend) Ping(ctx context.Context) error {
	if err := b.db.PingContext(ctx); err != nil {
		return fmt.Errorf("unable to connect to the database: %w", err)
	}
	return nil
}

func failed(err error) *models.QueryResult {
	return &models.QueryResult{Status: statusError, Message: err.Error()}
}

func returnsRows(query string) bool {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return false
	}

	first := strings.ToUpper(strings.TrimLeft(fields[0], "("))
	for _, k := range rowKeywords {
		if first == k {
			return true
		}
	}
	return false
}
