package console

import (
	"context"
	"strings"

	dbconsole "github.com/app-sre/dbconsole/pkg"
	"github.com/app-sre/dbconsole/pkg/form"
	"github.com/app-sre/dbconsole/pkg/sqlbuild"
)

const missingFields = "Please fill all fields"

// Slave is the console of a single node.
type Slave struct {
	*Console
}

func NewSlave(cfg *dbconsole.Config) *Slave {
	return &Slave{Console: newConsole(cfg)}
}

// SearchRecords filters on a column only when both the column and the value
// are given.
func (s *Slave) SearchRecords(ctx context.Context, f *form.Search) {
	db, table := strings.TrimSpace(f.DBName), strings.TrimSpace(f.TableName)
	if db == "" || table == "" {
		s.result.ShowError(missingNames)
		return
	}

	s.run(ctx, "search", sqlbuild.Search(db, table, strings.TrimSpace(f.Column), f.Value), outcome{
		failure: "Failed to search records: ",
		success: "No records found",
	})
}

// UpdateRecords sets one column on the rows matching a where clause given as
// SQL text.
func (s *Slave) UpdateRecords(ctx context.Context, f *form.UpdateRecords) {
	db, table, column := strings.TrimSpace(f.DBName), strings.TrimSpace(f.TableName), strings.TrimSpace(f.Column)
	if db == "" || table == "" || column == "" || f.Value == "" || blank(f.Where) {
		s.result.ShowError(missingFields)
		return
	}

	s.run(ctx, "update_records", sqlbuild.UpdateWhere(db, table, column, f.Value, f.Where), outcome{
		failure: "Failed to update records: ",
	})
}

func (s *Slave) DeleteRecords(ctx context.Context, f *form.DeleteRecords) {
	db, table := strings.TrimSpace(f.DBName), strings.TrimSpace(f.TableName)
	if db == "" || table == "" || blank(f.Where) {
		s.result.ShowError(missingFields)
		return
	}

	s.run(ctx, "delete_records", sqlbuild.DeleteWhere(db, table, f.Where), outcome{
		failure: "Failed to delete records: ",
	})
}
