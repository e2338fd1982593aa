package console

import (
	"context"
	"fmt"
	"sort"
	"strings"

	dbconsole "github.com/app-sre/dbconsole/pkg"
	"github.com/app-sre/dbconsole/pkg/form"
	"github.com/app-sre/dbconsole/pkg/models"
	"github.com/app-sre/dbconsole/pkg/render"
	"github.com/app-sre/dbconsole/pkg/sqlbuild"
)

const (
	noSlavesMessage    = "No slaves connected."
	slavesErrorMessage = "Error loading slaves."
	loadingMessage     = "Loading..."

	missingNames = "Please enter database and table names"
)

var slavesHeader = []string{"IP", "Last Seen"}

// Master is the cluster-wide console. Besides the result panel it owns a
// panel for the node registry.
type Master struct {
	*Console

	slaves *render.Panel
}

func NewMaster(cfg *dbconsole.Config) *Master {
	return &Master{
		Console: newConsole(cfg),
		slaves:  render.NewPanel(),
	}
}

// Slaves returns the panel the node registry renders into.
func (m *Master) Slaves() *render.Panel {
	return m.slaves
}

func (m *Master) CreateDatabase(ctx context.Context, f *form.CreateDatabase) {
	name := strings.TrimSpace(f.DBName)
	if name == "" {
		m.result.ShowError("Please enter a database name")
		return
	}

	result, err := m.submit(ctx, "create_database", sqlbuild.CreateDatabase(name), func(ctx context.Context) (*models.QueryResult, error) {
		return m.cfg.Backend.CreateDatabase(ctx, name)
	})
	m.show(result, err, outcome{failure: "Failed to create database: "})
}

// CreateTable skips column rows without a name.
func (m *Master) CreateTable(ctx context.Context, f *form.CreateTable) {
	db, table := strings.TrimSpace(f.DBName), strings.TrimSpace(f.TableName)
	if db == "" || table == "" {
		m.result.ShowError(missingNames)
		return
	}

	var columns []sqlbuild.ColumnDef
	for _, c := range f.Columns.Values() {
		if blank(c.Name) {
			continue
		}
		t, err := sqlbuild.ParseColumnType(c.Type)
		if err != nil {
			m.result.ShowError(fmt.Sprintf("Unsupported column type: %s", c.Type))
			return
		}
		columns = append(columns, sqlbuild.ColumnDef{
			Name:       strings.TrimSpace(c.Name),
			Type:       t,
			Nullable:   c.Nullable,
			PrimaryKey: c.PrimaryKey,
		})
	}

	stmt, err := sqlbuild.CreateTable(db, table, columns)
	if err != nil {
		m.result.ShowError("Please add at least one column")
		return
	}

	m.run(ctx, "create_table", stmt, outcome{failure: "Failed to create table: "})
}

// DropDatabase asks for confirmation first. A declined prompt leaves the
// panel as it was.
func (m *Master) DropDatabase(ctx context.Context, f *form.DropDatabase, confirm Confirmer) {
	db := strings.TrimSpace(f.DBName)
	if db == "" {
		m.result.ShowError("Please enter a database name")
		return
	}

	if !confirm.Confirm(ctx, fmt.Sprintf("Are you sure you want to drop database \"%s\"?", db)) {
		return
	}

	m.run(ctx, "drop_database", sqlbuild.DropDatabase(db), outcome{failure: "Failed to drop database: "})
}

func (m *Master) DropTable(ctx context.Context, f *form.DropTable, confirm Confirmer) {
	db, table := strings.TrimSpace(f.DBName), strings.TrimSpace(f.TableName)
	if db == "" || table == "" {
		m.result.ShowError(missingNames)
		return
	}

	if !confirm.Confirm(ctx, fmt.Sprintf("Are you sure you want to drop table \"%s\" from database \"%s\"?", table, db)) {
		return
	}

	m.run(ctx, "drop_table", sqlbuild.DropTable(db, table), outcome{failure: "Failed to drop table: "})
}

func (m *Master) InsertData(ctx context.Context, f *form.Insert) {
	db, table := strings.TrimSpace(f.DBName), strings.TrimSpace(f.TableName)
	if db == "" || table == "" {
		m.result.ShowError(missingNames)
		return
	}

	stmt, err := sqlbuild.Insert(db, table, assignments(f.Fields.Values()))
	if err != nil {
		m.result.ShowError("Please add at least one field")
		return
	}

	m.run(ctx, "insert", stmt, outcome{failure: "Failed to insert data: "})
}

func (m *Master) SelectData(ctx context.Context, f *form.Select) {
	db, table := strings.TrimSpace(f.DBName), strings.TrimSpace(f.TableName)
	if db == "" || table == "" {
		m.result.ShowError(missingNames)
		return
	}

	var columns []string
	if !f.SelectAll {
		for _, c := range f.Columns {
			if c.Checked && !blank(c.Name) {
				columns = append(columns, strings.TrimSpace(c.Name))
			}
		}
		if len(columns) == 0 {
			m.result.ShowError("Please select at least one column")
			return
		}
	}

	conditions, ok := m.conditions(f.Conditions.Values())
	if !ok {
		return
	}

	m.run(ctx, "select", sqlbuild.Select(db, table, columns, conditions), outcome{
		failure: "Failed to execute select: ",
		success: noResultsMessage,
	})
}

func (m *Master) UpdateData(ctx context.Context, f *form.Update) {
	db, table := strings.TrimSpace(f.DBName), strings.TrimSpace(f.TableName)
	if db == "" || table == "" {
		m.result.ShowError("Please enter Database Name and Table Name.")
		return
	}

	conditions, ok := m.conditions(f.Conditions.Values())
	if !ok {
		return
	}

	stmt, err := sqlbuild.Update(db, table, assignments(f.Fields.Values()), conditions)
	if err != nil {
		m.result.ShowError("Please add at least one update field.")
		return
	}

	m.run(ctx, "update", stmt, outcome{
		failure:  "Error executing update query: ",
		success:  "Update executed successfully.",
		rejected: "Error executing update query: ",
	})
}

func (m *Master) DeleteColumn(ctx context.Context, f *form.DeleteColumn) {
	db, table, column := strings.TrimSpace(f.DBName), strings.TrimSpace(f.TableName), strings.TrimSpace(f.ColumnName)
	if db == "" || table == "" || column == "" {
		m.result.ShowError("Please enter Database Name, Table Name, and Column Name.")
		return
	}

	m.run(ctx, "delete_column", sqlbuild.DropColumn(db, table, column), outcome{
		failure:  "Error executing delete column query: ",
		success:  "Column deleted successfully.",
		rejected: "Error deleting column: ",
	})
}

// LoadSlaves renders the node registry, sorted by address, into the slaves
// panel.
func (m *Master) LoadSlaves(ctx context.Context) {
	m.slaves.ShowText(loadingMessage)

	registry, err := m.cfg.Backend.Slaves(ctx)
	if err != nil {
		m.cfg.Logger.Debugf("Unable to load slaves: %s", err)
		m.slaves.ShowText(slavesErrorMessage)
		return
	}
	if len(registry) == 0 {
		m.slaves.ShowText(noSlavesMessage)
		return
	}

	addresses := make([]string, 0, len(registry))
	for address := range registry {
		addresses = append(addresses, address)
	}
	sort.Strings(addresses)

	rows := make([][]string, 0, len(addresses))
	for _, address := range addresses {
		rows = append(rows, []string{address, registry[address]})
	}
	m.slaves.ShowTable(slavesHeader, rows)
}

// conditions keeps the rows with both a column and a value. An unknown
// operator is reported on the result panel.
func (c *Console) conditions(rows []form.Condition) ([]sqlbuild.Condition, bool) {
	var conditions []sqlbuild.Condition
	for _, r := range rows {
		if blank(r.Column) || r.Value == "" {
			continue
		}
		op, err := sqlbuild.ParseOperator(r.Operator)
		if err != nil {
			c.result.ShowError(fmt.Sprintf("Unsupported operator: %s", r.Operator))
			return nil, false
		}
		conditions = append(conditions, sqlbuild.Condition{
			Column:   strings.TrimSpace(r.Column),
			Operator: op,
			Value:    r.Value,
		})
	}
	return conditions, true
}

func assignments(fields []form.Field) []sqlbuild.Assignment {
	var out []sqlbuild.Assignment
	for _, f := range fields {
		if blank(f.Column) || f.Value == "" {
			continue
		}
		out = append(out, sqlbuild.Assignment{Column: strings.TrimSpace(f.Column), Value: f.Value})
	}
	return out
}
