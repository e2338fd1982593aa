package sqlbuild

import (
	"errors"
	"strings"
)

var (
	ErrNoColumns     = errors.New("no columns given")
	ErrNoAssignments = errors.New("no assignments given")
)

func CreateTable(db, table string, columns []ColumnDef) (Statement, error) {
	if len(columns) == 0 {
		return Statement{}, ErrNoColumns
	}

	defs := make([]string, 0, len(columns))
	for _, c := range columns {
		def := QuoteIdentifier(c.Name) + " " + string(c.Type)
		if !c.Nullable {
			def += " NOT NULL"
		}
		if c.PrimaryKey {
			def += " PRIMARY KEY"
		}
		defs = append(defs, def)
	}

	return Raw("CREATE TABLE " + qualified(db, table) + " (" + strings.Join(defs, ", ") + ")"), nil
}

func Insert(db, table string, fields []Assignment) (Statement, error) {
	if len(fields) == 0 {
		return Statement{}, ErrNoAssignments
	}

	cols := make([]string, 0, len(fields))
	marks := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields))
	for _, f := range fields {
		cols = append(cols, QuoteIdentifier(f.Column))
		marks = append(marks, "?")
		args = append(args, f.Value)
	}

	sql := "INSERT INTO " + qualified(db, table) +
		" (" + strings.Join(cols, ", ") + ") VALUES (" + strings.Join(marks, ", ") + ")"

	return Statement{SQL: sql, Args: args}, nil
}

// Select builds a SELECT over the given columns, or all columns when none are
// given.
func Select(db, table string, columns []string, conditions []Condition) Statement {
	projection := "*"
	if len(columns) > 0 {
		quoted := make([]string, 0, len(columns))
		for _, c := range columns {
			quoted = append(quoted, QuoteIdentifier(c))
		}
		projection = strings.Join(quoted, ", ")
	}

	s := Statement{SQL: "SELECT " + projection + " FROM " + qualified(db, table)}
	return where(s, conditions)
}

func Update(db, table string, fields []Assignment, conditions []Condition) (Statement, error) {
	if len(fields) == 0 {
		return Statement{}, ErrNoAssignments
	}

	sets := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields)+len(conditions))
	for _, f := range fields {
		sets = append(sets, QuoteIdentifier(f.Column)+" = ?")
		args = append(args, f.Value)
	}

	s := Statement{
		SQL:  "UPDATE " + qualified(db, table) + " SET " + strings.Join(sets, ", "),
		Args: args,
	}
	return where(s, conditions), nil
}

// UpdateWhere sets a single column on the rows matched by a where clause
// given as literal SQL text.
func UpdateWhere(db, table, column string, value any, rawWhere string) Statement {
	return Statement{
		SQL:  "UPDATE " + qualified(db, table) + " SET " + QuoteIdentifier(column) + " = ? WHERE " + rawWhere,
		Args: []any{value},
	}
}

// DeleteWhere deletes the rows matched by a where clause given as literal SQL
// text.
func DeleteWhere(db, table, rawWhere string) Statement {
	return Raw("DELETE FROM " + qualified(db, table) + " WHERE " + rawWhere)
}

// Search selects every row whose column contains value. The filter is only
// applied when both column and value are set.
func Search(db, table, column, value string) Statement {
	s := Raw("SELECT * FROM " + qualified(db, table))
	if column == "" || value == "" {
		return s
	}

	s.SQL += " WHERE " + QuoteIdentifier(column) + " LIKE ?"
	s.Args = []any{"%" + value + "%"}
	return s
}

func DropColumn(db, table, column string) Statement {
	return Raw("ALTER TABLE " + qualified(db, table) + " DROP COLUMN " + QuoteIdentifier(column))
}

func DropDatabase(db string) Statement {
	return Raw("DROP DATABASE " + QuoteIdentifier(db))
}

func DropTable(db, table string) Statement {
	return Raw("DROP TABLE " + qualified(db, table))
}

func CreateDatabase(db string) Statement {
	return Raw("CREATE DATABASE " + QuoteIdentifier(db))
}

func where(s Statement, conditions []Condition) Statement {
	if len(conditions) == 0 {
		return s
	}

	preds := make([]string, 0, len(conditions))
	for _, c := range conditions {
		op := c.Operator
		if op == "" {
			op = OpEqual
		}
		preds = append(preds, QuoteIdentifier(c.Column)+" "+string(op)+" ?")
		s.Args = append(s.Args, c.Value)
	}

	s.SQL += " WHERE " + strings.Join(preds, " AND ")
	return s
}
