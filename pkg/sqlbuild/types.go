package sqlbuild

import (
	"fmt"
	"strings"
)

type ColumnType string

const (
	TypeInt      ColumnType = "INT"
	TypeVarchar  ColumnType = "VARCHAR(255)"
	TypeText     ColumnType = "TEXT"
	TypeDatetime ColumnType = "DATETIME"
	TypeBoolean  ColumnType = "BOOLEAN"
	TypeFloat    ColumnType = "FLOAT"
	TypeDouble   ColumnType = "DOUBLE"
)

// ColumnTypes lists the column types offered by the table creation form, in
// the order they are presented.
var ColumnTypes = []ColumnType{
	TypeInt,
	TypeVarchar,
	TypeText,
	TypeDatetime,
	TypeBoolean,
	TypeFloat,
	TypeDouble,
}

// ParseColumnType accepts any of the offered types, case-insensitively. An
// empty value selects the first type. "VARCHAR" is accepted as the display
// name of VARCHAR(255).
func ParseColumnType(s string) (ColumnType, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return TypeInt, nil
	}
	if s == "VARCHAR" {
		return TypeVarchar, nil
	}
	for _, t := range ColumnTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unsupported column type: %s", s)
}

type Operator string

const (
	OpEqual        Operator = "="
	OpGreater      Operator = ">"
	OpLess         Operator = "<"
	OpGreaterEqual Operator = ">="
	OpLessEqual    Operator = "<="
	OpNotEqual     Operator = "!="
	OpLike         Operator = "LIKE"
)

var Operators = []Operator{
	OpEqual,
	OpGreater,
	OpLess,
	OpGreaterEqual,
	OpLessEqual,
	OpNotEqual,
	OpLike,
}

// ParseOperator accepts one of the fixed comparison operators. An empty value
// selects "=".
func ParseOperator(s string) (Operator, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return OpEqual, nil
	}
	for _, op := range Operators {
		if string(op) == s {
			return op, nil
		}
	}
	return "", fmt.Errorf("unsupported operator: %s", s)
}

// ColumnDef describes one column of a table to be created.
type ColumnDef struct {
	Name       string
	Type       ColumnType
	Nullable   bool
	PrimaryKey bool
}

// Assignment pairs a column with a value, as used by INSERT and UPDATE.
type Assignment struct {
	Column string
	Value  any
}

// Condition is a single "column operator value" predicate. Conditions are
// always combined with AND.
type Condition struct {
	Column   string
	Operator Operator
	Value    any
}
