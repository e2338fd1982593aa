package sqlbuild

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const placeholder = '?'

var ErrArgumentCount = errors.New("placeholder and argument count mismatch")

// Statement is a SQL statement with its user supplied values kept apart from
// the statement text. Every value is referenced by a "?" placeholder.
type Statement struct {
	SQL  string
	Args []any
}

// Raw wraps a statement given as literal SQL text.
func Raw(sql string) Statement {
	return Statement{SQL: sql}
}

func (s Statement) String() string {
	return s.SQL
}

// Bind renders the statement as literal SQL text, replacing each placeholder
// outside of quoted sections with an escaped literal. Placeholders inside
// quoted strings or back-quoted identifiers are left alone, so raw text
// supplied by the user passes through untouched.
func (s Statement) Bind() (string, error) {
	if len(s.Args) == 0 {
		return s.SQL, nil
	}

	var (
		b     strings.Builder
		quote rune
		n     int
	)
	b.Grow(len(s.SQL) + 8*len(s.Args))

	runes := []rune(s.SQL)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case quote != 0:
			b.WriteRune(r)
			if r == '\\' && quote != '`' && i+1 < len(runes) {
				i++
				b.WriteRune(runes[i])
				continue
			}
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"' || r == '`':
			quote = r
			b.WriteRune(r)
		case r == placeholder:
			if n >= len(s.Args) {
				return "", fmt.Errorf("unable to bind statement: %w", ErrArgumentCount)
			}
			lit, err := Literal(s.Args[n])
			if err != nil {
				return "", fmt.Errorf("unable to bind statement: %w", err)
			}
			b.WriteString(lit)
			n++
		default:
			b.WriteRune(r)
		}
	}

	if n != len(s.Args) {
		return "", fmt.Errorf("unable to bind statement: %w", ErrArgumentCount)
	}

	return b.String(), nil
}

// Literal renders a single value as a SQL literal.
func Literal(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "NULL", nil
	case string:
		return "'" + escapeString(t) + "'", nil
	case []byte:
		return "'" + escapeString(string(t)) + "'", nil
	case bool:
		if t {
			return "TRUE", nil
		}
		return "FALSE", nil
	case int:
		return strconv.Itoa(t), nil
	case int32:
		return strconv.FormatInt(int64(t), 10), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case uint64:
		return strconv.FormatUint(t, 10), nil
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64), nil
	case time.Time:
		return "'" + t.Format("2006-01-02 15:04:05.999999") + "'", nil
	default:
		return "", fmt.Errorf("unsupported argument type: %T", v)
	}
}

// escapeString follows the MySQL rules for string literals in the default
// SQL mode.
func escapeString(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		switch r {
		case 0:
			b.WriteString(`\0`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '"':
			b.WriteString(`\"`)
		case '\x1a':
			b.WriteString(`\Z`)
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}

// QuoteIdentifier back-quotes a database, table or column name.
func QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func qualified(db, table string) string {
	return QuoteIdentifier(db) + "." + QuoteIdentifier(table)
}
