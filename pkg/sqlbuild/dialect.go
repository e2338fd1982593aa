package sqlbuild

import (
	"strconv"
	"strings"
)

type Dialect string

const (
	MySQL      Dialect = "mysql"
	PostgreSQL Dialect = "postgresql"
)

// Rebind rewrites the statement for the given dialect. Statements are built
// in MySQL form; for PostgreSQL back-quoted identifiers become double-quoted
// and "?" placeholders become numbered "$n" parameters.
func (s Statement) Rebind(d Dialect) Statement {
	if d != PostgreSQL {
		return s
	}

	var (
		b     strings.Builder
		quote rune
		n     int
	)
	b.Grow(len(s.SQL) + 2*len(s.Args))

	runes := []rune(s.SQL)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case quote == '`':
			switch {
			case r == '`' && i+1 < len(runes) && runes[i+1] == '`':
				b.WriteRune('`')
				i++
			case r == '`':
				b.WriteRune('"')
				quote = 0
			case r == '"':
				b.WriteString(`""`)
			default:
				b.WriteRune(r)
			}
		case quote != 0:
			b.WriteRune(r)
			if r == '\\' && i+1 < len(runes) {
				i++
				b.WriteRune(runes[i])
				continue
			}
			if r == quote {
				quote = 0
			}
		case r == '`':
			quote = r
			b.WriteRune('"')
		case r == '\'' || r == '"':
			quote = r
			b.WriteRune(r)
		case r == placeholder:
			n++
			b.WriteString("$" + strconv.Itoa(n))
		default:
			b.WriteRune(r)
		}
	}

	return Statement{SQL: b.String(), Args: s.Args}
}
