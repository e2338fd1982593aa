package models

import (
	"encoding/json"
	"strconv"
)

// Cell renders a single result value the way it is shown to the user. The
// server encodes cells as arbitrary JSON scalars.
func Cell(v any) string {
	switch t := v.(type) {
	case nil:
		return "NULL"
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case []byte:
		return string(t)
	default:
		content, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(content)
	}
}

// Table returns the rows of the result as strings.
func (r *QueryResult) Table() [][]string {
	rows := make([][]string, 0, len(r.Rows))
	for _, row := range r.Rows {
		cells := make([]string, 0, len(row))
		for _, v := range row {
			cells = append(cells, Cell(v))
		}
		rows = append(rows, cells)
	}
	return rows
}
