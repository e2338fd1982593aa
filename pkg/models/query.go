package models

const StatusOK = "ok"

// QueryRequest is the body of a query endpoint call.
type QueryRequest struct {
	Query string `json:"query"`
	Token string `json:"token"`
}

// QueryResult is the reply of the query and database creation endpoints.
// Header and Rows are only set for statements returning rows.
type QueryResult struct {
	Status  string   `json:"status"`
	Message string   `json:"message,omitempty"`
	Header  []string `json:"header,omitempty"`
	Rows    [][]any  `json:"rows,omitempty"`
}

func (r *QueryResult) OK() bool {
	return r.Status == StatusOK
}

type CreateDatabaseRequest struct {
	DBName string `json:"db_name"`
}

// SlaveRegistry maps a node address to the time it was last seen.
type SlaveRegistry map[string]string
