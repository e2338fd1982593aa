package audit

// Audit records every statement the console submits.
type Audit interface {
	Write(*QueryData) error
}

type QueryData struct {
	Operation string
	Query     string
	User      string
	Timestamp int64
}

// Multi fans a record out to every sink in order, stopping at the first
// failure.
type Multi []Audit

var _ Audit = (Multi)(nil)

func (m Multi) Write(q *QueryData) error {
	for _, a := range m {
		if err := a.Write(q); err != nil {
			return err
		}
	}
	return nil
}
