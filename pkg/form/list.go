package form

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Row is one entry of a dynamic form section, such as a column definition or
// a where condition.
type Row[T any] struct {
	ID    string `json:"id"`
	Value T      `json:"value"`
}

// List holds the dynamic rows of one form section in insertion order. The
// zero value is an empty list ready to use.
type List[T any] struct {
	mu   sync.RWMutex
	rows []Row[T]
}

// NewList returns a list holding the given values, each under a fresh id.
func NewList[T any](values ...T) *List[T] {
	l := &List[T]{}
	for _, v := range values {
		l.Add(v)
	}
	return l
}

// Add appends a row and returns its id.
func (l *List[T]) Add(v T) string {
	id := uuid.NewString()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.rows = append(l.rows, Row[T]{ID: id, Value: v})
	return id
}

// Remove drops the row with the given id. It reports whether a row was found.
func (l *List[T]) Remove(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, r := range l.rows {
		if r.ID == id {
			l.rows = append(l.rows[:i:i], l.rows[i+1:]...)
			return true
		}
	}
	return false
}

// Set replaces the value of an existing row in place.
func (l *List[T]) Set(id string, v T) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.rows {
		if l.rows[i].ID == id {
			l.rows[i].Value = v
			return nil
		}
	}
	return fmt.Errorf("unable to find row: %s", id)
}

func (l *List[T]) Get(id string) (T, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, r := range l.rows {
		if r.ID == id {
			return r.Value, true
		}
	}
	var zero T
	return zero, false
}

func (l *List[T]) Len() int {
	if l == nil {
		return 0
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.rows)
}

// Rows returns a copy of the rows in insertion order.
func (l *List[T]) Rows() []Row[T] {
	if l == nil {
		return nil
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	return append([]Row[T](nil), l.rows...)
}

// Values returns the row values in insertion order.
func (l *List[T]) Values() []T {
	if l == nil {
		return nil
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	values := make([]T, 0, len(l.rows))
	for _, r := range l.rows {
		values = append(values, r.Value)
	}
	return values
}

// MarshalJSON encodes the list as an array of values.
func (l *List[T]) MarshalJSON() ([]byte, error) {
	values := l.Values()
	if values == nil {
		values = []T{}
	}

	content, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("unable to marshal form rows: %w", err)
	}
	return content, nil
}

// UnmarshalJSON decodes an array of values, giving every row a fresh id.
func (l *List[T]) UnmarshalJSON(b []byte) error {
	var values []T
	if err := json.Unmarshal(b, &values); err != nil {
		return fmt.Errorf("unable to unmarshal form rows: %w", err)
	}

	l.mu.Lock()
	l.rows = nil
	l.mu.Unlock()

	for _, v := range values {
		l.Add(v)
	}
	return nil
}
