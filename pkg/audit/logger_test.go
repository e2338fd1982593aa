package audit

import (
	"bytes"
	"errors"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/app-sre/dbconsole/internal/test"
	"github.com/stretchr/testify/assert"
)

func TestNewLoggerAudit(t *testing.T) {
	logger := test.DummyLogger(io.Discard).Sugar()

	actual := NewLoggerAudit(logger)

	assert.NotNil(t, actual)
	assert.IsType(t, &LoggerAudit{}, actual)
}

func TestLoggingAuditWrite(t *testing.T) {
	cases := []struct {
		description string
		given       QueryData
		output      *regexp.Regexp
	}{
		{
			"query data with all fields set",
			QueryData{Operation: "drop table", Query: "DROP TABLE `a`.`b`", User: "test", Timestamp: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC).Unix()},
			regexp.MustCompile("AUDIT\\s{\"Operation\": \"drop table\", \"Query\": \"DROP TABLE `a`.`b`\", \"User\": \"test\", \"Timestamp\": 1672531200}"),
		},
		{
			"query data with no SQL statements provided",
			QueryData{Query: "", User: "test", Timestamp: time.Now().Unix()},
			regexp.MustCompile(`AUDIT\s{"Operation": "", "Query": "", "User": "test", "Timestamp": \d{10}}`),
		},
		{
			"invalid query data with nothing set",
			QueryData{},
			regexp.MustCompile(`AUDIT\s{"Operation": "", "Query": "", "User": "", "Timestamp": 0}`),
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			var output bytes.Buffer

			logger := test.DummyLogger(&output).Sugar()

			audit := &LoggerAudit{Logger: logger}
			err := audit.Write(&tc.given)

			assert.Nil(t, err)
			assert.Regexp(t, tc.output, output.String())
		})
	}
}

type auditFunc func(*QueryData) error

func (f auditFunc) Write(q *QueryData) error {
	return f(q)
}

func TestMultiWrite(t *testing.T) {
	t.Parallel()

	var calls []string

	ok := func(name string) Audit {
		return auditFunc(func(*QueryData) error {
			calls = append(calls, name)
			return nil
		})
	}
	failing := auditFunc(func(*QueryData) error {
		calls = append(calls, "failing")
		return errors.New("test")
	})

	err := Multi{ok("first"), failing, ok("last")}.Write(&QueryData{})

	assert.EqualError(t, err, "test")
	assert.Equal(t, []string{"first", "failing"}, calls)

	calls = nil
	assert.NoError(t, Multi{ok("first"), ok("last")}.Write(&QueryData{}))
	assert.Equal(t, []string{"first", "last"}, calls)
}
