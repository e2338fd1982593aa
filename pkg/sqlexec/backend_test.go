package sqlexec

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/app-sre/dbconsole/pkg/models"
	"github.com/app-sre/dbconsole/pkg/sqlbuild"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuery(t *testing.T) {
	t.Parallel()

	cases := []struct {
		description string
		dialect     sqlbuild.Dialect
		given       sqlbuild.Statement
		mock        func(sqlmock.Sqlmock)
		expected    *models.QueryResult
	}{
		{
			"select with bound arguments",
			sqlbuild.MySQL,
			sqlbuild.Select("shop", "users", nil, []sqlbuild.Condition{{Column: "name", Operator: sqlbuild.OpEqual, Value: "a'b"}}),
			func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "name", "note"}).AddRow("1", "a'b", nil)
				mock.ExpectQuery("SELECT * FROM `shop`.`users` WHERE `name` = ?").WithArgs("a'b").WillReturnRows(rows)
			},
			&models.QueryResult{
				Status:  "ok",
				Message: "Select executed successfully",
				Header:  []string{"id", "name", "note"},
				Rows:    [][]any{{"1", "a'b", nil}},
			},
		},
		{
			"select with no rows",
			sqlbuild.MySQL,
			sqlbuild.Raw("select 1 where false"),
			func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("select 1 where false").WillReturnRows(sqlmock.NewRows([]string{"1"}))
			},
			&models.QueryResult{Status: "ok", Message: "Select executed successfully", Header: []string{"1"}},
		},
		{
			"PostgreSQL placeholders and identifiers",
			sqlbuild.PostgreSQL,
			sqlbuild.Search("shop", "users", "name", "li"),
			func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"name"}).AddRow("alice")
				mock.ExpectQuery(`SELECT * FROM "shop"."users" WHERE "name" LIKE $1`).WithArgs("%li%").WillReturnRows(rows)
			},
			&models.QueryResult{Status: "ok", Message: "Select executed successfully", Header: []string{"name"}, Rows: [][]any{{"alice"}}},
		},
		{
			"statement without rows",
			sqlbuild.MySQL,
			sqlbuild.DropTable("shop", "users"),
			func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("DROP TABLE `shop`.`users`").WillReturnResult(sqlmock.NewResult(0, 0))
			},
			&models.QueryResult{Status: "ok", Message: "Query executed successfully. Rows affected: 0"},
		},
		{
			"update reports affected rows",
			sqlbuild.MySQL,
			sqlbuild.UpdateWhere("shop", "users", "name", "bob", "id = 1"),
			func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE `shop`.`users` SET `name` = ? WHERE id = 1").WithArgs("bob").WillReturnResult(sqlmock.NewResult(0, 3))
			},
			&models.QueryResult{Status: "ok", Message: "Query executed successfully. Rows affected: 3"},
		},
		{
			"database returned exec error",
			sqlbuild.MySQL,
			sqlbuild.Raw("DROP DATABASE x"),
			func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("DROP DATABASE x").WillReturnError(errors.New("test"))
			},
			&models.QueryResult{Status: "error", Message: "test"},
		},
		{
			"database returned query error",
			sqlbuild.MySQL,
			sqlbuild.Raw("SELECT 1"),
			func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT 1").WillReturnError(errors.New("test"))
			},
			&models.QueryResult{Status: "error", Message: "test"},
		},
		{
			"database returned row error",
			sqlbuild.MySQL,
			sqlbuild.Raw("SELECT * FROM test"),
			func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"a"}).AddRow("1").AddRow("2").RowError(1, errors.New("test"))
				mock.ExpectQuery("SELECT * FROM test").WillReturnRows(rows)
			},
			&models.QueryResult{Status: "error", Message: "test"},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
			require.NoError(t, err)
			defer func() { _ = db.Close() }()

			tc.mock(mock)

			actual, err := New(db, tc.dialect).Query(context.Background(), tc.given)

			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestCreateDatabase(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectExec("CREATE DATABASE `shop`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("CREATE DATABASE `shop`").WillReturnError(errors.New("database exists"))

	b := New(db, sqlbuild.MySQL)

	actual, err := b.CreateDatabase(context.Background(), "shop")
	require.NoError(t, err)
	assert.Equal(t, &models.QueryResult{Status: "ok", Message: "Database shop created successfully"}, actual)

	actual, err = b.CreateDatabase(context.Background(), "shop")
	require.NoError(t, err)
	assert.Equal(t, &models.QueryResult{Status: "error", Message: "database exists"}, actual)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSlaves(t *testing.T) {
	t.Parallel()

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	actual, err := New(db, sqlbuild.MySQL).Slaves(context.Background())

	require.NoError(t, err)
	assert.Equal(t, models.SlaveRegistry{}, actual)
}

func TestPing(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectPing()
	mock.ExpectPing().WillReturnError(errors.New("test"))

	b := New(db, sqlbuild.MySQL)

	assert.NoError(t, b.Ping(context.Background()))

	err = b.Ping(context.Background())
	require.Error(t, err)
	assert.Equal(t, "unable to connect to the database: test", err.Error())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReturnsRows(t *testing.T) {
	t.Parallel()

	cases := []struct {
		given    string
		expected bool
	}{
		{"SELECT 1", true},
		{"  select * from t", true},
		{"(SELECT 1) UNION (SELECT 2)", true},
		{"SHOW DATABASES", true},
		{"describe t", true},
		{"WITH a AS (SELECT 1) SELECT * FROM a", true},
		{"INSERT INTO t VALUES (1)", false},
		{"DROP TABLE t", false},
		{"", false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.given, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, returnsRows(tc.given))
		})
	}
}
