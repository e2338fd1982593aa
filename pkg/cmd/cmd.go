package cmd

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	dbconsole "github.com/app-sre/dbconsole/pkg"
	"github.com/app-sre/dbconsole/pkg/audit"
	"github.com/app-sre/dbconsole/pkg/client"
	"github.com/app-sre/dbconsole/pkg/env/backend"
	"github.com/app-sre/dbconsole/pkg/env/db"
	"github.com/app-sre/dbconsole/pkg/env/splunk"
	"github.com/app-sre/dbconsole/pkg/sqlexec"
	"github.com/app-sre/dbconsole/pkg/version"
)

// ErrFailed is returned when an operation rendered an error notice. The
// notice has already been printed.
var ErrFailed = errors.New("operation failed")

type configFunc func(logger *zap.SugaredLogger) (*dbconsole.Config, func(), error)

type cli struct {
	logger  *zap.SugaredLogger
	config  configFunc
	noColor bool
}

func Execute(logger *zap.SugaredLogger) error {
	return newRootCommand(logger, Configure).Execute()
}

func newRootCommand(logger *zap.SugaredLogger, config configFunc) *cobra.Command {
	c := &cli{logger: logger, config: config}

	root := &cobra.Command{
		Use:           "dbconsole",
		Short:         "Administration console for a master/slave database cluster",
		Version:       version.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&c.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		c.serveCommand(),
		c.queryCommand(),
		c.slavesCommand(),
		c.createDatabaseCommand(),
		c.dropDatabaseCommand(),
		c.dropTableCommand(),
		c.searchCommand(),
		c.deleteCommand(),
	)

	return root
}

// Configure builds the console configuration from the environment. The
// returned function releases the backend.
func Configure(logger *zap.SugaredLogger) (*dbconsole.Config, func(), error) {
	be := backend.NewBackendEnv()
	if err := be.Populate(); err != nil {
		return nil, nil, fmt.Errorf("unable to configure backend: %w", err)
	}

	a, err := configureAudit(logger)
	if err != nil {
		return nil, nil, err
	}

	cfg := &dbconsole.Config{Audit: a, Logger: logger}

	if be.Kind == backend.KindHTTP {
		logger.Debugf("Using backend: %s", be.URL)
		cfg.Backend = client.New(be.URL, client.WithToken(be.Token))
		return cfg, func() {}, nil
	}

	dbe := db.NewDBEnv()
	if err := dbe.Populate(); err != nil {
		return nil, nil, fmt.Errorf("unable to configure database: %w", err)
	}
	logger.Debugf("Using database driver: %s", dbe.Driver)

	conn, err := sql.Open(dbe.Driver.Name(), dbe.ConnectionDSN())
	if err != nil {
		return nil, nil, fmt.Errorf("unable to open database connection: %w", err)
	}
	logger.Debugf("Connected to database host: %s (port: %d)", dbe.Host, dbe.Port)

	cfg.Backend = sqlexec.New(conn, dbe.Driver.Dialect())
	return cfg, func() { _ = conn.Close() }, nil
}

func configureAudit(logger *zap.SugaredLogger) (audit.Audit, error) {
	sinks := audit.Multi{audit.NewLoggerAudit(logger)}

	se := splunk.NewSplunkEnv()
	if err := se.Populate(); err != nil {
		return nil, fmt.Errorf("unable to configure Splunk: %w", err)
	}
	if se.Enabled() {
		logger.Infof("Sending audit to Splunk endpoint: %s", se.Endpoint)
		sinks = append(sinks, audit.NewSplunkAudit(se))
	}

	return sinks, nil
}
