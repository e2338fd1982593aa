package cmd

import (
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strconv"
	"time"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/justinas/alice"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	dbconsole "github.com/app-sre/dbconsole/pkg"
	"github.com/app-sre/dbconsole/pkg/env/console"
	"github.com/app-sre/dbconsole/pkg/handlers"
	"github.com/app-sre/dbconsole/pkg/middleware"
	"github.com/app-sre/dbconsole/pkg/version"
)

const (
	readTimeout       = 1 * time.Minute
	readHeaderTimeout = 20 * time.Second
	writeTimeout      = 2 * time.Minute
)

func (c *cli) serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the console over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.serve()
		},
	}
}

func (c *cli) serve() error {
	production := dbconsole.Production()
	c.logger.Infof("Starting dbconsole version: %s", version.Version())

	ce := console.NewConsoleEnv()
	if err := ce.Populate(); err != nil {
		return fmt.Errorf("unable to configure console: %w", err)
	}

	cfg, release, err := c.config(c.logger)
	if err != nil {
		return err
	}
	defer release()

	timeout := dbconsole.RequestTimeout()
	c.logger.Infof("Production: %t, role: %s, request timeout: %s", production, ce.Role, timeout)

	// Temp workaround for easy to access io.Writer.
	defaultLogOutput := log.Default().Writer()

	healthLogOutput := io.Discard
	if !production {
		healthLogOutput = defaultLogOutput
	}

	c.logger.Infof("HTTP server starting on port: %d", ce.Port)

	server := &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(ce.Port)),
		Handler:           Router(cfg, ce.Role, timeout, defaultLogOutput, healthLogOutput),
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
	}
	if err := server.ListenAndServe(); err != nil {
		return fmt.Errorf("unable to start HTTP server: %w", err)
	}

	return nil
}

// Router routes the console operations of the given role. Access logs go to
// logOutput, except for health checks which go to healthLogOutput.
func Router(cfg *dbconsole.Config, role console.Role, timeout time.Duration, logOutput, healthLogOutput io.Writer) http.Handler {
	logHandler := gorillaHandlers.LoggingHandler

	chain := alice.New(
		alice.Constructor(middleware.Recovery(cfg)),
		alice.Constructor(middleware.User()),
		alice.Constructor(middleware.Timeout(timeout)),
	)

	r := mux.NewRouter()
	r.Handle("/healthcheck", logHandler(healthLogOutput, handlers.Healthcheck(cfg))).Methods(http.MethodGet)

	routes := map[string]http.HandlerFunc{
		"/console/query": handlers.Query(cfg),
	}
	switch role {
	case console.RoleMaster:
		routes["/console/database/create"] = handlers.CreateDatabase(cfg)
		routes["/console/database/drop"] = handlers.DropDatabase(cfg)
		routes["/console/table/create"] = handlers.CreateTable(cfg)
		routes["/console/table/drop"] = handlers.DropTable(cfg)
		routes["/console/data/insert"] = handlers.InsertData(cfg)
		routes["/console/data/select"] = handlers.SelectData(cfg)
		routes["/console/data/update"] = handlers.UpdateData(cfg)
		routes["/console/column/delete"] = handlers.DeleteColumn(cfg)

		r.Handle("/console/slaves", logHandler(logOutput, chain.Then(handlers.Slaves(cfg)))).Methods(http.MethodGet)
	case console.RoleSlave:
		routes["/console/records/search"] = handlers.SearchRecords(cfg)
		routes["/console/records/update"] = handlers.UpdateRecords(cfg)
		routes["/console/records/delete"] = handlers.DeleteRecords(cfg)
	}

	for path, h := range routes {
		r.Handle(path, logHandler(logOutput, chain.Then(h))).Methods(http.MethodPost)
	}

	return r
}

// Run serves the console configured from the environment.
func Run(logger *zap.SugaredLogger) error {
	c := &cli{logger: logger, config: Configure}
	return c.serve()
}
