package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/user"
	"strings"

	"github.com/spf13/cobra"

	dbconsole "github.com/app-sre/dbconsole/pkg"
	"github.com/app-sre/dbconsole/pkg/console"
	"github.com/app-sre/dbconsole/pkg/form"
	"github.com/app-sre/dbconsole/pkg/render"
)

func (c *cli) queryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "query SQL",
		Short: "Execute a query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withMaster(cmd, func(ctx context.Context, m *console.Master) *render.Panel {
				m.ExecuteQuery(ctx, &form.Query{Query: args[0]})
				return m.Result()
			})
		},
	}
}

func (c *cli) slavesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "slaves",
		Short: "List the slaves known to the master",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withMaster(cmd, func(ctx context.Context, m *console.Master) *render.Panel {
				m.LoadSlaves(ctx)
				return m.Slaves()
			})
		},
	}
}

func (c *cli) createDatabaseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create-database NAME",
		Short: "Create a database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withMaster(cmd, func(ctx context.Context, m *console.Master) *render.Panel {
				m.CreateDatabase(ctx, &form.CreateDatabase{DBName: args[0]})
				return m.Result()
			})
		},
	}
}

func (c *cli) dropDatabaseCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "drop-database NAME",
		Short: "Drop a database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withMaster(cmd, func(ctx context.Context, m *console.Master) *render.Panel {
				m.DropDatabase(ctx, &form.DropDatabase{DBName: args[0]}, confirmer(cmd, yes))
				return m.Result()
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	return cmd
}

func (c *cli) dropTableCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "drop-table DB TABLE",
		Short: "Drop a table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withMaster(cmd, func(ctx context.Context, m *console.Master) *render.Panel {
				m.DropTable(ctx, &form.DropTable{DBName: args[0], TableName: args[1]}, confirmer(cmd, yes))
				return m.Result()
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")

	return cmd
}

func (c *cli) searchCommand() *cobra.Command {
	var column, value string

	cmd := &cobra.Command{
		Use:   "search DB TABLE",
		Short: "Search the records of a table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSlave(cmd, func(ctx context.Context, s *console.Slave) *render.Panel {
				s.SearchRecords(ctx, &form.Search{DBName: args[0], TableName: args[1], Column: column, Value: value})
				return s.Result()
			})
		},
	}
	cmd.Flags().StringVar(&column, "column", "", "column to search")
	cmd.Flags().StringVar(&value, "value", "", "text the column must contain")

	return cmd
}

func (c *cli) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete DB TABLE WHERE",
		Short: "Delete the records matching a where clause",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSlave(cmd, func(ctx context.Context, s *console.Slave) *render.Panel {
				s.DeleteRecords(ctx, &form.DeleteRecords{DBName: args[0], TableName: args[1], Where: args[2]})
				return s.Result()
			})
		},
	}
}

func (c *cli) withMaster(cmd *cobra.Command, op func(context.Context, *console.Master) *render.Panel) error {
	return c.run(cmd, func(ctx context.Context, cfg *dbconsole.Config) *render.Panel {
		return op(ctx, console.NewMaster(cfg))
	})
}

func (c *cli) withSlave(cmd *cobra.Command, op func(context.Context, *console.Slave) *render.Panel) error {
	return c.run(cmd, func(ctx context.Context, cfg *dbconsole.Config) *render.Panel {
		return op(ctx, console.NewSlave(cfg))
	})
}

func (c *cli) run(cmd *cobra.Command, op func(context.Context, *dbconsole.Config) *render.Panel) error {
	cfg, release, err := c.config(c.logger)
	if err != nil {
		return err
	}
	defer release()

	ctx, cancel := context.WithTimeout(cmd.Context(), dbconsole.RequestTimeout())
	defer cancel()

	panel := op(dbconsole.WithUser(ctx, currentUser()), cfg)

	view := panel.View()
	if err := render.Text(cmd.OutOrStdout(), view, !c.noColor); err != nil {
		return err
	}
	if view.Kind == render.KindError {
		return ErrFailed
	}
	return nil
}

func confirmer(cmd *cobra.Command, yes bool) console.Confirmer {
	if yes {
		return console.Always
	}
	return console.ConfirmFunc(func(_ context.Context, prompt string) bool {
		return ask(cmd.InOrStdin(), cmd.OutOrStdout(), prompt)
	})
}

// ask prints the prompt and reads a yes or no answer. Anything but an
// explicit yes declines.
func ask(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

func currentUser() string {
	u, err := user.Current()
	if err != nil {
		return dbconsole.AnonymousUser
	}
	return u.Username
}
