package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kode4food/kmlog"
)

type app struct {
	out     io.Writer
	cfg     kmlog.Config
	asJSON  bool
	verbose bool
}

type action func(context.Context, *kmlog.EventLog, []string) error

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{
		out: out,
		cfg: kmlog.DefaultConfig(),
	}

	root := &cobra.Command{
		Use:          "kmlog",
		Short:        "Log odometer readings and summarize the distance driven",
		SilenceUsage: true,
	}
	root.SetOut(out)

	st := &a.cfg.Store
	flags := root.PersistentFlags()
	flags.StringVar(&st.Backend, "backend", st.Backend,
		"store backend: memory, redis, bolt or postgres")
	flags.StringVar(&st.Path, "path", st.Path, "bbolt file path")
	flags.StringVar(&st.Addr, "redis-addr", st.Addr, "Redis address")
	flags.StringVar(&st.Password, "redis-password", st.Password,
		"Redis password")
	flags.IntVar(&st.DB, "redis-db", st.DB, "Redis database")
	flags.StringVar(&st.Prefix, "prefix", st.Prefix,
		"Redis key prefix, bbolt bucket or Postgres key namespace")
	flags.StringVar(&st.DSN, "dsn", st.DSN, "Postgres connection string")
	flags.DurationVar(&st.Timeout, "timeout", st.Timeout, "connect timeout")
	flags.StringVar(&a.cfg.Key, "key", a.cfg.Key, "storage key of the log")
	flags.BoolVar(&a.asJSON, "json", false, "print JSON instead of text")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		positional(&cobra.Command{
			Use:     "add DATE KILOMETER",
			Short:   "Log a new reading",
			Example: "  kmlog add 2024-01-01 -5\n  kmlog add -- 2024-01-01 -5",
			Args:    cobra.ExactArgs(2),
			RunE:    a.run(a.add, true),
		}),
		positional(&cobra.Command{
			Use:     "update INDEX DATE KILOMETER",
			Short:   "Replace the reading at INDEX (as shown by list)",
			Example: "  kmlog update 2 2024-01-06 125",
			Args:    cobra.ExactArgs(3),
			RunE:    a.run(a.update, true),
		}),
		&cobra.Command{
			Use:     "delete INDEX",
			Aliases: []string{"rm"},
			Short:   "Delete the reading at INDEX (as shown by list)",
			Args:    cobra.ExactArgs(1),
			RunE:    a.run(a.delete, true),
		},
		&cobra.Command{
			Use:   "list",
			Short: "List all readings",
			Args:  cobra.NoArgs,
			RunE:  a.run(a.list, false),
		},
		&cobra.Command{
			Use:   "summary",
			Short: "Print the summary statistics",
			Args:  cobra.NoArgs,
			RunE:  a.run(a.summary, false),
		},
		&cobra.Command{
			Use:   "series",
			Short: "Print the day and kilometer gaps between readings",
			Args:  cobra.NoArgs,
			RunE:  a.run(a.series, false),
		},
	)
	return root
}

// positional stops flag parsing at the first argument, so a negative
// reading such as -5 is taken as KILOMETER instead of a shorthand flag.
// Flags must precede the arguments, or be separated from them with --
func positional(cmd *cobra.Command) *cobra.Command {
	cmd.Flags().SetInterspersed(false)
	return cmd
}

// run opens the configured store, loads the log and hands it to fn. When
// render is set, the list and summary are printed after fn succeeds
func (a *app) run(fn action, render bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		logger, err := a.logger()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		cfg := a.cfg
		cfg.Logger = logger
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		store, err := kmlog.NewStore(ctx, cfg.Store)
		if err != nil {
			return fmt.Errorf("open %s store: %w", cfg.Store.Backend, err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				logger.Warn("Failed to close store", zap.Error(err))
			}
		}()

		l := kmlog.NewEventLog(store, cfg)
		if err := l.Load(ctx); err != nil {
			return err
		}
		if err := fn(ctx, l, args); err != nil {
			return err
		}
		if !render {
			return nil
		}
		return a.render(l)
	}
}

func (a *app) logger() (*zap.Logger, error) {
	if !a.verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

func (a *app) add(ctx context.Context, l *kmlog.EventLog, args []string) error {
	_, err := l.Add(ctx, args[0], args[1])
	return err
}

func (a *app) update(
	ctx context.Context, l *kmlog.EventLog, args []string,
) error {
	idx, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	if _, err := l.BeginEdit(idx); err != nil {
		return err
	}
	_, err = l.CommitEdit(ctx, args[1], args[2])
	return err
}

func (a *app) delete(
	ctx context.Context, l *kmlog.EventLog, args []string,
) error {
	idx, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	_, err = l.Delete(ctx, idx)
	return err
}

func (a *app) list(_ context.Context, l *kmlog.EventLog, _ []string) error {
	return a.printEvents(l.Events())
}

func (a *app) summary(_ context.Context, l *kmlog.EventLog, _ []string) error {
	return a.printSummary(l.Summary())
}

func (a *app) series(_ context.Context, l *kmlog.EventLog, _ []string) error {
	return a.printSeries(l.Series())
}

// parseIndex converts the 1-based position shown by list into an index
func parseIndex(str string) (int, error) {
	pos, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("index %q is not a number", str)
	}
	return pos - 1, nil
}
