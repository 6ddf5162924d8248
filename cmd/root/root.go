// Package root contains the root command and the shared wiring for all
// subcommands.
package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"pvillar/hogarfin/internal/common"
	"pvillar/hogarfin/internal/config"
	"pvillar/hogarfin/internal/container"
	"pvillar/hogarfin/internal/logging"
	"pvillar/hogarfin/internal/tenant"
)

// CommonFlags are the persistent flags shared by every subcommand.
type CommonFlags struct {
	Account   string
	DataUser  string
	LogLevel  string
	LogFormat string
}

var (
	// SharedFlags holds the parsed persistent flag values.
	SharedFlags = CommonFlags{}

	app *container.Container

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "hogarfin",
		Short: "Ingest Spanish bank statements and track household spending.",
		Long: `hogarfin normalizes bank statements (CSV, Excel, camt.053 XML, PDF) into
one canonical transaction history per household member, categorizes every
movement and keeps re-imports idempotent. Budgets, savings goals, reports
and a correction flow sit on top of the shared history.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Welcome to hogarfin!")
			fmt.Println("Use --help to see available commands")
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app == nil {
				return
			}
			// Corrections learned during this run go back to storage.
			if err := app.FlushLearned(cmd.Context()); err != nil {
				app.GetLogger().WithError(err).Warn("Failed to flush learned mappings")
			}
		},
	}
)

// Init registers the persistent flags on the root command.
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Account, "account", "a", "", "Account email (household namespace)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.DataUser, "user", "u", "", "Data user the command acts for")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogFormat, "log-format", "", "Log format (text, json)")
}

// App builds the dependency container on first use. Flags override the
// configuration file and environment.
func App(ctx context.Context) (*container.Container, error) {
	if app != nil {
		return app, nil
	}

	config.LoadEnv()
	cfg, err := config.InitializeConfig()
	if err != nil {
		return nil, err
	}

	if SharedFlags.Account != "" {
		cfg.Account.Email = SharedFlags.Account
	}
	if SharedFlags.DataUser != "" {
		cfg.Account.DataUser = SharedFlags.DataUser
	}
	if SharedFlags.LogLevel != "" {
		cfg.Log.Level = SharedFlags.LogLevel
	}
	if SharedFlags.LogFormat != "" {
		cfg.Log.Format = SharedFlags.LogFormat
	}

	logger := config.ConfigureLoggingFromConfig(cfg)
	logging.Register(logger)
	common.SetLogger(logger)
	common.SetDelimiter([]rune(cfg.CSV.Delimiter)[0])

	app, err = container.NewContainer(ctx, cfg)
	if err != nil {
		app = nil
		return nil, err
	}
	return app, nil
}

// DataUserName returns the data user the command acts for, flag first,
// configuration second.
func DataUserName(c *container.Container) string {
	if SharedFlags.DataUser != "" {
		return SharedFlags.DataUser
	}
	return c.GetConfig().Account.DataUser
}

// DataKey resolves the storage key for the selected data user.
func DataKey(ctx context.Context, c *container.Container) (string, error) {
	return c.ResolveDataKey(ctx, DataUserName(c))
}

// DataUserID returns the slug the selected data user's rows are tagged with.
func DataUserID(c *container.Container) string {
	return tenant.DataUserID(DataUserName(c))
}

// Reset clears the cached container. Used by tests.
func Reset() {
	app = nil
	SharedFlags = CommonFlags{}
}
