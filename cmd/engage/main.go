package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/engage/internal/cli"
	"github.com/julianstephens/engage/internal/cli/plans"
	"github.com/julianstephens/engage/internal/cli/system"
	"github.com/julianstephens/engage/internal/constants"
	apperrors "github.com/julianstephens/engage/internal/errors"
	kr "github.com/julianstephens/engage/internal/keyring"
	"github.com/julianstephens/engage/internal/logger"
	"github.com/julianstephens/engage/internal/storage"
	"github.com/julianstephens/engage/internal/storage/postgres"
	"github.com/julianstephens/engage/internal/storage/sqlite"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database path, .json file, or PostgreSQL connection string. Postgres credentials must NOT be embedded; use the environment, .pgpass, or 'engage credentials set'." default:"~/.config/engage/engage.db" env:"ENGAGE_DB"`
	Debug   bool   `help:"Enable debug logging." env:"ENGAGE_DEBUG"`

	Init        system.InitCmd        `cmd:"" help:"Initialize engage storage."`
	Migrate     system.MigrateCmd     `cmd:"" help:"Run database migrations."`
	Doctor      system.DoctorCmd      `cmd:"" help:"Run health checks and diagnostics."`
	Serve       system.ServeCmd       `cmd:"" help:"Run the plan REST API server."`
	Tui         system.TuiCmd         `cmd:"" help:"Launch the interactive plan editor." default:"1"`
	Credentials system.CredentialsCmd `cmd:"" help:"Manage stored database credentials."`
	Plan        struct {
		List   plans.ListCmd   `cmd:"" help:"List plans."`
		Show   plans.ShowCmd   `cmd:"" help:"Show a plan's steps."`
		Stats  plans.StatsCmd  `cmd:"" help:"Show derived statistics and warnings for a plan."`
		Create plans.CreateCmd `cmd:"" help:"Create a blank plan."`
		Delete plans.DeleteCmd `cmd:"" help:"Delete a plan and all its steps."`
	} `cmd:"" help:"Manage engagement plans."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Engagement plan tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	configPath := expandHome(CLI.Config)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: configDir(configPath),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	store, err := selectStore(configPath)
	if err != nil {
		apperrors.Fatal(err)
	}
	defer store.Close()

	appCtx := &cli.Context{
		Store: store,
		Debug: CLI.Debug,
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}

// selectStore picks a backend from the config value: a Postgres
// connection string (flag, environment, or keyring), a .json path, or
// the default SQLite database.
func selectStore(configPath string) (storage.Provider, error) {
	connStr := configPath
	if !storage.IsPostgresConnString(connStr) {
		if env := os.Getenv("ENGAGE_DB_CONNECTION"); storage.IsPostgresConnString(env) {
			connStr = env
		} else if stored, err := kr.GetConnectionString(); err == nil && storage.IsPostgresConnString(stored) {
			connStr = stored
		}
	}

	if storage.IsPostgresConnString(connStr) {
		// Keyring-sourced strings may carry a password; flag-supplied ones may not.
		if connStr == configPath && storage.HasEmbeddedCredentials(connStr) {
			return nil, errors.New("connection strings with embedded credentials are not allowed; use 'engage credentials set' or ENGAGE_DB_CONNECTION")
		}
		return postgres.New(connStr), nil
	}

	if strings.HasSuffix(configPath, ".json") {
		return storage.NewJSONStore(configPath), nil
	}
	return sqlite.NewStore(configPath), nil
}

func configDir(configPath string) string {
	if storage.IsPostgresConnString(configPath) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "."
		}
		return filepath.Join(home, ".config", constants.AppName)
	}
	return filepath.Dir(configPath)
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
