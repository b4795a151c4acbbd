package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/xy-planning-network/enums"
	"github.com/xy-planning-network/enums/commerce"
	"github.com/xy-planning-network/enums/logger"
	"github.com/xy-planning-network/enums/postgres"
)

const envPrefix = "ENUMCTL"

// flag names double as viper keys
const (
	definitionsFlag = "definitions"
	envFlag         = "env"
	logLevelFlag    = "log-level"
)

type app struct {
	v       *viper.Viper
	reg     *enums.Registry
	log     logger.Logger
	connect func(*postgres.CxnConfig, logger.Logger) (*postgres.DB, error)
}

// NewCommand constructs the enumctl root command and its subcommands.
//
// Every persistent flag can also be set through an ENUMCTL_ env var,
// e.g. ENUMCTL_DEFINITIONS or ENUMCTL_LOG_LEVEL.
// A .env file in the working directory is loaded first, when present.
func NewCommand() *cobra.Command { return newCommand(postgres.Connect) }

func newCommand(connect func(*postgres.CxnConfig, logger.Logger) (*postgres.DB, error)) *cobra.Command {
	a := &app{v: viper.New(), connect: connect}

	cmd := &cobra.Command{
		Use:               "enumctl",
		Short:             "Inspect enum definitions and audit stored codes",
		Long:              `enumctl lists the enum columns and scopes of the storefront, translates between labels and codes, renders scopes as SQL and audits a database for codes without a label.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := cmd.PersistentFlags()
	flags.String(definitionsFlag, "", "YAML file of definitions and entities registered alongside the storefront")
	flags.String(envFlag, enums.Development.String(), "Environment (DEVELOPMENT, STAGING, PRODUCTION, TESTING)")
	flags.String(logLevelFlag, "INFO", "Log level (DEBUG, INFO, WARN, ERROR)")

	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	_ = a.v.BindPFlags(flags)

	cmd.AddCommand(
		a.newListCommand(),
		a.newCodeCommand(),
		a.newLabelCommand(),
		a.newSQLCommand(),
		a.newAuditCommand(),
	)

	return cmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	err := godotenv.Load()
	var pe *fs.PathError
	if err != nil && !errors.As(err, &pe) {
		return fmt.Errorf("%w: %s", enums.ErrBadConfig, err)
	}

	env := a.environment()
	level := logger.NewLogLevel(strings.ToUpper(a.v.GetString(logLevelFlag)))
	if level == logger.LogLevelUnk {
		return fmt.Errorf("%w: unknown log level %q", enums.ErrBadConfig, a.v.GetString(logLevelFlag))
	}

	a.log = logger.New(
		logger.WithEnv(env.String()),
		logger.WithLevel(level),
		logger.WithLogger(log.New(cmd.ErrOrStderr(), "", log.LstdFlags)),
	)

	var extra []enums.Entity
	if path := a.v.GetString(definitionsFlag); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("%w: %s", enums.ErrBadConfig, err)
		}

		if extra, err = enums.ParseConfig(b, commerce.Definitions()...); err != nil {
			return err
		}
	}

	a.reg, err = commerce.NewRegistry(extra, enums.WithLogger(a.log))
	return err
}

func (a *app) environment() enums.Environment {
	env := enums.Environment(strings.ToUpper(a.v.GetString(envFlag)))
	if env.Valid() != nil {
		return enums.Development
	}

	return env
}

// definition finds the Definition bound to column on entity, single or multi valued.
func (a *app) definition(entity, column string) (*enums.Definition, error) {
	if f, err := a.reg.Field(entity, column); err == nil {
		return f.Definition, nil
	}

	m, err := a.reg.MultiField(entity, column)
	if err != nil {
		return nil, fmt.Errorf("%w: enum column %s.%s", enums.ErrNotExist, entity, column)
	}

	return m.Definition, nil
}
