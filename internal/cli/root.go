// Package cli implements the draftkit command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/reoring/draftkit/i18n"
)

// ErrInvalid is returned when a command ran but found invalid input, so the
// caller can exit non-zero without printing it again.
var ErrInvalid = errors.New("invalid input")

type app struct {
	v       *viper.Viper
	cfgFile string
}

// NewRootCommand builds the draftkit command tree with its own configuration.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "draftkit",
		Short: "Detect, migrate and validate JSON Schema dialects",
		Long: `draftkit works with JSON Schema documents written for draft-07, 2019-09 and 2020-12.

It detects which dialect a schema targets, migrates older schemas to 2020-12 and
validates data against a schema with an engine chosen for its dialect.
Schemas and data may be written as JSON or YAML.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.initConfig(); err != nil {
				return err
			}
			a.initLogging(cmd)
			i18n.SetLanguage(a.v.GetString("lang"))
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.draftkit/config.yaml)")
	pf.String("log-level", "disabled", "log level (debug, info, warn, error)")
	pf.String("output", "text", "output format (text, json, yaml)")
	pf.BoolP("quiet", "q", false, "suppress non-essential output")
	pf.String("lang", "en", "language of migration messages (en, ja)")
	for _, name := range []string{"log-level", "output", "quiet", "lang"} {
		_ = a.v.BindPFlag(name, pf.Lookup(name))
	}

	root.AddCommand(
		a.detectCommand(),
		a.migrateCommand(),
		a.summaryCommand(),
		a.validateCommand(),
		a.checkCommand(),
		a.draftsCommand(),
		a.serveCommand(),
		a.typesCommand(),
		a.versionCommand(),
	)
	return root
}

// Execute runs the command line with os.Args.
func Execute() error {
	return NewRootCommand().ExecuteContext(context.Background())
}

// initConfig reads the config file and DRAFTKIT_ environment variables.
func (a *app) initConfig() error {
	_ = godotenv.Load()

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			a.v.AddConfigPath(filepath.Join(home, ".draftkit"))
		}
		a.v.AddConfigPath(".draftkit")
		a.v.SetConfigType("yaml")
		a.v.SetConfigName("config")
	}

	a.v.SetEnvPrefix("DRAFTKIT")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
		return nil
	}
	log.Debug().Str("file", a.v.ConfigFileUsed()).Msg("Using config file")
	return nil
}

// initLogging configures the global logger
func (a *app) initLogging(cmd *cobra.Command) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	switch a.v.GetString("log-level") {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.Disabled)
	}

	if a.v.GetString("output") == "text" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()})
	} else {
		log.Logger = zerolog.New(cmd.ErrOrStderr()).With().Timestamp().Logger()
	}
}

func (a *app) outputFormat() string { return a.v.GetString("output") }
