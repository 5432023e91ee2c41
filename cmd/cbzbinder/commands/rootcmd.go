package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/thediveo/enumflag/v2"
)

// Map zerolog levels to their textual representations
var LogLevelIds = map[zerolog.Level][]string{
	zerolog.PanicLevel: {"panic"},
	zerolog.FatalLevel: {"fatal"},
	zerolog.ErrorLevel: {"error"},
	zerolog.WarnLevel:  {"warn", "warning"},
	zerolog.InfoLevel:  {"info"},
	zerolog.DebugLevel: {"debug"},
	zerolog.TraceLevel: {"trace"},
}

// Global log level variable with default
var logLevel zerolog.Level = zerolog.InfoLevel

var rootCmd = &cobra.Command{
	Use:   "cbzbinder",
	Short:        "Bind per-chapter CBZ/ZIP archives into per-volume archives",
	SilenceUsage: true,
}

// bindFlags makes the flags of the running command override configuration and environment.
func bindFlags(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}
	ConfigureLogging(cmd.Flags())
	return nil
}

func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)
}

func getPath() string {
	return filepath.Join(map[string]string{
		"windows": filepath.Join(os.Getenv("APPDATA")),
		"darwin":  filepath.Join(os.Getenv("HOME"), ".config"),
		"linux":   filepath.Join(os.Getenv("HOME"), ".config"),
	}[runtime.GOOS], "CBZBinder")
}

func init() {
	viper.SetDefault("prefix", "")
	viper.SetDefault("format", "cbz")
	viper.SetDefault("parallelism", 2)
	viper.SetDefault("verify", false)

	viper.SetEnvPrefix("CBZBINDER")
	viper.AutomaticEnv()
	// LOG_LEVEL is read without the prefix
	_ = viper.BindEnv("log_level", "LOG_LEVEL")

	// Add log level flag (accepts zerolog levels: panic, fatal, error, warn, info, debug, trace)
	rootCmd.PersistentFlags().VarP(
		enumflag.New(&logLevel, "log", LogLevelIds, enumflag.EnumCaseInsensitive),
		"log", "l",
		"Set log level; can be 'panic', 'fatal', 'error', 'warn', 'info', 'debug', or 'trace'")

	rootCmd.PersistentPreRunE = bindFlags
	cobra.OnInitialize(initConfig)
}

// initConfig reads config.yaml from the user configuration folder, creating it on first run.
func initConfig() {
	configFolder := getPath()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolder)

	if err := os.MkdirAll(configFolder, os.ModePerm); err != nil {
		log.Warn().Str("folder", configFolder).Err(err).Msg("Cannot create configuration folder")
		return
	}
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Warn().Err(err).Msg("Cannot read configuration file")
			return
		}
		if err := viper.SafeWriteConfig(); err != nil {
			log.Warn().Str("folder", configFolder).Err(err).Msg("Cannot write default configuration file")
		}
	}
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("Command execution failed")
	}
}

func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

// ConfigureLogging sets up zerolog based on command-line flags and environment variables
func ConfigureLogging(flags *pflag.FlagSet) {
	// Start with default log level (info)
	level := zerolog.InfoLevel

	// Check LOG_LEVEL environment variable first
	envLogLevel := viper.GetString("log_level")
	if envLogLevel != "" {
		if parsedLevel, err := zerolog.ParseLevel(envLogLevel); err == nil {
			level = parsedLevel
		}
	}

	// Command-line log flag takes precedence over environment variable
	if flags.Changed("log") {
		level = logLevel
	}

	zerolog.SetGlobalLevel(level)

	fd := os.Stderr.Fd()
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:     os.Stderr,
		NoColor: !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd),
	})
}
