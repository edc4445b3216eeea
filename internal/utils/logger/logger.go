// Package logger provides a global logger for the application
package logger

import (
	"flag"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Logger = zap.NewNop()

var initOnce sync.Once

func initLogger() {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).With().Caller().Logger()

	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("No .env file loaded, using process environment")
	}

	debug := flag.Bool("debug", false, "sets log level to debug")
	trace := flag.Bool("trace", false, "sets log level to trace")
	info := flag.Bool("info", false, "sets log level to info (default)")
	flag.Parse()

	environment := strings.ToLower(os.Getenv("ENVIRONMENT"))
	if environment == "" {
		environment = "prod"
	}

	logLevel := LevelForEnvironment(environment)
	if *debug {
		logLevel = zerolog.DebugLevel
		log.Info().Msg("Debug flag detected - overriding environment log level")
	} else if *trace {
		logLevel = zerolog.TraceLevel
		log.Info().Msg("Trace flag detected - overriding environment log level")
	} else if *info {
		logLevel = zerolog.InfoLevel
		log.Info().Msg("Info flag detected - overriding environment log level")
	}

	zerolog.SetGlobalLevel(logLevel)

	zl, err := newZapLogger(environment, logLevel)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to build zap logger, sugared logging disabled")
	} else {
		Logger = zl
	}

	log.Debug().Str("environment", environment).Str("level", logLevel.String()).Msg("Logger initialised")
}

// LevelForEnvironment maps ENVIRONMENT to the default zerolog level.
func LevelForEnvironment(environment string) zerolog.Level {
	switch environment {
	case "dev", "test":
		return zerolog.TraceLevel
	case "prod":
		return zerolog.InfoLevel
	default:
		log.Warn().Str("environment", environment).Msg("Unknown environment - defaulting to production log level (info and above)")
		return zerolog.InfoLevel
	}
}

func newZapLogger(environment string, level zerolog.Level) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if environment == "dev" || environment == "test" {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(zapLevel(level))
	return cfg.Build()
}

func zapLevel(level zerolog.Level) zapcore.Level {
	switch {
	case level <= zerolog.DebugLevel:
		return zap.DebugLevel
	case level == zerolog.InfoLevel:
		return zap.InfoLevel
	case level == zerolog.WarnLevel:
		return zap.WarnLevel
	default:
		return zap.ErrorLevel
	}
}

// Init initializes the logger with the configuration from the environment
// and command line flags. It parses the command line, so callers define
// their own flags first.
// Example usage:
//
//	logger.Init() <- inside whichever main() function in your entrypoint
//
// Then, `go run cmd/evaluate/main.go --debug`
func Init() {
	initOnce.Do(initLogger)
}

// Sugar returns a sugared logger for easier use
func Sugar() *zap.SugaredLogger {
	return Logger.Sugar()
}
