package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

var (
	errSubLoggerNotFound     = errors.New("sub logger not found")
	errUnhandledOutputWriter = errors.New("unhandled output writer")
	errLogConfigNil          = errors.New("log config is nil")
)

func getWriters(output string) (io.Writer, error) {
	outputWriters := strings.Split(output, "|")
	writers := make([]io.Writer, 0, len(outputWriters))
	for x := range outputWriters {
		switch strings.ToLower(strings.TrimSpace(outputWriters[x])) {
		case "console", "":
			writers = append(writers, zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: timestampFormat})
		case "stdout":
			writers = append(writers, os.Stdout)
		case "stderr":
			writers = append(writers, os.Stderr)
		default:
			return nil, fmt.Errorf("%w: %s", errUnhandledOutputWriter, outputWriters[x])
		}
	}
	if len(writers) == 1 {
		return writers[0], nil
	}
	return zerolog.MultiLevelWriter(writers...), nil
}

// GenDefaultSettings return struct with known sane/working logger settings
func GenDefaultSettings() Config {
	enabled := true
	return Config{
		Enabled: &enabled,
		SubLoggerConfig: SubLoggerConfig{
			Level:  "INFO|WARN|ERROR",
			Output: "console",
		},
	}
}

// SetupGlobalLogger applies the config to every registered sub logger, then
// applies any individual sub logger overrides
func SetupGlobalLogger(cfg *Config) error {
	if cfg == nil {
		return errLogConfigNil
	}
	mu.Lock()
	defer mu.Unlock()

	if cfg.Enabled != nil && !*cfg.Enabled {
		for _, sl := range subLoggers {
			sl.levels = Levels{}
			sl.setOutput(io.Discard)
		}
		return nil
	}

	output, err := getWriters(cfg.Output)
	if err != nil {
		return err
	}
	for _, sl := range subLoggers {
		sl.levels = splitLevel(cfg.Level)
		sl.setOutput(output)
	}

	for x := range cfg.SubLoggers {
		output, err = getWriters(cfg.SubLoggers[x].Output)
		if err != nil {
			return err
		}
		err = configureSubLogger(cfg.SubLoggers[x].Name, cfg.SubLoggers[x].Level, output)
		if err != nil {
			return err
		}
	}
	return nil
}

func configureSubLogger(subLogger, levels string, output io.Writer) error {
	sl, found := subLoggers[strings.ToUpper(subLogger)]
	if !found {
		return fmt.Errorf("%w: %v", errSubLoggerNotFound, subLogger)
	}
	sl.levels = splitLevel(levels)
	sl.setOutput(output)
	return nil
}

func splitLevel(level string) (l Levels) {
	enabledLevels := strings.Split(level, "|")
	for x := range enabledLevels {
		switch strings.ToUpper(strings.TrimSpace(enabledLevels[x])) {
		case "DEBUG":
			l.Debug = true
		case "INFO":
			l.Info = true
		case "WARN":
			l.Warn = true
		case "ERROR":
			l.Error = true
		}
	}
	return
}

func (sl *SubLogger) setOutput(w io.Writer) {
	sl.output = w
	sl.logger = zerolog.New(w).With().Timestamp().Str("sublogger", sl.name).Logger()
}

func registerNewSubLogger(name string) *SubLogger {
	sl := &SubLogger{
		name:   strings.ToUpper(name),
		levels: splitLevel(defaultLevels),
	}
	sl.setOutput(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: timestampFormat})
	subLoggers[sl.name] = sl
	return sl
}

// register all loggers at package init()
func init() {
	Global = registerNewSubLogger("LOG")
	ConfigMgr = registerNewSubLogger("CONFIG")
	RequestSys = registerNewSubLogger("REQUESTER")
	ExchangeSys = registerNewSubLogger("EXCHANGE")
	Trade = registerNewSubLogger("TRADE")
}
