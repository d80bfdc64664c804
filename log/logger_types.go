package log

import (
	"io"
	"sync"

	"github.com/rs/zerolog"
)

const (
	timestampFormat = "02/01/2006 15:04:05"
	defaultLevels   = "INFO|WARN|DEBUG|ERROR"
)

var (
	// read/write mutex for logger
	mu = &sync.RWMutex{}

	subLoggers = map[string]*SubLogger{}

	Global      *SubLogger
	ConfigMgr   *SubLogger
	RequestSys  *SubLogger
	ExchangeSys *SubLogger
	Trade       *SubLogger
)

// Config holds configuration settings for the logger
type Config struct {
	Enabled         *bool `json:"enabled" mapstructure:"enabled"`
	SubLoggerConfig `mapstructure:",squash"`
	SubLoggers      []SubLoggerConfig `json:"subloggers,omitempty" mapstructure:"subloggers"`
}

// SubLoggerConfig holds sub logger configuration settings
type SubLoggerConfig struct {
	Name   string `json:"name,omitempty" mapstructure:"name"`
	Level  string `json:"level" mapstructure:"level"`
	Output string `json:"output" mapstructure:"output"`
}

// Levels flags for each sub logger type
type Levels struct {
	Info, Debug, Warn, Error bool
}

// SubLogger defines a sub logger that can be used externally for packages
type SubLogger struct {
	name   string
	levels Levels
	output io.Writer
	logger zerolog.Logger
}
