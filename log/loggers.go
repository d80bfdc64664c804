package log

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Info takes a pointer subLogger struct and string and logs at info level
func Info(sl *SubLogger, data string) {
	emit(sl, zerolog.InfoLevel, func() string { return data })
}

// Infoln takes a pointer subLogger struct and interface and logs at info level
func Infoln(sl *SubLogger, v ...interface{}) {
	emit(sl, zerolog.InfoLevel, func() string { return fmt.Sprint(v...) })
}

// Infof takes a pointer subLogger struct, string and interface formats and
// logs at info level
func Infof(sl *SubLogger, data string, v ...interface{}) {
	emit(sl, zerolog.InfoLevel, func() string { return fmt.Sprintf(data, v...) })
}

// Debug takes a pointer subLogger struct and string and logs at debug level
func Debug(sl *SubLogger, data string) {
	emit(sl, zerolog.DebugLevel, func() string { return data })
}

// Debugln takes a pointer subLogger struct and interface and logs at debug level
func Debugln(sl *SubLogger, v ...interface{}) {
	emit(sl, zerolog.DebugLevel, func() string { return fmt.Sprint(v...) })
}

// Debugf takes a pointer subLogger struct, string and interface formats and
// logs at debug level
func Debugf(sl *SubLogger, data string, v ...interface{}) {
	emit(sl, zerolog.DebugLevel, func() string { return fmt.Sprintf(data, v...) })
}

// Warn takes a pointer subLogger struct and string and logs at warn level
func Warn(sl *SubLogger, data string) {
	emit(sl, zerolog.WarnLevel, func() string { return data })
}

// Warnf takes a pointer subLogger struct, string and interface formats and
// logs at warn level
func Warnf(sl *SubLogger, data string, v ...interface{}) {
	emit(sl, zerolog.WarnLevel, func() string { return fmt.Sprintf(data, v...) })
}

// Error takes a pointer subLogger struct and string and logs at error level
func Error(sl *SubLogger, data string) {
	emit(sl, zerolog.ErrorLevel, func() string { return data })
}

// Errorln takes a pointer subLogger struct and interface and logs at error level
func Errorln(sl *SubLogger, v ...interface{}) {
	emit(sl, zerolog.ErrorLevel, func() string { return fmt.Sprint(v...) })
}

// Errorf takes a pointer subLogger struct, string and interface formats and
// logs at error level
func Errorf(sl *SubLogger, data string, v ...interface{}) {
	emit(sl, zerolog.ErrorLevel, func() string { return fmt.Sprintf(data, v...) })
}

// emit defers message formatting until the level is known to be enabled
func emit(sl *SubLogger, level zerolog.Level, msg func() string) {
	if sl == nil {
		return
	}
	mu.RLock()
	defer mu.RUnlock()
	if !sl.enabled(level) {
		return
	}
	sl.logger.WithLevel(level).Msg(msg())
}

func (sl *SubLogger) enabled(level zerolog.Level) bool {
	switch level {
	case zerolog.InfoLevel:
		return sl.levels.Info
	case zerolog.DebugLevel:
		return sl.levels.Debug
	case zerolog.WarnLevel:
		return sl.levels.Warn
	case zerolog.ErrorLevel:
		return sl.levels.Error
	}
	return false
}
