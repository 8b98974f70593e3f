package api

import (
	"fmt"
	"strings"

	"github.com/compozy/products/pkg/logger"
)

// restyLogger sends resty's request dumps and transport warnings to a Logger.
// Dumps only exist when debug tracing is on, so they are logged at info.
type restyLogger struct {
	log logger.Logger
}

func (l restyLogger) Errorf(format string, v ...any) {
	l.log.Error(logLine(format, v))
}

func (l restyLogger) Warnf(format string, v ...any) {
	l.log.Warn(logLine(format, v))
}

func (l restyLogger) Debugf(format string, v ...any) {
	l.log.Info(logLine(format, v))
}

func logLine(format string, v []any) string {
	return strings.TrimSpace(fmt.Sprintf(format, v...))
}
