package resolve

import (
	"sync"

	"github.com/funvibe/typewalk/internal/hierarchy"
	"github.com/funvibe/typewalk/internal/registry"
	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the engine logger. It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the engine logger and the loggers of the resolver
// internals. It must be called before any Engine is created.
func SetLogger(l *zap.Logger) {
	logger = l
	hierarchy.SetLogger(l)
	registry.SetLogger(l)
}
