package r5rs

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a *zap.SugaredLogger. Its zero value is a valid no-op
// logger, so an Interp built without WithLogger pays no logging cost and
// needs no nil checks at call sites beyond the one guard in each log*
// helper below. This is the ambient logging concern the teacher gestures
// at with coreext/debugger's trace hooks but never gives a concrete
// library to; zap is the idiomatic choice for the rest of the Go
// ecosystem this corpus is drawn from.
type Logger struct {
	s *zap.SugaredLogger
}

// NewLogger builds a Logger writing to stderr at the given level
// ("debug", "info", "warn", or "error"; anything else defaults to
// "info").
func NewLogger(level string) (Logger, error) {
	var lvl zapcore.Level
	switch level {
	case "debug":
		lvl = zapcore.DebugLevel
	case "warn":
		lvl = zapcore.WarnLevel
	case "error":
		lvl = zapcore.ErrorLevel
	default:
		lvl = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	l, err := cfg.Build()
	if err != nil {
		return Logger{}, err
	}
	return Logger{s: l.Sugar()}, nil
}

func (in *Interp) logDispatch(form string, depth int) {
	if in.logger.s == nil {
		return
	}
	in.logger.s.Debugw("special form", "form", form, "env_depth", depth)
}

func (in *Interp) logPrimitive(name string, argc int) {
	if in.logger.s == nil {
		return
	}
	in.logger.s.Debugw("primitive call", "name", name, "argc", argc)
}

func (in *Interp) logError(err error) {
	if in.logger.s == nil {
		return
	}
	in.logger.s.Warnw("evaluation error", "error", err.Error())
}
