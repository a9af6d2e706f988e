package logging

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type (
	impl struct {
		name  string
		level AtomicLevel
		inUTC bool

		appenders []Appender
	}

	// LogEntry embeds a zapcore Entry and slice of Fields.
	LogEntry struct {
		zapcore.Entry
		fields []zapcore.Field
	}
)

func (imp *impl) NewLogEntry() *LogEntry {
	ret := &LogEntry{}
	ret.Time = time.Now()
	ret.LoggerName = imp.name
	ret.Caller = getCaller()

	return ret
}

func (imp *impl) AddAppender(appender Appender) {
	imp.appenders = append(imp.appenders, appender)
}

func (imp *impl) Desugar() *zap.Logger {
	return imp.AsZap().Desugar()
}

func (imp *impl) SetLevel(level Level) {
	imp.level.Set(level)
}

func (imp *impl) GetLevel() Level {
	return imp.level.Get()
}

func (imp *impl) Level() zapcore.Level {
	return imp.GetLevel().AsZap()
}

func (imp *impl) Sublogger(subname string) Logger {
	newName := subname
	if imp.name != "" {
		newName = fmt.Sprintf("%s.%s", imp.name, subname)
	}

	return &impl{
		name:      newName,
		level:     NewAtomicLevelAt(imp.level.Get()),
		inUTC:     imp.inUTC,
		appenders: imp.appenders,
	}
}

func (imp *impl) Named(name string) *zap.SugaredLogger {
	return imp.AsZap().Named(name)
}

func (imp *impl) Sync() error {
	var errs []error
	for _, appender := range imp.appenders {
		if err := appender.Sync(); err != nil {
			errs = append(errs, err)
		}
	}

	return multierr.Combine(errs...)
}

func (imp *impl) With(args ...interface{}) *zap.SugaredLogger {
	return imp.AsZap().With(args...)
}

func (imp *impl) WithOptions(opts ...zap.Option) *zap.SugaredLogger {
	return imp.AsZap().WithOptions(opts...)
}

func (imp *impl) AsZap() *zap.SugaredLogger {
	// Appenders that are already a `zapcore.Core` (e.g: the observed logs for tests) are used
	// as-is. All others are adapted.
	enabler := zap.LevelEnablerFunc(func(level zapcore.Level) bool {
		return imp.shouldLog(levelFromZap(level))
	})

	cores := make([]zapcore.Core, 0, len(imp.appenders))
	for _, appender := range imp.appenders {
		if core, ok := appender.(zapcore.Core); ok {
			cores = append(cores, core)
			continue
		}
		cores = append(cores, &appenderCore{enabler, appender, nil})
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()).Sugar().Named(imp.name)
}

func levelFromZap(level zapcore.Level) Level {
	switch {
	case level <= zapcore.DebugLevel:
		return DEBUG
	case level == zapcore.InfoLevel:
		return INFO
	case level == zapcore.WarnLevel:
		return WARN
	default:
		return ERROR
	}
}

func (imp *impl) shouldLog(logLevel Level) bool {
	if GlobalLogLevel.Level() == zapcore.DebugLevel {
		return true
	}

	return logLevel >= imp.level.Get()
}

func (imp *impl) log(entry *LogEntry) {
	if imp.inUTC {
		entry.Time = entry.Time.UTC()
	}

	for _, appender := range imp.appenders {
		if err := appender.Write(entry.Entry, entry.fields); err != nil {
			fmt.Fprint(os.Stderr, err)
		}
	}
}

// Constructs the log message by forwarding to `fmt.Sprint`.
func (imp *impl) format(logLevel Level, args ...interface{}) *LogEntry {
	logEntry := imp.NewLogEntry()
	logEntry.Level = logLevel.AsZap()
	logEntry.Message = fmt.Sprint(args...)

	return logEntry
}

// Constructs the log message by forwarding to `fmt.Sprintf`.
func (imp *impl) formatf(logLevel Level, template string, args ...interface{}) *LogEntry {
	logEntry := imp.NewLogEntry()
	logEntry.Level = logLevel.AsZap()
	logEntry.Message = fmt.Sprintf(template, args...)

	return logEntry
}

// Turns `keysAndValues` into fields where the odd elements are the keys and their following even
// counterpart is the value.
func (imp *impl) formatw(logLevel Level, msg string, keysAndValues ...interface{}) *LogEntry {
	logEntry := imp.NewLogEntry()
	logEntry.Level = logLevel.AsZap()
	logEntry.Message = msg

	logEntry.fields = make([]zapcore.Field, 0, len(keysAndValues)/2)
	for keyIdx := 0; keyIdx < len(keysAndValues); keyIdx += 2 {
		keyObj := keysAndValues[keyIdx]
		var keyStr string
		if stringer, ok := keyObj.(fmt.Stringer); ok {
			keyStr = stringer.String()
		} else {
			keyStr = fmt.Sprintf("%v", keyObj)
		}

		if keyIdx+1 < len(keysAndValues) {
			logEntry.fields = append(logEntry.fields, zap.Any(keyStr, keysAndValues[keyIdx+1]))
		} else {
			// API mis-use. Slip in an error message rather than silently discarding the key.
			logEntry.fields = append(logEntry.fields, zap.Any(keyStr, errors.New("unpaired log key")))
		}
	}

	return logEntry
}

func (imp *impl) emit(level Level, force bool, args []interface{}) {
	if force || imp.shouldLog(level) {
		imp.log(imp.format(level, args...))
	}
}

func (imp *impl) emitf(level Level, force bool, template string, args []interface{}) {
	if force || imp.shouldLog(level) {
		imp.log(imp.formatf(level, template, args...))
	}
}

func (imp *impl) emitw(level Level, force bool, msg string, keysAndValues []interface{}) {
	if force || imp.shouldLog(level) {
		imp.log(imp.formatw(level, msg, keysAndValues...))
	}
}

func (imp *impl) Debug(args ...interface{}) {
	imp.emit(DEBUG, false, args)
}

func (imp *impl) Debugf(template string, args ...interface{}) {
	imp.emitf(DEBUG, false, template, args)
}

func (imp *impl) Debugw(msg string, keysAndValues ...interface{}) {
	imp.emitw(DEBUG, false, msg, keysAndValues)
}

func (imp *impl) Info(args ...interface{}) {
	imp.emit(INFO, false, args)
}

func (imp *impl) Infof(template string, args ...interface{}) {
	imp.emitf(INFO, false, template, args)
}

func (imp *impl) Infow(msg string, keysAndValues ...interface{}) {
	imp.emitw(INFO, false, msg, keysAndValues)
}

func (imp *impl) Warn(args ...interface{}) {
	imp.emit(WARN, false, args)
}

func (imp *impl) Warnf(template string, args ...interface{}) {
	imp.emitf(WARN, false, template, args)
}

func (imp *impl) Warnw(msg string, keysAndValues ...interface{}) {
	imp.emitw(WARN, false, msg, keysAndValues)
}

func (imp *impl) Error(args ...interface{}) {
	imp.emit(ERROR, false, args)
}

func (imp *impl) Errorf(template string, args ...interface{}) {
	imp.emitf(ERROR, false, template, args)
}

func (imp *impl) Errorw(msg string, keysAndValues ...interface{}) {
	imp.emitw(ERROR, false, msg, keysAndValues)
}

// The C* variants also log when the context carries a debug directive.
func (imp *impl) CDebug(ctx context.Context, args ...interface{}) {
	imp.emit(DEBUG, IsDebugMode(ctx), args)
}

func (imp *impl) CDebugf(ctx context.Context, template string, args ...interface{}) {
	imp.emitf(DEBUG, IsDebugMode(ctx), template, args)
}

func (imp *impl) CDebugw(ctx context.Context, msg string, keysAndValues ...interface{}) {
	imp.emitw(DEBUG, IsDebugMode(ctx), msg, withRunField(ctx, keysAndValues))
}

// These Fatal* methods log as errors then exit the process.
func (imp *impl) Fatal(args ...interface{}) {
	imp.emit(ERROR, true, args)
	os.Exit(1)
}

func (imp *impl) Fatalf(template string, args ...interface{}) {
	imp.emitf(ERROR, true, template, args)
	os.Exit(1)
}

func (imp *impl) Fatalw(msg string, keysAndValues ...interface{}) {
	imp.emitw(ERROR, true, msg, keysAndValues)
	os.Exit(1)
}

// Return example: "scene/controller.go:36". The caller is found by skipping the logging frames.
func getCaller() zapcore.EntryCaller {
	var ok bool
	var entryCaller zapcore.EntryCaller
	const skipToLogCaller = 5
	entryCaller.PC, entryCaller.File, entryCaller.Line, ok = runtime.Caller(skipToLogCaller)
	if !ok {
		return entryCaller
	}
	entryCaller.Defined = true

	runtimeFunc := runtime.FuncForPC(entryCaller.PC)
	if runtimeFunc != nil {
		entryCaller.Function = runtimeFunc.Name()
	}

	return entryCaller
}
