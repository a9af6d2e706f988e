package config

import (
	"sync"

	"go.uber.org/zap/zapcore"

	"go.viam.com/groundstation/logging"
)

// Debug logging can be switched on from the command line or from the config file. It stays on
// while either asks for it.
var debugSources struct {
	mu      sync.Mutex
	logger  logging.Logger
	cmdLine bool
	file    bool
}

// InitLoggingSettings records the command line debug flag and applies it to the global level.
func InitLoggingSettings(logger logging.Logger, cmdLineDebugFlag bool) {
	debugSources.mu.Lock()
	defer debugSources.mu.Unlock()

	debugSources.logger = logger
	debugSources.cmdLine = cmdLineDebugFlag
	debugSources.file = false
	applyGlobalLevel(true)
}

// UpdateFileConfigDebug records the debug setting of a freshly read config file.
func UpdateFileConfigDebug(fileDebug bool) {
	debugSources.mu.Lock()
	defer debugSources.mu.Unlock()

	debugSources.file = fileDebug
	applyGlobalLevel(false)
}

// applyGlobalLevel must be called with debugSources.mu held.
func applyGlobalLevel(announce bool) {
	level := zapcore.InfoLevel
	if debugSources.cmdLine || debugSources.file {
		level = zapcore.DebugLevel
	}
	changed := logging.GlobalLogLevel.Level() != level
	logging.GlobalLogLevel.SetLevel(level)
	if debugSources.logger != nil && (announce || changed) {
		debugSources.logger.Infow("log level set", "level", level.String())
	}
}
