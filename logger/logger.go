// SPDX-License-Identifier: MIT

// Package logger holds the process-wide zap logger used by the CLI.
// Library packages never reach for it; they take a *zap.Logger option.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Verbosity levels counted from repeated -v flags.
const (
	VerbosityUser  = 0 // results and warnings only
	VerbosityInfo  = 1 // -v: + run summary
	VerbosityDebug = 2 // -vv: + per-stage timing and sizes
)

var (
	// Logger is the global logger. It is a no-op until Initialize runs.
	Logger = zap.NewNop()
	// JSONOutput reports whether Initialize selected the JSON encoder.
	JSONOutput bool
	// Output is the sink Initialize writes to. Stderr keeps report output
	// on stdout clean.
	Output zapcore.WriteSyncer = os.Stderr
)

// Initialize replaces Logger with a console (or JSON) logger writing to Output.
func Initialize(jsonOutput bool, verbosity int) error {
	var enc zapcore.Encoder
	if jsonOutput {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.TimeKey = ""
		encCfg.CallerKey = ""
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	Logger = zap.New(zapcore.NewCore(enc, zapcore.Lock(Output), VerbosityToLevel(verbosity)))
	JSONOutput = jsonOutput

	return nil
}

// VerbosityToLevel maps a -v count to a zap level:
// 0 → warn, 1 → info, 2 and above → debug.
func VerbosityToLevel(verbosity int) zapcore.Level {
	switch {
	case verbosity <= VerbosityUser:
		return zapcore.WarnLevel
	case verbosity == VerbosityInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// Cleanup flushes buffered entries. Sync errors on terminals are ignored.
func Cleanup() {
	_ = Logger.Sync()
}
