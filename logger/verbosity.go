package logger

import "go.uber.org/zap/zapcore"

// Verbosity level constants for CLI flag counts.
//
// These levels control WHAT categories of output are shown, not just log
// severity. Commands thread their -v count through to packages that want to
// dump progressively more detail (candidate pairs, force tuning, raw records).
const (
	VerbosityUser  = 0 // No flags: results and errors only
	VerbosityInfo  = 1 // -v: + progress, dataset stats, mode switches
	VerbosityDebug = 2 // -vv: + scoring counts, simulation energy, timing
	VerbosityTrace = 3 // -vvv: + per-pair scores, per-step alpha
)

// VerbosityToLevel maps verbosity flags (-v, -vv, etc.) to zap log levels.
//
// Mapping:
//
//	0 (none)  -> WarnLevel  (errors and warnings only)
//	1 (-v)    -> InfoLevel  (+ informational messages)
//	2+ (-vv)  -> DebugLevel (+ debug messages)
func VerbosityToLevel(verbosity int) zapcore.Level {
	switch verbosity {
	case VerbosityUser:
		return zapcore.WarnLevel
	case VerbosityInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// ShouldLogTrace returns true for verbosity >= 3 (-vvv).
// Use this for per-pair and per-step trace logging.
func ShouldLogTrace(verbosity int) bool {
	return verbosity >= VerbosityTrace
}
