package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging.
// Use these constants instead of raw strings.
const (
	// Components
	FieldComponent = "component"
	FieldLang      = "lang"

	// Schema
	FieldService = "service"
	FieldShape   = "shape"
	FieldMember  = "member"
	FieldKind    = "kind"
	FieldCycle   = "cycle"

	// Pipeline
	FieldStage      = "stage"
	FieldDurationMS = "duration_ms"
	FieldCount      = "count"
	FieldTotalCount = "total_count"

	// Errors
	FieldError = "error"

	// Files and paths
	FieldFile   = "file"
	FieldSchema = "schema"
	FieldOutput = "output"
)

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	type Watcher struct {
//	    logger *zap.SugaredLogger
//	}
//
//	func NewWatcher() *Watcher {
//	    return &Watcher{logger: logger.ComponentLogger("typegen.watch")}
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
//
// Example:
//
//	shapeLogger := logger.ChildLogger(base, logger.FieldShape, name)
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
