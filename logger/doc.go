// Package logger provides structured logging for pipekit components
// using zerolog.
//
// It supports multiple output formats (JSON, console), log level
// configuration, and component-scoped loggers with structured fields.
// Pipeline runs stash their identity in the context via ContextWithRun
// so that any component can emit run-correlated records.
//
// # Usage
//
//	log := logger.Get("source.file")
//	log.Debug("stream opened", logger.Fields("resource", path))
package logger
