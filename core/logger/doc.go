// Package logger provides a structured logging facility based on Zap.
//
// New builds a development logger for the debug level and a production logger
// otherwise, encoded as json or console.
//
// # Context Awareness
//
// WithRayID extracts the RayID set by the rayid middleware from a Fiber context
// and attaches it to the logger, so every log line of a request can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log.Info("Merge finished")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
