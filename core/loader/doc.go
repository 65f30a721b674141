// Package loader provides the feature loading system of the HTTP server.
//
// Each feature implements the Feature interface:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager keeps features in registration order; LoadAll registers the
// routes of every enabled one.
package loader
