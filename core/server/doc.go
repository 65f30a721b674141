// Package server holds the HTTP server configuration used by the serve command.
//
// The Config struct defines the HTTP port, the API key guarding the merge API
// and the request body limit for uploaded manifests.
package server
