// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation (X-API-Key header or api_key query). Disabled when no key is configured.
//   - rayid: assigns every request a RayID, stored in locals and echoed in the X-Ray-ID header.
//
// RayID must be registered first so every later log line can be correlated.
package middleware
