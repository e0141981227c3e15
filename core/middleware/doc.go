// Package middleware contains HTTP middleware for the Fiber application.
//
// It provides cross-cutting concerns that sit between the request and the handler.
//
// # Components
//
//   - auth: API key validation (X-API-Key header or api_key query parameter).
//     Disabled when no key is configured.
//   - rayid: Assigns every request a Ray ID, reusing an incoming X-Ray-ID header,
//     and stores it in the context and response headers for tracing.
//
// Register rayid first so every later log line carries the id.
package middleware
