// Package integrity provides readiness checks for the services a comparison
// depends on.
//
// # Checks
//
//   - Storage: the configured bucket exists. With ?fix=true a missing bucket
//     is created.
//   - Database: the active reference connection answers a ping.
//
// # Routes
//
//   - GET /api/integrity: every check; 503 when any fails.
//   - GET /api/integrity/storage
//   - GET /api/integrity/database
//
// The same checks back the `integrity` CLI command.
package integrity
