// Package session manages the reference database connection used by
// comparisons.
//
// A single session is active at a time. POST /api/connect dials the
// requested server and database and replaces the previous connection; the
// Tracker records activity, and a background checker started with
// Service.Run marks the session timed out (and closes the connection) once
// it has been idle longer than the configured timeout.
//
// # Routes
//
//   - GET  /api/config: idle timeout and the non-secret database settings.
//   - POST /api/connect: test and activate a connection.
//   - POST /api/disconnect: close the active connection.
//   - GET  /api/heartbeat: connected and timed_out flags; refreshes activity
//     unless the session already timed out.
//   - POST /api/activity: record user activity.
//
// Service.DB is the accessor other features use to obtain the connection.
package session
