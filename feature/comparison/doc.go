// Package comparison exposes SQL-to-file reconciliation over HTTP.
//
// A client previews its query, uploads a CSV or XLSX file, then runs a
// comparison. The reference side is loaded from the active database session
// (see feature/session) and the comparand side from the stored upload, both
// concurrently; an optional column mapping selects and renames columns
// before core/reconcile runs.
//
// Uploads and results are stored as zstd-compressed JSON under uploads/<id>
// and results/<id> in the configured bucket. Results read back for paging
// or export go through an in-process TTL cache; concurrent misses for the
// same id share one download.
//
// # Routes
//
//   - POST /api/preview_sql: columns, first 5 rows, row_count_estimate, last_row.
//   - POST /api/upload_file: multipart "file"; file_id, columns, preview_data, total_rows.
//   - POST /api/run_comparison: result_id, summary, preview_rows, columns.
//   - GET  /api/results_page?result_id&page&size: data, page, total_pages, has_more.
//   - GET  /api/export_excel?result_id: reconciliation_<id prefix>.xlsx attachment.
//
// Only SELECT-style queries are accepted; anything containing a data or
// schema modifying keyword is rejected with 403.
package comparison
