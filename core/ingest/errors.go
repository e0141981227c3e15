package ingest

import "errors"

var (
	// ErrUnsupportedFormat is returned for file extensions that cannot be parsed.
	ErrUnsupportedFormat = errors.New("unsupported file format: only .csv and .xlsx are allowed")

	// ErrEmptyUpload is returned when a file carries no header row.
	ErrEmptyUpload = errors.New("file has no header row")
)
