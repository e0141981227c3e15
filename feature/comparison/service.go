package comparison

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"table-reconciler/core/database"
	"table-reconciler/core/dataset"
	"table-reconciler/core/export"
	"table-reconciler/core/ingest"
	"table-reconciler/core/reconcile"
	"table-reconciler/core/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// previewRows is how many rows SQL and upload previews show.
const previewRows = 5

var (
	// ErrMissingParameters is returned when a required request field is empty.
	ErrMissingParameters = errors.New("missing required parameters")
	// ErrNotConnected is returned when no reference database is available.
	ErrNotConnected = errors.New("no database connection")
)

// DBProvider supplies the active reference database connection.
type DBProvider interface {
	DB() (*gorm.DB, error)
}

// SQLPreview is the first rows of a query result.
type SQLPreview struct {
	Columns          []string            `json:"columns"`
	Rows             []ingest.PreviewRow `json:"preview_data"`
	RowCountEstimate int                 `json:"row_count_estimate"`
	LastRow          ingest.PreviewRow   `json:"last_row"`
}

// UploadResult describes a stored upload.
type UploadResult struct {
	FileID string `json:"file_id"`
	ingest.Preview
}

// RunRequest starts a comparison between a query and an uploaded file.
type RunRequest struct {
	FileID        string                  `json:"file_id"`
	Query         string                  `json:"query"`
	Keys          []string                `json:"keys"`
	ColumnMapping []dataset.ColumnMapping `json:"column_mapping"`
	FileName      string                  `json:"file_name"`
}

// RunResult is the outcome of a comparison with its first rows.
type RunResult struct {
	ResultID    string              `json:"result_id"`
	Summary     reconcile.Summary   `json:"summary"`
	PreviewRows []map[string]string `json:"preview_rows"`
	Columns     []string            `json:"columns"`
}

// Page is one page of a stored result.
type Page struct {
	Data       []map[string]string `json:"data"`
	Page       int                 `json:"page"`
	TotalPages int                 `json:"total_pages"`
	HasMore    bool                `json:"has_more"`
}

// Service runs comparisons and serves their results.
type Service struct {
	store  *Store
	cache  *resultCache
	db     DBProvider
	cfg    reconcile.Config
	logger *zap.Logger
}

// NewService creates a comparison service.
func NewService(client storage.Client, bucket string, db DBProvider, cfg reconcile.Config, logger *zap.Logger) *Service {
	return &Service{
		store:  NewStore(client, bucket),
		cache:  newResultCache(cfg.ResultTTL()),
		db:     db,
		cfg:    cfg,
		logger: logger,
	}
}

func (s *Service) conn() (*gorm.DB, error) {
	db, err := s.db.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotConnected, err)
	}
	return db, nil
}

func (s *Service) referenceLabel() string {
	if s.cfg.ReferenceLabel == "" {
		return reconcile.DefaultReferenceLabel
	}
	return s.cfg.ReferenceLabel
}

// PreviewSQL runs query and returns its first rows and total row count.
func (s *Service) PreviewSQL(ctx context.Context, query string) (*SQLPreview, error) {
	if query == "" {
		return nil, ErrMissingParameters
	}
	if err := database.CheckReadOnly(query); err != nil {
		return nil, err
	}
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	ds, err := database.QueryDataset(ctx, db, query, s.referenceLabel())
	if err != nil {
		return nil, err
	}

	p := ingest.NewPreview(ds, previewRows)
	return &SQLPreview{
		Columns:          p.Columns,
		Rows:             p.Rows,
		RowCountEstimate: p.Total,
		LastRow:          p.LastRow,
	}, nil
}

// Upload parses a CSV or XLSX file, stores it and returns its id and preview.
func (s *Service) Upload(ctx context.Context, name string, r io.Reader) (*UploadResult, error) {
	ds, err := ingest.Read(name, r)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	if err := s.store.SaveUpload(ctx, id, ds); err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	s.logger.Info("File uploaded",
		zap.String("file_id", id),
		zap.String("name", name),
		zap.Int("rows", ds.Len()),
		zap.Int("columns", len(ds.Columns)))

	return &UploadResult{FileID: id, Preview: ingest.NewPreview(ds, previewRows)}, nil
}

// Run loads the query result and the uploaded file, reconciles them and
// stores the result.
func (s *Service) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	if req.FileID == "" || req.Query == "" {
		return nil, ErrMissingParameters
	}
	if err := database.CheckReadOnly(req.Query); err != nil {
		return nil, err
	}
	db, err := s.conn()
	if err != nil {
		return nil, err
	}

	var ref, cmp *dataset.Dataset
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ref, err = database.QueryDataset(gctx, db, req.Query, s.referenceLabel())
		return err
	})
	g.Go(func() error {
		var err error
		cmp, err = s.store.LoadUpload(gctx, req.FileID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ref, cmp = dataset.ApplyMapping(ref, cmp, req.ColumnMapping)

	label := req.FileName
	if label == "" {
		label = reconcile.DefaultComparandLabel
	}
	res, err := reconcile.Reconcile(ref, cmp, reconcile.Options{
		Keys:           req.Keys,
		ReferenceLabel: s.referenceLabel(),
		ComparandLabel: label,
		PairCeiling:    s.cfg.PairCeiling,
		Logger:         s.logger,
	})
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	if err := s.store.SaveResult(ctx, id, res); err != nil {
		return nil, fmt.Errorf("failed to store result: %w", err)
	}
	s.cache.Put(id, res)

	s.logger.Info("Comparison finished",
		zap.String("result_id", id),
		zap.String("mode", string(res.Summary.Mode)),
		zap.Int("discrepancies", res.Summary.TotalDiscrepancies),
		zap.Float64("elapsed_seconds", res.Summary.ElapsedSeconds))

	n := s.cfg.PreviewRows
	if n <= 0 {
		n = len(res.Rows)
	}
	return &RunResult{
		ResultID:    id,
		Summary:     res.Summary,
		PreviewRows: records(res, res.Rows[:min(n, len(res.Rows))]),
		Columns:     res.Columns(),
	}, nil
}

// Page returns page (1-based) of the stored result id with size rows per
// page. Non-positive values fall back to page 1 and the configured size.
func (s *Service) Page(ctx context.Context, id string, page, size int) (*Page, error) {
	if id == "" {
		return nil, ErrMissingParameters
	}
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = max(1, s.cfg.PageSize)
	}

	res, err := s.cache.Get(ctx, id, s.store.LoadResult)
	if err != nil {
		return nil, err
	}

	total := len(res.Rows)
	out := &Page{
		Data:       []map[string]string{},
		Page:       page,
		TotalPages: total/size + 1,
	}
	start := (page - 1) * size
	if start >= total {
		return out, nil
	}
	end := min(start+size, total)
	out.Data = records(res, res.Rows[start:end])
	out.HasMore = end < total
	return out, nil
}

// Export writes the stored result id as an xlsx report.
func (s *Service) Export(ctx context.Context, id string, w io.Writer) error {
	if id == "" {
		return ErrMissingParameters
	}
	res, err := s.cache.Get(ctx, id, s.store.LoadResult)
	if err != nil {
		return err
	}
	return export.WriteXLSX(w, res)
}

// Clear deletes every stored upload and result.
func (s *Service) Clear(ctx context.Context) error {
	s.cache.Reset()
	n, err := s.store.Clear(ctx)
	if err != nil {
		return err
	}
	s.logger.Info("Comparison cache cleared", zap.Int("objects", n))
	return nil
}

// ExportFileName is the download name of the report for result id.
func ExportFileName(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return "reconciliation_" + id + ".xlsx"
}

// mismatchKey carries the comma-separated mismatched columns of a row so
// clients can highlight them.
const mismatchKey = "_mismatch_cols"

func records(res *reconcile.Result, rows []reconcile.DisplayRow) []map[string]string {
	out := make([]map[string]string, len(rows))
	for i, row := range rows {
		rec := res.Record(row)
		rec[mismatchKey] = strings.Join(row.Mismatched, ",")
		out[i] = rec
	}
	return out
}
