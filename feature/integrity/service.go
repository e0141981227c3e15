package integrity

import (
	"context"
	"fmt"
	"time"

	"table-reconciler/core/storage"

	"go.uber.org/zap"
)

// Check statuses.
const (
	StatusOK      = "ok"
	StatusMissing = "missing"
	StatusError   = "error"
)

// Pinger checks that the reference database is reachable.
type Pinger interface {
	Ping(timeout time.Duration) error
}

// PingerFunc adapts a function to Pinger.
type PingerFunc func(timeout time.Duration) error

// Ping calls f.
func (f PingerFunc) Ping(timeout time.Duration) error { return f(timeout) }

// Check is the outcome of one integrity check.
type Check struct {
	Status string `json:"status"`
	Target string `json:"target,omitempty"`
	Error  string `json:"error,omitempty"`
}

// OK reports whether the check passed.
func (c Check) OK() bool { return c.Status == StatusOK }

// Report combines every check.
type Report struct {
	Healthy  bool  `json:"healthy"`
	Storage  Check `json:"storage"`
	Database Check `json:"database"`
}

// Service runs integrity checks against storage and the database.
type Service struct {
	client      storage.Client
	bucket      string
	region      string
	db          Pinger
	pingTimeout time.Duration
	logger      *zap.Logger
}

// NewService creates a new integrity service.
func NewService(client storage.Client, bucket, region string, db Pinger, pingTimeout time.Duration, logger *zap.Logger) *Service {
	return &Service{
		client:      client,
		bucket:      bucket,
		region:      region,
		db:          db,
		pingTimeout: pingTimeout,
		logger:      logger,
	}
}

// CheckStorage verifies the bucket holding uploads and results exists.
func (s *Service) CheckStorage(ctx context.Context) Check {
	c := Check{Target: s.bucket}
	exists, err := s.client.BucketExists(ctx, s.bucket)
	switch {
	case err != nil:
		c.Status = StatusError
		c.Error = fmt.Sprintf("failed to check bucket existence: %v", err)
	case !exists:
		c.Status = StatusMissing
		c.Error = fmt.Sprintf("bucket %s does not exist", s.bucket)
	default:
		c.Status = StatusOK
	}
	return c
}

// FixStorage creates the bucket when it is missing.
func (s *Service) FixStorage(ctx context.Context) error {
	if err := storage.EnsureBucket(ctx, s.client, s.bucket, s.region); err != nil {
		s.logger.Error("Failed to create bucket", zap.String("bucket", s.bucket), zap.Error(err))
		return err
	}
	s.logger.Info("Bucket ready", zap.String("bucket", s.bucket))
	return nil
}

// CheckDatabase verifies the reference database answers a ping.
func (s *Service) CheckDatabase() Check {
	if s.db == nil {
		return Check{Status: StatusMissing, Error: "no database configured"}
	}
	if err := s.db.Ping(s.pingTimeout); err != nil {
		return Check{Status: StatusError, Error: err.Error()}
	}
	return Check{Status: StatusOK}
}

// Run performs every check.
func (s *Service) Run(ctx context.Context) Report {
	r := Report{
		Storage:  s.CheckStorage(ctx),
		Database: s.CheckDatabase(),
	}
	r.Healthy = r.Storage.OK() && r.Database.OK()
	return r
}
