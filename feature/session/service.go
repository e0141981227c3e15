package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"table-reconciler/core/database"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNotConnected is returned when no live database session exists.
var ErrNotConnected = errors.New("no active database connection")

// ErrSessionTimedOut is returned when the session expired through inactivity.
var ErrSessionTimedOut = errors.New("database session timed out")

// Dialer opens a database connection.
type Dialer func(cfg database.Config) (*gorm.DB, error)

// ConnectRequest selects the database to connect to. Empty credentials fall
// back to the configured ones.
type ConnectRequest struct {
	Server   string `json:"server"`
	Database string `json:"database"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Service owns the live reference database connection and its idle tracker.
type Service struct {
	base    database.Config
	tracker *Tracker
	logger  *zap.Logger
	dial    Dialer

	mu sync.Mutex
	db *gorm.DB
}

// NewService creates a session service. base supplies the driver, timeouts
// and default credentials for every connection.
func NewService(base database.Config, idleTimeout time.Duration, logger *zap.Logger) *Service {
	return &Service{
		base:    base,
		tracker: NewTracker(idleTimeout),
		logger:  logger,
		dial:    database.Connect,
	}
}

// Tracker returns the session tracker.
func (s *Service) Tracker() *Tracker {
	return s.tracker
}

// Config returns the base database configuration without credentials.
func (s *Service) Config() database.Config {
	cfg := s.base
	cfg.User = ""
	cfg.Password = ""
	return cfg
}

// Adopt installs an already open connection as the active session.
func (s *Service) Adopt(db *gorm.DB) {
	s.swap(db)
	s.tracker.Connect(s.base.Host, s.base.Name, s.base.Port)
}

// Connect dials the requested database and, on success, replaces the
// active connection.
func (s *Service) Connect(req ConnectRequest) error {
	cfg := s.base
	cfg.Host = req.Server
	cfg.Name = req.Database
	if req.Port > 0 {
		cfg.Port = req.Port
	}
	if req.Username != "" {
		cfg.User = req.Username
		cfg.Password = req.Password
	}

	db, err := s.dial(cfg)
	if err != nil {
		return err
	}

	s.swap(db)
	s.tracker.Connect(cfg.Host, cfg.Name, cfg.Port)
	s.logger.Info("Database session opened",
		zap.String("server", cfg.Host),
		zap.String("database", cfg.Name),
		zap.Int("port", cfg.Port))
	return nil
}

// Disconnect closes the active connection and resets the session.
func (s *Service) Disconnect() {
	s.swap(nil)
	s.tracker.Disconnect()
}

// DB returns the active connection and records activity.
func (s *Service) DB() (*gorm.DB, error) {
	state := s.tracker.Snapshot()
	if state.TimedOut {
		return nil, ErrSessionTimedOut
	}

	s.mu.Lock()
	db := s.db
	s.mu.Unlock()
	if db == nil || !state.Connected {
		return nil, ErrNotConnected
	}

	s.tracker.Touch()
	return db, nil
}

// Ping checks the active connection without recording activity.
func (s *Service) Ping(timeout time.Duration) error {
	s.mu.Lock()
	db := s.db
	s.mu.Unlock()
	if db == nil {
		return ErrNotConnected
	}
	return database.Ping(db, timeout)
}

// Run watches the session for inactivity until ctx is cancelled and closes
// the connection when the session expires.
func (s *Service) Run(ctx context.Context) {
	s.tracker.Run(ctx, CheckInterval, s.expire)
}

func (s *Service) expire() {
	s.logger.Info("Database session timed out", zap.Duration("idle_timeout", s.tracker.Timeout()))
	s.swap(nil)
}

// Close releases the active connection.
func (s *Service) Close() error {
	return s.swap(nil)
}

// swap installs db as the active connection and closes the previous one.
func (s *Service) swap(db *gorm.DB) error {
	s.mu.Lock()
	old := s.db
	s.db = db
	s.mu.Unlock()

	if old == nil || old == db {
		return nil
	}
	if err := database.Close(old); err != nil {
		s.logger.Warn("Failed to close database connection", zap.Error(err))
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}
