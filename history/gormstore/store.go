// Package gormstore persists dispatch outcomes to PostgreSQL via GORM.
package gormstore

import (
	"context"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/prilive-com/gobulksms/history"
)

// Store is a GORM-backed implementation of history.Recorder.
type Store struct {
	db *gorm.DB
}

// New wraps an existing GORM connection.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Open connects to Postgres with the given DSN and returns a Store.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, err
	}
	return New(db), nil
}

// AutoMigrate creates or updates the sms_outcomes table.
func (s *Store) AutoMigrate() error {
	return s.db.AutoMigrate(&OutcomeModel{})
}

// Record inserts one dispatch outcome.
func (s *Store) Record(ctx context.Context, outcome *history.Outcome) error {
	outcome.Fill()
	return s.db.WithContext(ctx).Create(fromOutcome(outcome)).Error
}

// Recent returns up to limit outcomes, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]*history.Outcome, error) {
	var models []OutcomeModel
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toOutcomeMany(models), nil
}

// ByKind returns up to limit outcomes of one kind, newest first.
func (s *Store) ByKind(ctx context.Context, kind history.Kind, limit int) ([]*history.Outcome, error) {
	var models []OutcomeModel
	err := s.db.WithContext(ctx).
		Where("kind = ?", string(kind)).
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toOutcomeMany(models), nil
}

// compile-time interface check
var _ history.Recorder = (*Store)(nil)
