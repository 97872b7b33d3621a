// Package repository stores client requests and talent profiles.
//
// Three drivers implement Store: an in-memory map store, an embedded SQLite
// store and a PostgreSQL store. All of them return deep copies, report NotFound
// as an error wrapping ErrNotFound, and list talents in insertion order so the
// ranking pool has a stable enumeration.
package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/okian/talentmatch/internal/domain/model"
)

// Supported drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Collection names used in metrics and logs.
const (
	CollectionRequests = "requests"
	CollectionTalents  = "talents"
)

// Store provides CRUD access to requests and talents.
type Store interface {
	// CreateRequest inserts r. An empty ID is replaced with a generated one.
	// Returns ErrConflict if the ID is taken.
	CreateRequest(ctx context.Context, r model.Request) (model.Request, error)
	// GetRequestByID returns ErrNotFound if the id is unknown.
	GetRequestByID(ctx context.Context, id string) (model.Request, error)
	// ListRequests returns all requests, newest first.
	ListRequests(ctx context.Context) ([]model.Request, error)
	// UpdateRequest replaces the stored request, keeping ID and CreatedAt.
	UpdateRequest(ctx context.Context, id string, r model.Request) (model.Request, error)
	DeleteRequest(ctx context.Context, id string) error

	CreateTalent(ctx context.Context, t model.Talent) (model.Talent, error)
	GetTalentByID(ctx context.Context, id string) (model.Talent, error)
	// ListTalents returns all talents in insertion order.
	ListTalents(ctx context.Context) ([]model.Talent, error)
	UpdateTalent(ctx context.Context, id string, t model.Talent) (model.Talent, error)
	DeleteTalent(ctx context.Context, id string) error

	// Counts returns the number of stored talents and requests.
	Counts(ctx context.Context) (talents, requests int, err error)

	Close() error
}

// Options selects and configures a driver for Open.
type Options struct {
	Driver      string
	SQLitePath  string
	PostgresDSN string
}

// Open creates the store selected by o.Driver.
func Open(ctx context.Context, o Options, opts ...Option) (Store, error) {
	switch o.Driver {
	case "", DriverMemory:
		return NewMemStore(ctx, opts...), nil
	case DriverSQLite:
		return NewSQLiteStore(ctx, o.SQLitePath, opts...)
	case DriverPostgres:
		return NewGormStore(ctx, o.PostgresDSN, opts...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, o.Driver)
	}
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
}

func conflict(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, ErrConflict)
}

// stampNewRequest assigns an id when missing and sets both timestamps.
func (s *settings) stampNewRequest(r model.Request) model.Request {
	r = r.Clone()
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	now := s.now().UTC()
	r.CreatedAt, r.UpdatedAt = now, now
	return r
}

func (s *settings) stampUpdatedRequest(prev, next model.Request) model.Request {
	next = next.Clone()
	next.ID = prev.ID
	next.CreatedAt = prev.CreatedAt
	next.UpdatedAt = s.now().UTC()
	return next
}

func (s *settings) stampNewTalent(t model.Talent) model.Talent {
	t = t.Clone()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	now := s.now().UTC()
	t.CreatedAt, t.UpdatedAt = now, now
	return t
}

func (s *settings) stampUpdatedTalent(prev, next model.Talent) model.Talent {
	next = next.Clone()
	next.ID = prev.ID
	next.CreatedAt = prev.CreatedAt
	next.UpdatedAt = s.now().UTC()
	return next
}
