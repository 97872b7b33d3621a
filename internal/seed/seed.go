// Package seed loads sample requests and talents into a store.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/okian/talentmatch/internal/domain/model"
	"github.com/okian/talentmatch/pkg/logger"
	"github.com/okian/talentmatch/pkg/metrics"
)

//go:embed sample_data.yaml
var sampleData []byte

// Dataset is a set of records to load.
type Dataset struct {
	Requests []model.Request `yaml:"requests"`
	Talents  []model.Talent  `yaml:"talents"`
}

// Store is the subset of repository.Store the seeder writes through.
type Store interface {
	Counts(ctx context.Context) (talents, requests int, err error)
	CreateRequest(ctx context.Context, r model.Request) (model.Request, error)
	CreateTalent(ctx context.Context, t model.Talent) (model.Talent, error)
}

// Result reports what Apply inserted.
type Result struct {
	Requests int
	Talents  int
	Skipped  bool
}

// Default returns the embedded sample dataset.
func Default() Dataset {
	ds, err := Decode(bytes.NewReader(sampleData))
	if err != nil {
		panic(fmt.Sprintf("seed: embedded sample data: %v", err))
	}
	return ds
}

// LoadFile reads a YAML dataset from path.
func LoadFile(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("open seed file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Decode(f)
}

// Decode reads a YAML dataset. Unknown fields are rejected.
func Decode(r io.Reader) (Dataset, error) {
	var ds Dataset
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&ds); err != nil && !errors.Is(err, io.EOF) {
		return Dataset{}, fmt.Errorf("%w: %w", ErrInvalidDataset, err)
	}
	return ds, nil
}

// Encode writes ds as YAML.
func Encode(w io.Writer, ds Dataset) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(ds); err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	return enc.Close()
}

// Apply inserts ds into store. When both collections already hold records nothing
// is written; otherwise each empty collection is filled on its own.
func Apply(ctx context.Context, store Store, ds Dataset, log logger.Logger) (Result, error) {
	if log == nil {
		log = logger.Discard()
	}

	talents, requests, err := store.Counts(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("count records: %w", err)
	}
	if talents > 0 && requests > 0 {
		log.Info(ctx, "sample data already exists, skipping seeding")
		return Result{Skipped: true}, nil
	}

	var res Result
	if requests == 0 {
		for _, r := range ds.Requests {
			if _, err := store.CreateRequest(ctx, r); err != nil {
				return res, fmt.Errorf("seed request %s: %w", r.ID, err)
			}
			res.Requests++
		}
		metrics.RecordSeeded(collectionRequests, res.Requests)
		log.Info(ctx, "sample client requests created", logger.Int("count", res.Requests))
	}

	if talents == 0 {
		for _, t := range ds.Talents {
			if _, err := store.CreateTalent(ctx, t); err != nil {
				return res, fmt.Errorf("seed talent %s: %w", t.ID, err)
			}
			res.Talents++
		}
		metrics.RecordSeeded(collectionTalents, res.Talents)
		log.Info(ctx, "sample talents created", logger.Int("count", res.Talents))
	}

	return res, nil
}

// Collection labels; they match the repository collection names.
const (
	collectionRequests = "requests"
	collectionTalents  = "talents"
)
