package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/okian/talentmatch/internal/domain/model"
)

// requestRow stores one request document. Seq gives the insertion order.
type requestRow struct {
	Seq       uint64        `gorm:"primaryKey;autoIncrement"`
	RecordID  string        `gorm:"column:record_id;type:varchar(64);uniqueIndex;not null"`
	CreatedAt time.Time     `gorm:"index"`
	Doc       model.Request `gorm:"type:jsonb;serializer:json;not null"`
}

func (requestRow) TableName() string { return tableRequests }

type talentRow struct {
	Seq       uint64       `gorm:"primaryKey;autoIncrement"`
	RecordID  string       `gorm:"column:record_id;type:varchar(64);uniqueIndex;not null"`
	CreatedAt time.Time
	Doc       model.Talent `gorm:"type:jsonb;serializer:json;not null"`
}

func (talentRow) TableName() string { return tableTalents }

// GormStore keeps records in PostgreSQL through gorm.
type GormStore struct {
	*settings

	db       *gorm.DB
	reporter *poolReporter
}

// NewGormStore connects to dsn and migrates the schema.
func NewGormStore(ctx context.Context, dsn string, opts ...Option) (*GormStore, error) {
	if dsn == "" {
		return nil, errors.New("postgres: empty dsn")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("postgres: connect: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("postgres: database handle: %w", err)
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := db.WithContext(ctx).AutoMigrate(&requestRow{}, &talentRow{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	s := &GormStore{settings: newSettings(opts), db: db}
	s.reporter = startPoolReporter(ctx, s.settings, s.Counts)
	return s, nil
}

// Close stops the metrics updater and closes the connection pool.
func (s *GormStore) Close() error {
	s.reporter.stop()
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *GormStore) observe(op string, start time.Time, err *error) {
	observe(DriverPostgres, op, start, *err)
}

func (s *GormStore) CreateRequest(ctx context.Context, r model.Request) (_ model.Request, err error) {
	defer s.observe("create_request", time.Now(), &err)

	r = s.stampNewRequest(r)
	row := requestRow{RecordID: r.ID, CreatedAt: r.CreatedAt, Doc: r}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return model.Request{}, translate("request", r.ID, "insert", err)
	}
	return r, nil
}

func (s *GormStore) GetRequestByID(ctx context.Context, id string) (_ model.Request, err error) {
	defer s.observe("get_request", time.Now(), &err)

	var row requestRow
	if err := s.db.WithContext(ctx).Where("record_id = ?", id).First(&row).Error; err != nil {
		return model.Request{}, translate("request", id, "get", err)
	}
	return row.Doc, nil
}

func (s *GormStore) ListRequests(ctx context.Context) (_ []model.Request, err error) {
	defer s.observe("list_requests", time.Now(), &err)

	var rows []requestRow
	if err := s.db.WithContext(ctx).Order("created_at DESC, seq DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("postgres: list requests: %w", err)
	}
	out := make([]model.Request, len(rows))
	for i, row := range rows {
		out[i] = row.Doc
	}
	return out, nil
}

func (s *GormStore) UpdateRequest(ctx context.Context, id string, r model.Request) (_ model.Request, err error) {
	defer s.observe("update_request", time.Now(), &err)

	var updated model.Request
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row requestRow
		if err := tx.Where("record_id = ?", id).First(&row).Error; err != nil {
			return translate("request", id, "get", err)
		}
		row.Doc = s.stampUpdatedRequest(row.Doc, r)
		if err := tx.Save(&row).Error; err != nil {
			return translate("request", id, "update", err)
		}
		updated = row.Doc
		return nil
	})
	if err != nil {
		return model.Request{}, err
	}
	return updated, nil
}

func (s *GormStore) DeleteRequest(ctx context.Context, id string) (err error) {
	defer s.observe("delete_request", time.Now(), &err)

	res := s.db.WithContext(ctx).Where("record_id = ?", id).Delete(&requestRow{})
	return deleted("request", id, res)
}

func (s *GormStore) CreateTalent(ctx context.Context, t model.Talent) (_ model.Talent, err error) {
	defer s.observe("create_talent", time.Now(), &err)

	t = s.stampNewTalent(t)
	row := talentRow{RecordID: t.ID, CreatedAt: t.CreatedAt, Doc: t}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return model.Talent{}, translate("talent", t.ID, "insert", err)
	}
	return t, nil
}

func (s *GormStore) GetTalentByID(ctx context.Context, id string) (_ model.Talent, err error) {
	defer s.observe("get_talent", time.Now(), &err)

	var row talentRow
	if err := s.db.WithContext(ctx).Where("record_id = ?", id).First(&row).Error; err != nil {
		return model.Talent{}, translate("talent", id, "get", err)
	}
	return row.Doc, nil
}

func (s *GormStore) ListTalents(ctx context.Context) (_ []model.Talent, err error) {
	defer s.observe("list_talents", time.Now(), &err)

	var rows []talentRow
	if err := s.db.WithContext(ctx).Order("seq ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("postgres: list talents: %w", err)
	}
	out := make([]model.Talent, len(rows))
	for i, row := range rows {
		out[i] = row.Doc
	}
	return out, nil
}

func (s *GormStore) UpdateTalent(ctx context.Context, id string, t model.Talent) (_ model.Talent, err error) {
	defer s.observe("update_talent", time.Now(), &err)

	var updated model.Talent
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row talentRow
		if err := tx.Where("record_id = ?", id).First(&row).Error; err != nil {
			return translate("talent", id, "get", err)
		}
		row.Doc = s.stampUpdatedTalent(row.Doc, t)
		if err := tx.Save(&row).Error; err != nil {
			return translate("talent", id, "update", err)
		}
		updated = row.Doc
		return nil
	})
	if err != nil {
		return model.Talent{}, err
	}
	return updated, nil
}

func (s *GormStore) DeleteTalent(ctx context.Context, id string) (err error) {
	defer s.observe("delete_talent", time.Now(), &err)

	res := s.db.WithContext(ctx).Where("record_id = ?", id).Delete(&talentRow{})
	return deleted("talent", id, res)
}

func (s *GormStore) Counts(ctx context.Context) (talents, requests int, err error) {
	var t, r int64
	db := s.db.WithContext(ctx)
	if err := db.Model(&talentRow{}).Count(&t).Error; err != nil {
		return 0, 0, fmt.Errorf("postgres: count talents: %w", err)
	}
	if err := db.Model(&requestRow{}).Count(&r).Error; err != nil {
		return 0, 0, fmt.Errorf("postgres: count requests: %w", err)
	}
	return int(t), int(r), nil
}

func translate(kind, id, op string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound(kind, id)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return conflict(kind, id)
	default:
		return fmt.Errorf("postgres: %s %s: %w", op, kind, err)
	}
}

func deleted(kind, id string, res *gorm.DB) error {
	if res.Error != nil {
		return fmt.Errorf("postgres: delete %s: %w", kind, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound(kind, id)
	}
	return nil
}
