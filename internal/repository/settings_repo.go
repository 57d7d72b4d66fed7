package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var ErrSettingsNotFound = errors.New("settings not found")

type settingsModel struct {
	Key       string    `gorm:"column:setting_key;primaryKey;size:64"`
	Version   int       `gorm:"column:version;not null"`
	Document  string    `gorm:"column:document;type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (settingsModel) TableName() string { return "app_settings" }

// SettingsRepository stores versioned JSON documents under a string key.
type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// AutoMigrate creates the tables this package owns.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&settingsModel{})
}

func (r *SettingsRepository) Get(ctx context.Context, key string) ([]byte, int, error) {
	var m settingsModel
	err := r.db.WithContext(ctx).Where("setting_key = ?", key).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, 0, ErrSettingsNotFound
	}
	if err != nil {
		return nil, 0, err
	}
	return []byte(m.Document), m.Version, nil
}

// Put overwrites the document for key; the last writer wins.
func (r *SettingsRepository) Put(ctx context.Context, key string, version int, doc []byte) error {
	db := r.db.WithContext(ctx)
	now := time.Now().UTC()

	res := db.Model(&settingsModel{}).Where("setting_key = ?", key).Updates(map[string]any{
		"version":    version,
		"document":   string(doc),
		"updated_at": now,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	err := db.Create(&settingsModel{
		Key:       key,
		Version:   version,
		Document:  string(doc),
		CreatedAt: now,
		UpdatedAt: now,
	}).Error
	if isUniqueViolation(err) {
		// another writer created the row between our update and insert
		return db.Model(&settingsModel{}).Where("setting_key = ?", key).Updates(map[string]any{
			"version":    version,
			"document":   string(doc),
			"updated_at": now,
		}).Error
	}
	return err
}

func (r *SettingsRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("setting_key = ?", key).Delete(&settingsModel{}).Error
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
