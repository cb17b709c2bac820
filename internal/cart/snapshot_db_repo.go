package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	pkgerrors "github.com/harvestlink-app/harvestlink-backend/pkg/errors"
	"github.com/harvestlink-app/harvestlink-backend/pkg/logger"
	"github.com/harvestlink-app/harvestlink-backend/pkg/metrics"
)

// SnapshotRecord is the durable row backing one session's cart.
type SnapshotRecord struct {
	SessionKey string    `gorm:"column:session_key;primaryKey"`
	Version    int       `gorm:"column:version"`
	Payload    string    `gorm:"column:payload"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (SnapshotRecord) TableName() string {
	return "cart_snapshots"
}

// DBSnapshotRepository persists cart snapshots through GORM (SQLite file by
// default, Postgres for shared deployments).
type DBSnapshotRepository struct {
	db      *gorm.DB
	logg    *logger.Logger
	metrics *metrics.CartMetrics
}

// NewDBSnapshotRepository wires the database-backed snapshot store.
func NewDBSnapshotRepository(db *gorm.DB, logg *logger.Logger, cartMetrics *metrics.CartMetrics) (*DBSnapshotRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("db handle required")
	}
	return &DBSnapshotRepository{db: db, logg: logg, metrics: cartMetrics}, nil
}

// Load returns the session's cart, or an empty cart when no snapshot exists
// or the stored one cannot be trusted. Only an unreachable store is an error.
func (r *DBSnapshotRepository) Load(ctx context.Context, sessionKey string) (*Cart, error) {
	var record SnapshotRecord
	err := r.db.WithContext(ctx).First(&record, "session_key = ?", sessionKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NewCart(), nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart snapshot")
	}

	cart, decodeErr := DecodeSnapshot([]byte(record.Payload))
	if decodeErr != nil {
		r.discard(ctx, sessionKey, decodeErr)
		return NewCart(), nil
	}
	return cart, nil
}

// Save upserts the serialized aggregate for the session.
func (r *DBSnapshotRepository) Save(ctx context.Context, sessionKey string, cart *Cart) error {
	payload, err := EncodeSnapshot(cart)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	record := SnapshotRecord{
		SessionKey: sessionKey,
		Version:    SnapshotVersion,
		Payload:    string(payload),
		UpdatedAt:  time.Now().UTC(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"version", "payload", "updated_at"}),
	}).Create(&record).Error
}

// Delete drops the session's snapshot.
func (r *DBSnapshotRepository) Delete(ctx context.Context, sessionKey string) error {
	return r.db.WithContext(ctx).Delete(&SnapshotRecord{}, "session_key = ?", sessionKey).Error
}

func (r *DBSnapshotRepository) discard(ctx context.Context, sessionKey string, cause error) {
	r.metrics.IncSnapshotDiscard()
	if r.logg != nil {
		ctx = r.logg.WithSessionKey(ctx, sessionKey)
		r.logg.Warn(r.logg.WithField(ctx, "reason", cause.Error()), "discarding cart snapshot")
	}
}
