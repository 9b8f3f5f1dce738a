// file: internals/features/evaluation/migration/model/migration_run_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MigrationRunModel: jejak satu eksekusi migrasi legacy yang benar-benar menulis data.
// Report disimpan utuh sebagai JSON (successes + failures).
type MigrationRunModel struct {
	MigrationRunID         uuid.UUID      `gorm:"type:uuid;primaryKey;column:migration_run_id" json:"migration_run_id"`
	MigrationRunTemplateID uuid.UUID      `gorm:"type:uuid;not null;index;column:migration_run_template_id" json:"migration_run_template_id"`
	MigrationRunMigrated   int            `gorm:"type:int;not null;default:0;column:migration_run_migrated" json:"migration_run_migrated"`
	MigrationRunFailed     int            `gorm:"type:int;not null;default:0;column:migration_run_failed" json:"migration_run_failed"`
	MigrationRunReport     datatypes.JSON `gorm:"column:migration_run_report" json:"migration_run_report"`
	MigrationRunActorID    *uuid.UUID     `gorm:"type:uuid;column:migration_run_actor_id" json:"migration_run_actor_id,omitempty"`
	MigrationRunCreatedAt  time.Time      `gorm:"not null;autoCreateTime;column:migration_run_created_at" json:"migration_run_created_at"`
}

func (MigrationRunModel) TableName() string { return "evaluation_migration_runs" }

func (m *MigrationRunModel) BeforeCreate(tx *gorm.DB) error {
	if m.MigrationRunID == uuid.Nil {
		m.MigrationRunID = uuid.New()
	}
	return nil
}
