package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"jurnalku_backend/internals/configs"
	amodel "jurnalku_backend/internals/features/evaluation/assessments/model"
	mmodel "jurnalku_backend/internals/features/evaluation/migration/model"
	tmodel "jurnalku_backend/internals/features/evaluation/templates/model"
)

// ConnectDB: PreferSimpleProtocol supaya aman di belakang PgBouncer (transaction pooling).
func ConnectDB(cfg configs.AppConfig, log *zap.Logger) (*gorm.DB, error) {
	log.Info("🔌 Koneksi ke PostgreSQL...", zap.String("host", cfg.DBHost), zap.String("db", cfg.DBName))

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: configs.NewGormLogger(log),
	})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	if err := TunePool(db, cfg); err != nil {
		return nil, err
	}
	log.Info("✅ DB connected.")
	return db, nil
}

func TunePool(db *gorm.DB, cfg configs.AppConfig) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("pool tune: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
	return nil
}

// Models: semua tabel domain evaluasi, urut parent → child.
func Models() []any {
	return []any{
		&tmodel.TemplateModel{},
		&tmodel.CategoryModel{},
		&tmodel.SubCategoryModel{},
		&tmodel.IndicatorModel{},
		&tmodel.EssayQuestionModel{},
		&amodel.AssessmentModel{},
		&amodel.ResponseModel{},
		&mmodel.MigrationRunModel{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
