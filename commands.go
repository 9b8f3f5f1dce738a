package main

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	database "jurnalku_backend/internals/databases"
	iservice "jurnalku_backend/internals/features/evaluation/integrity/service"
	mservice "jurnalku_backend/internals/features/evaluation/migration/service"
	tservice "jurnalku_backend/internals/features/evaluation/templates/service"
	"jurnalku_backend/internals/seeds"
)

var (
	templateFlag string
	actorFlag    string
)

var dbMigrateCmd = &cobra.Command{
	Use:   "db-migrate",
	Short: "AutoMigrate semua tabel evaluasi",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer closeDB(db)
		if err := database.AutoMigrate(db); err != nil {
			return err
		}
		logger.Info("✅ AutoMigrate selesai", zap.Int("tables", len(database.Models())))
		return nil
	},
}

var migrateLegacyCmd = &cobra.Command{
	Use:   "migrate-legacy",
	Short: "Pindahkan indikator legacy (kategori flat) ke hierarki template",
	Long: `Mengelompokkan indikator yang belum punya sub_category_id berdasarkan
kolom legacy category/sub_category, membuat Unsur dan Sub-Unsur di template
tujuan, lalu menautkan indikator. Aman dijalankan ulang.

Contoh:
  jurnalku migrate-legacy --template 0b7c...`,
	RunE: runMigrateLegacy,
}

var seedTemplateCmd = &cobra.Command{
	Use:   "seed-template [file.yaml...]",
	Short: "Buat template rubrik baru dari file YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, err := parseActor()
		if err != nil {
			return err
		}
		db, err := openDB()
		if err != nil {
			return err
		}
		defer closeDB(db)

		guard := iservice.NewGuardService(db, logger)
		store := tservice.NewHierarchyService(db, guard, logger)
		return seeds.RunTemplateSeeds(cmd.Context(), store, logger, actor, args...)
	},
}

func init() {
	migrateLegacyCmd.Flags().StringVar(&templateFlag, "template", "", "template tujuan (uuid)")
	_ = migrateLegacyCmd.MarkFlagRequired("template")
	for _, c := range []*cobra.Command{migrateLegacyCmd, seedTemplateCmd} {
		c.Flags().StringVar(&actorFlag, "actor", "", "id aktor untuk audit (uuid, opsional)")
	}
}

func parseActor() (uuid.UUID, error) {
	if actorFlag == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(actorFlag)
	if err != nil {
		return uuid.Nil, fmt.Errorf("--actor: %w", err)
	}
	return id, nil
}

func runMigrateLegacy(cmd *cobra.Command, args []string) error {
	templateID, err := uuid.Parse(templateFlag)
	if err != nil {
		return fmt.Errorf("--template: %w", err)
	}
	actor, err := parseActor()
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB(db)

	rep, err := mservice.NewLegacyMigrator(db, logger).Run(cmd.Context(), templateID, actor)
	if err != nil {
		return err
	}

	out, err := sonic.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	if !rep.OK() {
		return fmt.Errorf("migration finished with %d issue(s)", len(rep.Errors))
	}
	return nil
}
