// internals/route/details/evaluation_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	AssessmentRoutes "jurnalku_backend/internals/features/evaluation/assessments/route"
	ascore "jurnalku_backend/internals/features/evaluation/assessments/service"
	iservice "jurnalku_backend/internals/features/evaluation/integrity/service"
	MigrationRoutes "jurnalku_backend/internals/features/evaluation/migration/route"
	mservice "jurnalku_backend/internals/features/evaluation/migration/service"
	TemplateRoutes "jurnalku_backend/internals/features/evaluation/templates/route"
	tservice "jurnalku_backend/internals/features/evaluation/templates/service"
	"jurnalku_backend/internals/middlewares"
)

// EvaluationServices: satu set service yang berbagi *gorm.DB dan logger.
type EvaluationServices struct {
	Guard     *iservice.GuardService
	Hierarchy *tservice.HierarchyService
	Workflow  *ascore.WorkflowService
	Migrator  *mservice.LegacyMigrator
}

func NewEvaluationServices(db *gorm.DB, log *zap.Logger, policy ascore.TextScoringPolicy) *EvaluationServices {
	guard := iservice.NewGuardService(db, log)
	return &EvaluationServices{
		Guard:     guard,
		Hierarchy: tservice.NewHierarchyService(db, guard, log),
		Workflow:  ascore.NewWorkflowService(db, ascore.NewScoringEngine(policy), log),
		Migrator:  mservice.NewLegacyMigrator(db, log),
	}
}

/* ===================== ADMIN ===================== */
func EvaluationAdminRoutes(r fiber.Router, s *EvaluationServices) {
	TemplateRoutes.TemplateAdminRoutes(r, s.Hierarchy, s.Guard)
	AssessmentRoutes.AssessmentAdminRoutes(r, s.Workflow)

	r.Use("/migrations/legacy", middlewares.MigrationRateLimiter())
	MigrationRoutes.MigrationAdminRoutes(r, s.Migrator)
}
