// file: internals/route/index.go
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	ascore "jurnalku_backend/internals/features/evaluation/assessments/service"
	routeDetails "jurnalku_backend/internals/route/details"
)

var startTime time.Time

type Options struct {
	Log        *zap.Logger
	TextPolicy ascore.TextScoringPolicy
}

func SetupRoutes(app *fiber.App, db *gorm.DB, opt Options) {
	startTime = time.Now()
	log := opt.Log
	if log == nil {
		log = zap.NewNop()
	}

	log.Info("[Routes] Setting up BaseRoutes...")
	BaseRoutes(app, db)

	// ===================== ADMIN =====================
	// Autentikasi ada di gateway; service ini hanya membaca X-Actor-ID.
	log.Info("[Routes] Setting up ADMIN group...")
	admin := app.Group("/api/a")

	log.Info("[Routes] Mounting Evaluation routes...")
	routeDetails.EvaluationAdminRoutes(admin, routeDetails.NewEvaluationServices(db, log, opt.TextPolicy))
}
