package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"jurnalku_backend/internals/middlewares/logger"
)

type Options struct {
	Origins        []string
	RatePerMinute  int
	RequestTimeout time.Duration
}

// SetupMiddlewares: urutan penting, recovery paling luar.
func SetupMiddlewares(app *fiber.App, log *zap.Logger, opt Options) {
	if opt.RequestTimeout <= 0 {
		opt.RequestTimeout = 5 * time.Second
	}
	app.Use(RecoveryMiddleware(log))
	app.Use(RequestIDMiddleware(opt.RequestTimeout))
	app.Use(logger.LoggerMiddleware())
	app.Use(CorsMiddleware(opt.Origins))
	app.Use(GlobalRateLimiter(opt.RatePerMinute))
}
