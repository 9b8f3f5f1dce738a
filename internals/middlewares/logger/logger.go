package logger

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// health check dan scrape metrics tidak perlu masuk access log
var quietPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

// LoggerMiddleware: access log per request, dengan request id dan aktor admin.
func LoggerMiddleware() fiber.Handler {
	return logger.New(logger.Config{
		Next: func(c *fiber.Ctx) bool {
			_, skip := quietPaths[c.Path()]
			return skip
		},
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Jakarta",
		Format:     "[${time}] ${locals:reqid} ${ip} actor=${reqHeader:X-Actor-ID} - ${method} ${path} - ${status} - ${latency} ${error}\n",
	})
}
