package middlewares

import (
	"log"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// RecoveryMiddleware: panic → log (dengan request id) → 500 lewat ErrorHandler.
func RecoveryMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			rid, _ := c.Locals(LocRequestID).(string)
			log.Printf("[PANIC] id=%s %s %s: %v\n%s", rid, c.Method(), c.Path(), e, debug.Stack())
		},
	})
}
