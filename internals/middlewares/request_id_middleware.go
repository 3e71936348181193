package middlewares

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

const (
	HeaderRequestID = "X-Request-ID"
	LocRequestID    = "requestid"

	requestTimeout = 10 * time.Second
)

// RequestID + timing (observability ringan).
// Header klien dipakai kalau wajar, selain itu UUID baru.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := strings.TrimSpace(c.Get(HeaderRequestID))
		if rid == "" || len(rid) > 64 {
			rid = utils.UUIDv4()
		} else {
			rid = utils.CopyString(rid)
		}
		c.Locals(LocRequestID, rid)
		c.Set(HeaderRequestID, rid)

		// HTTP timeout guard untuk query DB
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		c.SetUserContext(ctx)

		start := time.Now()
		err := c.Next()
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", rid, c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
		return err
	}
}
