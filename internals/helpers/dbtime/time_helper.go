// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"library_backend/internals/configs"
)

// Nama locals (boleh diisi middleware kalau suatu saat timezone per-user)
const LocAppLoc = "app_loc"

var (
	locOnce sync.Once
	appLoc  *time.Location
)

// AppLocation: APP_TIMEZONE → *time.Location, fallback UTC.
func AppLocation() *time.Location {
	locOnce.Do(func() {
		appLoc = time.UTC
		name := strings.TrimSpace(configs.AppTimezone)
		if name == "" {
			return
		}
		if loc, err := time.LoadLocation(name); err == nil {
			appLoc = loc
		}
	})
	return appLoc
}

// GetLocation: Locals("app_loc") dulu, baru APP_TIMEZONE.
func GetLocation(c *fiber.Ctx) *time.Location {
	if c != nil {
		if loc, ok := c.Locals(LocAppLoc).(*time.Location); ok && loc != nil {
			return loc
		}
	}
	return AppLocation()
}

// ToLocal mengonversi waktu (biasanya dari DB = UTC) ke timezone aplikasi.
func ToLocal(c *fiber.Ctx, t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.In(GetLocation(c))
}

func ToLocalPtr(c *fiber.Ctx, t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := ToLocal(c, *t)
	return &v
}

// FormatDate: "January 02, 2006" di timezone aplikasi, dipakai di pesan notice.
func FormatDate(c *fiber.Ctx, t time.Time) string {
	return ToLocal(c, t).Format("January 02, 2006")
}
