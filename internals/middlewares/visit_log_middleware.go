package middlewares

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"gorm.io/gorm"

	visitLogService "library_backend/internals/features/audit/visit_logs/service"
	helper "library_backend/internals/helpers"
)

// path aset tidak dicatat
var visitLogSkipPrefixes = []string{"/static/", "/media/", "/favicon.ico"}

func shouldSkipVisit(path string) bool {
	for _, p := range visitLogSkipPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// ProxyConfig: X-Forwarded-For hanya dipercaya dari proxy di daftar trusted
// (IP atau CIDR). Daftar kosong → header diabaikan, pakai remote address.
func ProxyConfig(cfg *fiber.Config, trusted []string) {
	cfg.ProxyHeader = fiber.HeaderXForwardedFor
	cfg.EnableTrustedProxyCheck = true
	cfg.TrustedProxies = trusted
	// ambil IP valid pertama dari header, bukan string header mentah
	cfg.EnableIPValidation = true
}

// ClientIP: IP klien menurut konfigurasi proxy app (lihat ProxyConfig).
func ClientIP(c *fiber.Ctx) string {
	return c.IP()
}

// VisitLog mencatat setiap request non-aset ke visit_logs.
// Dipasang setelah OptionalAuth supaya user_id ikut tercatat.
func VisitLog(db *gorm.DB) fiber.Handler {
	return VisitLogWith(visitLogService.NewRecorder(db))
}

func VisitLogWith(rec *visitLogService.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		path := c.Path()
		if shouldSkipVisit(path) {
			return err
		}
		// nilai fiber di-reuse setelah handler selesai, jadi copy dulu
		rec.Record(visitLogService.Entry{
			Path:   utils.CopyString(path),
			Method: utils.CopyString(c.Method()),
			IP:     utils.CopyString(ClientIP(c)),
			UserID: helper.OptionalUserID(c),
			At:     time.Now().UTC(),
		})
		return err
	}
}
