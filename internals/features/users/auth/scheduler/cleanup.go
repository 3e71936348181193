package scheduler

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"library_backend/internals/configs"
	authService "library_backend/internals/features/users/auth/service"
)

// RunRevokedSessionCleanup sekali jalan (dipakai cron & command cleanup-sessions).
func RunRevokedSessionCleanup(ctx context.Context, db *gorm.DB) (int64, error) {
	log.Println("[CLEANUP] Menjalankan pembersihan revoked_sessions...")
	n, err := authService.New(db).CleanupRevoked(ctx)
	if err != nil {
		log.Printf("[CLEANUP ERROR] Gagal hapus sesi kadaluarsa: %v", err)
		return 0, err
	}
	if n > 0 {
		log.Printf("[CLEANUP] %d sesi kadaluarsa dihapus", n)
	} else {
		log.Println("[CLEANUP] Tidak ada sesi yang memenuhi syarat dihapus")
	}
	return n, nil
}

// StartRevokedSessionCleanupScheduler: jadwal dari TOKEN_CLEANUP_CRON (default "0 3 * * *").
// Caller wajib memanggil Stop() saat shutdown.
func StartRevokedSessionCleanupScheduler(db *gorm.DB) (*cron.Cron, error) {
	spec := strings.TrimSpace(configs.TokenCleanupCron)
	if spec == "" {
		spec = "0 3 * * *"
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		_, _ = RunRevokedSessionCleanup(ctx, db)
	}); err != nil {
		return nil, err
	}
	log.Printf("[CLEANUP] scheduler started schedule=%q", spec)
	c.Start()
	return c, nil
}
