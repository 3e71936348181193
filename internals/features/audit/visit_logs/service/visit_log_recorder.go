package service

import (
	"context"
	"log"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	visitLogModel "library_backend/internals/features/audit/visit_logs/model"
)

// Entry satu kunjungan.
type Entry struct {
	Path   string
	Method string
	IP     string
	UserID uuid.UUID // uuid.Nil = anonim
	At     time.Time
}

// Recorder menulis visit_logs secara best-effort: Record tidak pernah
// mengembalikan error ke request, kegagalan hanya di-log.
type Recorder struct {
	DB      *gorm.DB
	Async   bool
	Timeout time.Duration
}

func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{DB: db, Async: true, Timeout: 2 * time.Second}
}

func (r *Recorder) Record(e Entry) {
	if r == nil || r.DB == nil {
		return
	}
	if r.Async {
		go r.write(e)
		return
	}
	r.write(e)
}

func (r *Recorder) write(e Entry) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("[VISITLOG] panic: %v", rec)
		}
	}()

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := r.DB.WithContext(ctx).Create(toModel(e)).Error; err != nil {
		log.Printf("[VISITLOG] gagal simpan %s %s: %v", e.Method, e.Path, err)
	}
}

func toModel(e Entry) *visitLogModel.VisitLogModel {
	m := &visitLogModel.VisitLogModel{
		VisitLogPath:      truncate(e.Path, 500),
		VisitLogMethod:    truncate(e.Method, 10),
		VisitLogTimestamp: e.At.UTC(),
	}
	if m.VisitLogTimestamp.IsZero() {
		m.VisitLogTimestamp = time.Now().UTC()
	}
	if e.IP != "" {
		ip := truncate(e.IP, 45)
		m.VisitLogIPAddress = &ip
	}
	if e.UserID != uuid.Nil {
		uid := e.UserID
		m.VisitLogUserID = &uid
	}
	return m
}

// truncate: maksimal n byte, tidak memotong di tengah rune UTF-8.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
