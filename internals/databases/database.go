package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"library_backend/internals/configs"
)

var DB *gorm.DB

// Dialector memilih driver berdasarkan DB_DRIVER (postgres | mysql | sqlite).
func Dialector() (gorm.Dialector, error) {
	driver := strings.ToLower(getenv("DB_DRIVER", "postgres"))

	switch driver {
	case "postgres", "postgresql":
		// Catatan: kalau pakai PgBouncer, biarkan PreferSimpleProtocol=true
		sslmode := getenv("DB_SSLMODE", "disable")
		dsn := fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=library&options=-c statement_timeout=3000",
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			getenv("DB_HOST", "localhost"),
			getenv("DB_PORT", "5432"),
			os.Getenv("DB_NAME"),
			sslmode,
		)
		return postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), nil

	case "mysql":
		// user:password@tcp(host:port)/dbname?parseTime=true
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
			getenv("DB_USER", "root"),
			os.Getenv("DB_PASSWORD"),
			getenv("DB_HOST", "localhost"),
			getenv("DB_PORT", "3306"),
			os.Getenv("DB_NAME"),
		)
		return mysql.Open(dsn), nil

	case "sqlite", "sqlite3":
		path := getenv("DB_PATH", "data/library.db")
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create db dir: %w", err)
			}
		}
		// busy_timeout + foreign keys, WAL biar write lebih lega
		return sqlite.Open(fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=1&_journal_mode=WAL", path)), nil
	}

	return nil, fmt.Errorf("DB_DRIVER %q tidak didukung", driver)
}

// Open membuka koneksi GORM untuk dialector apa pun dengan logger bawaan aplikasi.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{
		Logger:         configs.NewGormLogger(),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
}

func ConnectDB() {
	log.Println("🔌 Koneksi ke database...")

	dialector, err := Dialector()
	if err != nil {
		log.Fatalf("❌ Gagal konek DB: %v", err)
	}
	db, err := Open(dialector)
	if err != nil {
		log.Fatalf("❌ Gagal konek DB: %v", err)
	}
	DB = db
	log.Printf("✅ DB connected (%s).", db.Dialector.Name())
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	if DB.Dialector.Name() == "sqlite" {
		// sqlite: satu writer saja
		sqlDB.SetMaxOpenConns(1)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond) // beri waktu server naik
		if err := ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

func ping() error { return Ping(context.Background(), DB) }

// Ping dipakai /health.
func Ping(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database belum terkoneksi")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close() {
	if DB == nil {
		return
	}
	if sqlDB, err := DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
