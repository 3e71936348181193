package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"library_backend/internals/configs"
	"library_backend/internals/constants"
	database "library_backend/internals/databases"
	scheduler "library_backend/internals/features/users/auth/scheduler"
	authService "library_backend/internals/features/users/auth/service"
	helper "library_backend/internals/helpers"
	middlewares "library_backend/internals/middlewares"
	routes "library_backend/internals/route"
)

func main() {
	root := &cobra.Command{
		Use:           "library_backend",
		Short:         "Library management backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configs.LoadEnv()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Jalankan HTTP server",
			RunE:  func(cmd *cobra.Command, args []string) error { return serve() },
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "AutoMigrate semua tabel",
			RunE:  func(cmd *cobra.Command, args []string) error { return migrate() },
		},
		&cobra.Command{
			Use:   "cleanup-sessions",
			Short: "Hapus revoked session yang sudah kadaluarsa",
			RunE:  func(cmd *cobra.Command, args []string) error { return cleanupSessions(cmd.Context()) },
		},
		createAdminCmd(),
	)

	if err := root.Execute(); err != nil {
		log.Printf("❌ %v", err)
		os.Exit(1)
	}
}

/* =======================================================================
   serve
======================================================================= */

func serve() error {
	cfg := fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ErrorHandler:          helper.ErrorHandler,
		BodyLimit:             8 * 1024 * 1024, // upload gambar max 5MB + field form
	}
	middlewares.ProxyConfig(&cfg, configs.TrustedProxies)
	app := fiber.New(cfg)

	// 🔌 DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	if configs.GetEnvBool("AUTO_MIGRATE", true) {
		if err := database.AutoMigrate(database.DB); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
	}
	database.WarmUpQueries()

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching
	middlewares.SetupMiddlewares(app, database.DB)

	// ⏱ scheduler setelah DB siap
	cleanupCron, err := scheduler.StartRevokedSessionCleanupScheduler(database.DB)
	if err != nil {
		log.Printf("[WARN] scheduler cleanup tidak jalan: %v", err)
	}

	// ✅ Routes
	routes.SetupRoutes(app, database.DB)

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.GetEnv("PORT", "3000")

	// Start server non-blocking
	errCh := make(chan error, 1)
	go func() {
		log.Printf("✅ Listening on :%s", port)
		errCh <- app.Listen("0.0.0.0:" + port)
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	log.Println("🛑 Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)
	if cleanupCron != nil {
		<-cleanupCron.Stop().Done()
	}
	database.Close()
	return nil
}

/* =======================================================================
   migrate / cleanup-sessions
======================================================================= */

func migrate() error {
	database.ConnectDB()
	defer database.Close()
	if err := database.AutoMigrate(database.DB); err != nil {
		return err
	}
	log.Println("✅ Migrasi selesai")
	return nil
}

func cleanupSessions(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	database.ConnectDB()
	defer database.Close()
	_, err := scheduler.RunRevokedSessionCleanup(ctx, database.DB)
	return err
}

/* =======================================================================
   create-admin
======================================================================= */

func createAdminCmd() *cobra.Command {
	var username, email, fullName string
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Buat akun admin (password diminta lewat prompt)",
		RunE: func(cmd *cobra.Command, args []string) error {
			username = strings.TrimSpace(username)
			email = strings.TrimSpace(email)
			if username == "" || email == "" {
				return errors.New("--username dan --email wajib diisi")
			}

			password, err := readPassword("Password: ")
			if err != nil {
				return fmt.Errorf("baca password: %w", err)
			}
			confirm, err := readPassword("Ulangi password: ")
			if err != nil {
				return fmt.Errorf("baca password: %w", err)
			}

			database.ConnectDB()
			defer database.Close()
			if err := database.AutoMigrate(database.DB); err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			user, err := authService.New(database.DB).CreateUser(ctx, authService.RegisterInput{
				FullName:        fullName,
				UserName:        username,
				Email:           email,
				Password:        password,
				ConfirmPassword: confirm,
				Role:            constants.RoleAdmin,
			})
			if err != nil {
				return err
			}
			log.Printf("✅ Admin %s dibuat (id=%s)", user.UserName, user.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "username admin")
	cmd.Flags().StringVar(&email, "email", "", "email admin")
	cmd.Flags().StringVar(&fullName, "name", "", "nama lengkap")
	return cmd
}

var stdin = bufio.NewReader(os.Stdin)

// readPassword: masking kalau stdin terminal, kalau di-pipe baca satu baris.
func readPassword(prompt string) (string, error) {
	fd := int(syscall.Stdin)
	if !term.IsTerminal(fd) {
		line, err := stdin.ReadString('\n')
		if err != nil && line == "" {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
	fmt.Print(prompt)
	b, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(b), nil
}
