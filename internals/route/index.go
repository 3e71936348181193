// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"library_backend/internals/constants"
	"library_backend/internals/middlewares"
	authMiddleware "library_backend/internals/middlewares/auth"
	routeDetails "library_backend/internals/route/details"
)

var startTime = time.Now()

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, db)

	// ===================== GROUPS =====================

	// PUBLIC → JWT opsional
	log.Println("[INFO] Setting up PUBLIC group...")
	api := app.Group("/api",
		middlewares.GlobalRateLimiter(),
		authMiddleware.OptionalAuth(db),
	)

	// PRIVATE (USER) → wajib login
	log.Println("[INFO] Setting up PRIVATE group...")
	user := api.Group("/u", authMiddleware.RequireAuth())

	// ADMIN → login + role admin
	log.Println("[INFO] Setting up ADMIN group...")
	admin := api.Group("/a",
		authMiddleware.RequireAuth(),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("catalog management"), constants.AdminOnly...),
	)

	// ===================== MOUNT ROUTES =====================
	log.Println("[INFO] Mounting Auth routes...")
	routeDetails.AuthRoutes(api, db)

	log.Println("[INFO] Mounting Catalog routes...")
	routeDetails.CatalogPublicRoutes(api, db)
	routeDetails.CatalogAdminRoutes(admin, db)

	log.Println("[INFO] Mounting Circulation routes...")
	routeDetails.CirculationUserRoutes(user, db)

	log.Println("[INFO] Mounting User routes...")
	routeDetails.UserRoutes(user, db)

	log.Println("[INFO] Mounting Home routes...")
	routeDetails.HomePublicRoutes(api, db)

	log.Println("[INFO] Routes ready ✅")
}
