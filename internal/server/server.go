package server

import (
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/controllers"
	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/app/routes"
	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/database"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
	"github.com/shashiranjanraj/storefront/pkg/middleware"
	"github.com/shashiranjanraj/storefront/pkg/reqid"
	"github.com/shashiranjanraj/storefront/pkg/router"
)

// Migrate ensures the schema for every table the store uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.UserRow{},
		&models.ProductRow{},
		&models.OrderRow{},
		&models.OrderItemRow{},
	)
}

// Build assembles the full HTTP handler on top of an open connection.
// Split from Start so tests can mount the whole surface on httptest.
func Build(db *gorm.DB) http.Handler {
	users := repositories.NewUserRepository(db)
	products := repositories.NewProductRepository(db)
	orders := repositories.NewOrderRepository(db)

	r := router.New()
	r.Use(
		reqid.Middleware(),
		metrics.Middleware(),
		middleware.Recovery,
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
	)

	routes.RegisterAPI(r, routes.Controllers{
		Auth:          controllers.NewAuthController(users),
		Users:         controllers.NewUserController(users),
		Products:      controllers.NewProductController(products),
		Orders:        controllers.NewOrderController(orders),
		SubjectExists: users.Exists,
	})

	return r.Handler()
}

func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	db, err := database.Connect()
	if err != nil {
		return err
	}
	if err := Migrate(db); err != nil {
		return err
	}

	addr := ":" + config.AppPort()
	srv := &http.Server{
		Addr:              addr,
		Handler:           Build(db),
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("server listening", "addr", addr, "env", config.AppEnv())
	return srv.ListenAndServe()
}
