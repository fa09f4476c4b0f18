package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orders/cmd"
	httpserver "orders/internal/adapters/in/http"
	"orders/internal/adapters/out/postgres/orderrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// a missing .env file is fine, the real environment takes precedence
	_ = godotenv.Load()

	config, err := cmd.ParseConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	sqlDB, gormDB, err := openDatabase(config)
	if err != nil {
		log.Fatalf("database unavailable: %v", err)
	}
	defer sqlDB.Close()

	if err = migrate(gormDB); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	root := cmd.NewCompositionRoot(config, gormDB)
	e := buildEcho(&root)

	go func() {
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)); startErr != nil {
			e.Logger.Info("shutting down the server")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		e.Logger.Fatal(err)
	}
}

// openDatabase connects to the single configured backend and fails fast
// when it is unreachable. The raw handle is kept so the pool can be closed
// on shutdown.
func openDatabase(config cmd.Config) (*sql.DB, *gorm.DB, error) {
	sqlDB, err := sql.Open("postgres", config.DSN())
	if err != nil {
		return nil, nil, err
	}
	if err = sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, nil, err
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		sqlDB.Close()
		return nil, nil, err
	}

	return sqlDB, gormDB, nil
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.ShippingDTO{},
		&orderrepo.DiscountDTO{},
		&orderrepo.TaxDTO{},
		&orderrepo.PaymentInfoDTO{},
		&orderrepo.CancellationDTO{},
		&orderrepo.ReturnDTO{},
		&orderrepo.AuditLogDTO{},
	)
}

func buildEcho(root *cmd.CompositionRoot) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	server := httpserver.NewServer(
		root.CreateCreateOrderCommandHandler(),
		root.CreateCancelOrderCommandHandler(),
		root.CreateReturnOrderCommandHandler(),
		root.CreateUpdatePaymentStatusCommandHandler(),
		root.CreateUpdateShippingStatusCommandHandler(),
		root.CreateGetOrderQueryHandler(),
		root.CreateListOrdersQueryHandler(),
	)
	server.RegisterRoutes(e)

	return e
}
