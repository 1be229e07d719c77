package routes

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kibo-pay/kibo_pay/internal/config"
	"github.com/kibo-pay/kibo_pay/internal/middleware"
	"github.com/kibo-pay/kibo_pay/internal/wallet"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) {
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	if isDev(d.Cfg.AppEnv) {
		// Compact local-time access log: [HH:MM:SS] 200 -  145ms METHOD /path
		app.Use(logger.New(logger.Config{
			Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
			TimeFormat: "15:04:05",
			TimeZone:   "Local",
		}))
	} else {
		app.Use(logger.New(logger.Config{
			Format:     "${time} ${status} ${latency} ${method} ${path} ${locals:request_id}\n",
			TimeFormat: time.RFC3339,
			TimeZone:   "UTC",
		}))
	}

	RegisterHealthRoutes(app, d)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	store := wallet.NewPostgresStore(d.DB)
	walletSvc := wallet.NewService(store, d.Logger)
	walletHandler := wallet.NewHandler(walletSvc, d.Logger)

	api := app.Group("/api/v1")
	RegisterWalletRoutes(api, walletHandler)
}

func isDev(env string) bool {
	switch strings.ToLower(env) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}
