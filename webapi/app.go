package webapi

import (
	"errors"
	"time"

	_ "github.com/amirasaad/bankcore/docs"
	"github.com/amirasaad/bankcore/pkg/app"
	"github.com/amirasaad/bankcore/pkg/config"
	"github.com/amirasaad/bankcore/webapi/account"
	"github.com/amirasaad/bankcore/webapi/admin"
	"github.com/amirasaad/bankcore/webapi/common"
	"github.com/amirasaad/bankcore/webapi/deposit"
	"github.com/amirasaad/bankcore/webapi/transfer"
	"github.com/amirasaad/bankcore/webapi/withdrawal"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewApp builds the HTTP surface over the services of a.
func NewApp(a *app.App) *fiber.App {
	cfg := a.Config
	if cfg == nil {
		cfg = &config.App{}
	}
	if cfg.Auth == nil {
		cfg.Auth = &config.Auth{Jwt: &config.Jwt{}}
	}

	f := fiber.New(fiber.Config{
		AppName: "bankcore",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
			return common.ProblemDetailsJSON(c, "Internal Server Error", err, status)
		},
	})

	maxRequests, window := 100, time.Minute
	if cfg.RateLimit != nil {
		maxRequests, window = cfg.RateLimit.MaxRequests, cfg.RateLimit.Window
	}
	f.Use(recover.New())
	f.Use(logger.New(logger.Config{
		Format: "${time} ${status} - ${latency} ${method} ${path}\n",
	}))
	f.Use(limiter.New(limiter.Config{
		Max:        maxRequests,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(c, "Too Many Requests", nil, "Rate limit exceeded", fiber.StatusTooManyRequests)
		},
	}))

	f.Get("/", func(c *fiber.Ctx) error {
		return common.SuccessResponseJSON(c, fiber.StatusOK, "App is working! 🚀", fiber.Map{"status": "ok"})
	})
	f.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	f.Get("/swagger/*", swagger.New(swagger.Config{
		TryItOutEnabled:      true,
		PersistAuthorization: true,
	}))

	account.Routes(f, a.UserService, a.TransactionService, a.PaymentMethodService, cfg)
	deposit.Routes(f, a.TransactionService, cfg)
	withdrawal.Routes(f, a.TransactionService, cfg)
	transfer.Routes(f, a.TransactionService, cfg)
	admin.Routes(f, a.UserService, a.PaymentMethodService, cfg)

	return f
}
