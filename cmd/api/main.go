package main

import (
	"context"
	"fmt"
	"log"
	"time"

	common_api "go-support/internal/common/api"
	"go-support/internal/common/response"
	"go-support/internal/config"
	"go-support/internal/database"
	"go-support/internal/features/channel"
	"go-support/internal/features/customer"
	"go-support/internal/features/notification"
	"go-support/internal/features/rtc"
	"go-support/internal/features/system"
	"go-support/internal/features/ticket"
	"go-support/internal/logger"
	"go-support/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          response.ErrorHandler,
	})

	app.Use(middleware.CORSMiddleware(cfg))
	app.Use(middleware.RequestIDMiddleware())

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	for _, route := range routes {
		route.Setup(app)
	}
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

// InitializeIndexes ensures that necessary database indexes are created
func InitializeIndexes(lc fx.Lifecycle, customerRepo customer.CustomerRepository) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := customerRepo.EnsureIndexes(ctx); err != nil {
					log.Printf("Failed to ensure customer indexes: %v", err)
				}
			}()
			return nil
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			NewFiberServer,
			database.NewDatabase,

			// Repositories
			customer.NewCustomerRepository,
			channel.NewChannelRepository,
			ticket.NewTicketRepository,
			notification.NewNotificationRepository,

			// Services
			customer.NewCustomerService,
			channel.NewChannelService,
			ticket.NewTicketService,
			notification.NewNotificationService,
			notification.NewDigestService,
			rtc.NewManager,

			// Interface adapters
			func(s customer.CustomerService) ticket.CustomerFinder { return s },

			// Controllers
			customer.NewCustomerController,
			channel.NewChannelController,
			ticket.NewTicketController,
			notification.NewNotificationController,
			rtc.NewSignalController,

			// API Routes
			AsRoute(customer.NewCustomerApi),
			AsRoute(channel.NewChannelApi),
			AsRoute(ticket.NewTicketApi),
			AsRoute(notification.NewNotificationApi),
			AsRoute(rtc.NewSignalApi),
			AsRoute(system.NewHealthApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			RegisterAllRoutesWithAnnotation,
			StartServer,
			func(lc fx.Lifecycle, digest notification.DigestService) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return digest.Start(ctx)
					},
					OnStop: func(ctx context.Context) error {
						return digest.Stop()
					},
				})
			},
			InitializeIndexes,
		),
	)

	app.Run()
}
