package routes

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"ProjectPortal/internal/auth"
	"ProjectPortal/internal/client"
	"ProjectPortal/internal/config"
	"ProjectPortal/internal/notification"
	"ProjectPortal/internal/project"
	"ProjectPortal/internal/realtime"
	"ProjectPortal/internal/status"
	"ProjectPortal/pkg/middleware"
)

// PortalModules wires the whole application: config, Mongo, the realtime
// hub, repositories, services, handlers and the HTTP server.
var PortalModules = fx.Module("portal",
	fx.Provide(config.NewLogger),
	fx.Provide(NewEchoServer),
	fx.Provide(config.NewMongoDBConfig),
	fx.Provide(config.NewMongoDBClient),
	fx.Provide(config.NewResendConfig),
	fx.Provide(config.NewEmailService),

	fx.Provide(realtime.NewHub),
	fx.Provide(realtime.NewHandler),

	fx.Provide(notification.NewRepository),
	fx.Provide(NewNotificationService),
	fx.Provide(notification.NewHandler),

	fx.Provide(auth.NewUserRepository),
	fx.Provide(auth.NewAuthService),
	fx.Provide(auth.NewUserService),
	fx.Provide(auth.NewAuthHandler),

	fx.Provide(project.NewRepository),
	fx.Provide(NewProjectService),
	fx.Provide(project.NewHandler),

	fx.Provide(client.NewRepository),
	fx.Provide(NewClientService),
	fx.Provide(client.NewHandler),

	fx.Provide(status.NewRepository),
	fx.Provide(status.NewHandler),

	fx.Invoke(SeedStatuses),
	fx.Invoke(RegisterRoutes),
)

// NewNotificationService binds the Mongo repository and the hub to the
// directory's Store and Broadcaster capabilities.
func NewNotificationService(repo *notification.Repository, hub *realtime.Hub, logger *zap.Logger) *notification.Service {
	return notification.NewService(repo, hub, logger)
}

func NewProjectService(repo *project.Repository, notifications *notification.Service, logger *zap.Logger) *project.Service {
	return project.NewService(repo, notifications, logger)
}

func NewClientService(repo *client.Repository, notifications *notification.Service, logger *zap.Logger) *client.Service {
	return client.NewService(repo, notifications, logger)
}

func NewEchoServer(lc fx.Lifecycle, logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"http://localhost:5173"},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
					logger.Fatal("Failed to start the server", zap.Error(err))
				}
			}()
			logger.Info("Server running", zap.String("port", port))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Shutting down the server ...")
			return e.Shutdown(ctx)
		},
	})
	return e
}

// SeedStatuses upserts the fixed project status set on startup.
func SeedStatuses(lc fx.Lifecycle, repo *status.Repository) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			seedCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return repo.Seed(seedCtx)
		},
	})
}

func RegisterRoutes(
	e *echo.Echo,
	authHandler *auth.AuthHandler,
	notificationHandler *notification.Handler,
	wsHandler *realtime.Handler,
	projectHandler *project.Handler,
	clientHandler *client.Handler,
	statusHandler *status.Handler,
) {
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.POST("/verify-email", authHandler.VerifyEmail)
	e.POST("/forgot-password", authHandler.ForgotPassword)
	e.POST("/reset-password", authHandler.ResetPassword)

	e.GET("/ws", wsHandler.Serve)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "service": "project-portal"})
	})

	// Notification endpoints accept anonymous callers; the JWT is parsed
	// when present so the actor resolves to the signed-in user.
	notifications := e.Group("/api/notifications", middleware.OptionalJWT)
	notifications.POST("", notificationHandler.Create)
	notifications.GET("", notificationHandler.List)
	notifications.POST("/:id/dismiss", notificationHandler.Dismiss)

	protected := e.Group("/api", middleware.JWTMiddleware, middleware.CasbinMiddleware)
	protected.GET("/profile", authHandler.Profile)

	protected.GET("/members", authHandler.Members)
	protected.POST("/members/update", authHandler.UpdateMember)
	protected.DELETE("/members/:id", authHandler.DeleteMember)

	protected.GET("/projects", projectHandler.Projects)
	protected.GET("/projects/:id", projectHandler.Get)
	protected.POST("/projects", projectHandler.Add)
	protected.POST("/projects/update", projectHandler.Edit)
	protected.DELETE("/projects/:id", projectHandler.Delete)

	protected.GET("/clients", clientHandler.Clients)
	protected.GET("/clients/:id", clientHandler.Get)
	protected.POST("/clients", clientHandler.Add)
	protected.POST("/clients/update", clientHandler.Edit)
	protected.DELETE("/clients/:id", clientHandler.Delete)

	protected.GET("/statuses", statusHandler.Statuses)
}
