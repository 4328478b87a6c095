package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/hallward-systems/secure-access/internal/auth"
	"github.com/hallward-systems/secure-access/internal/config"
	"github.com/hallward-systems/secure-access/internal/dashboard"
)

type Server struct {
	config     *config.AppConfig
	log        *zap.Logger
	httpServer *http.Server
}

type Params struct {
	fx.In

	Config           *config.AppConfig
	Logger           *zap.Logger
	AuthHandler      *auth.Handler
	AuthMiddleware   *auth.Middleware
	DashboardHandler *dashboard.Handler
}

func NewServer(p Params) *Server {
	if os.Getenv("APP_ENV") == EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	registerRoutes(engine, p)

	addr := fmt.Sprintf("%s:%s", p.Config.Server.Host, p.Config.Server.Port)

	return &Server{
		config: p.Config,
		log:    p.Logger,
		httpServer: &http.Server{
			Addr:    addr,
			Handler: engine,
		},
	}
}

// registerRoutes splits the API into a public group (login only) and a
// bearer-token group covering every privileged operation.
func registerRoutes(engine *gin.Engine, p Params) {
	api := engine.Group("/api")
	{
		api.POST("/login", p.AuthHandler.Login)
	}

	protected := api.Group("", p.AuthMiddleware.RequireToken())
	{
		protected.GET("/me", p.AuthHandler.Me)
		protected.POST("/password", p.AuthHandler.ChangePassword)

		users := protected.Group("/users")
		{
			users.POST("/create", p.AuthHandler.CreateUser)
			users.GET("/list", p.AuthHandler.ListUsers)
			users.POST("/unlock", p.AuthHandler.UnlockUser)
			users.POST("/activate", p.AuthHandler.ActivateUser)
			users.POST("/deactivate", p.AuthHandler.DeactivateUser)
		}

		dash := protected.Group("/dashboard")
		{
			dash.GET("/stats", p.DashboardHandler.Stats)
			dash.GET("/recent-users", p.DashboardHandler.RecentUsers)
		}
	}
}

func (s *Server) Start() error {
	s.log.Info("Starting HTTP server",
		zap.String("address", s.httpServer.Addr),
		zap.String("environment", os.Getenv("APP_ENV")),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to serve: %w", err)
	}

	return nil
}

func (s *Server) Stop() {
	s.log.Info("shutting down HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.log.Error("forced shutdown", zap.Error(err))
	}
}
