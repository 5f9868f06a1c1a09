package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/frontdesk/api"
	"github.com/Domenick1991/frontdesk/config"
	"github.com/Domenick1991/frontdesk/internal/logger"
	"github.com/Domenick1991/frontdesk/internal/realtime"
	"github.com/Domenick1991/frontdesk/internal/service/lifecycle"
	"github.com/Domenick1991/frontdesk/internal/service/views"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

const swaggerFile = "frontdesk.swagger.json"

type Deps struct {
	Desk   lifecycle.FrontDesk
	Views  views.Reader
	Hub    *realtime.Hub
	Logger *zap.Logger
}

// Run serves the HTTP API and blocks until ctx is canceled or the server fails.
func Run(ctx context.Context, cfg *config.Config, deps Deps) error {
	srv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           NewRouter(cfg, deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		deps.Logger.Info("http server listening", zap.String("address", cfg.HTTP.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func NewRouter(cfg *config.Config, deps Deps) *gin.Engine {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	r := gin.New()
	r.Use(logger.Gin(deps.Logger))
	r.Use(cors.New(corsConfig(cfg.HTTP.CORSOrigins)))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	api.NewDashboardHandler(deps.Views).Register(v1.Group("/dashboard"))
	api.NewReservationHandler(deps.Desk, deps.Views).Register(v1.Group("/reservations"))
	api.NewRoomHandler(deps.Desk, deps.Views).Register(v1.Group("/rooms"))
	api.NewCustomerHandler(deps.Desk, deps.Views, cfg.FrontDesk.MaxDocumentBytes).Register(v1.Group("/customers"))

	if deps.Hub != nil {
		r.GET("/ws", deps.Hub.ServeWS)
	}

	if cfg.HTTP.SwaggerDir != "" {
		r.StaticFile("/swagger/"+swaggerFile, cfg.HTTP.SwaggerDir+"/"+swaggerFile)
		r.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger/"+swaggerFile))))
	}
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			origins = nil
			break
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
