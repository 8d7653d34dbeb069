package main

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"guidelk/cmd/fx/account_fx"
	"guidelk/cmd/fx/config_fx"
	"guidelk/cmd/fx/controllers_fx"
	"guidelk/cmd/fx/db_fx"
	poisfx "guidelk/cmd/fx/pois_fx"
	"guidelk/cmd/fx/trip_fx"
	"guidelk/internal/api"
	"guidelk/internal/api/controllers"
	"guidelk/internal/config"
	"guidelk/internal/services"
	"guidelk/pkg/middleware"
)

func main() {
	app := fx.New(
		config_fx.Module,
		db_fx.Module,
		poisfx.Module,
		trip_fx.Module,
		account_fx.Module,
		controllers_fx.Module,

		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           middleware.CORSHandler(cfg.CORS.AllowedOrigins, engine),
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Info("Starting HTTP server",
				zap.String("addr", srv.Addr),
				zap.String("root_path", cfg.Server.RootPath))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Stopping HTTP server")
			ctx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	})
}

func ProvideRouter(
	cfg *config.Config,
	log *zap.Logger,
	accountService services.AccountServiceInterface,
	poisController *controllers.POIsController,
	propertiesController *controllers.PropertiesController,
	tripsController *controllers.TripsController,
	accountController *controllers.AccountController,
	healthController *controllers.HealthController) *gin.Engine {

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	return api.NewRouter(cfg.Server.RootPath, log.Named("http"), middleware.AuthMiddleware(accountService), api.Controllers{
		POIs:       poisController,
		Properties: propertiesController,
		Trips:      tripsController,
		Account:    accountController,
		Health:     healthController,
	})
}
