package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "sheet-gateway-backend/docs"
	"sheet-gateway-backend/internal/common/config"
	"sheet-gateway-backend/internal/common/middleware"
	keyshttp "sheet-gateway-backend/internal/features/keys/delivery/http"
	keysrepo "sheet-gateway-backend/internal/features/keys/repository/sheet"
	keyssvc "sheet-gateway-backend/internal/features/keys/service"
	recordshttp "sheet-gateway-backend/internal/features/records/delivery/http"
	recordsrepo "sheet-gateway-backend/internal/features/records/repository/sheet"
	recordssvc "sheet-gateway-backend/internal/features/records/service"
	"sheet-gateway-backend/internal/platform/lock"
	"sheet-gateway-backend/internal/platform/store"
	"sheet-gateway-backend/internal/platform/tables"
)

func newRouter(cfg *config.Config, st store.Store, locker lock.Locker, ready func(ctx context.Context) error) *gin.Engine {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorResponder())
	router.Use(middleware.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.Origin}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Accept", middleware.HeaderAdminToken, middleware.HeaderRequestID}
	corsConfig.ExposeHeaders = []string{middleware.HeaderRequestID}
	router.Use(cors.New(corsConfig))

	guard := tables.NewGuard(st, locker)

	recordRepository := recordsrepo.NewRecordRepository(guard, recordsrepo.TableNames{
		Batch:       cfg.Tables.Batch,
		Activity:    cfg.Tables.Activity,
		Devices:     cfg.Tables.Devices,
		Passthrough: []string{cfg.Tables.Keys, cfg.Tables.UserKeys},
	})
	keyRepository := keysrepo.NewKeyRepository(guard, cfg.Tables.Keys, cfg.Tables.UserKeys)

	recordHandler := recordshttp.NewRecordHandler(recordssvc.NewRecordService(recordRepository, nil))
	keyHandler := keyshttp.NewKeyHandler(keyssvc.NewKeyService(keyRepository, nil))

	admin := middleware.RequireAdmin(cfg.Server.AdminToken)
	v1 := router.Group("/api/v1")
	recordHandler.RegisterRoutes(v1, admin)
	keyHandler.RegisterRoutes(v1, admin)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   serviceName,
		})
	})

	router.GET("/live", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := ready(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unready",
				"details": err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "ready",
			"timestamp": time.Now().UTC(),
			"service":   serviceName,
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.NoRoute(middleware.NoRoute())

	return router
}
