package router

import (
	"time"

	"github.com/arianafaustini/dial-tester/internal/config"
	"github.com/arianafaustini/dial-tester/internal/handlers"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/unrolled/secure"
	"go.uber.org/zap"
)

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func errorHandler(c *gin.Context, info ratelimit.Info) {
	c.String(429, "Too many requests. Try again later.")
}

func Setup(log *zap.Logger, store handlers.Store) *gin.Engine {
	// Set up a new Gin router, add recovery middleware and request logging.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
	})
	router.Use(func(c *gin.Context) {
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			c.Abort()
			return
		}
		c.Next()
	})

	// Handlers and routes
	sessionHandler := handlers.NewSessionHandler(log, store)
	dataPointHandler := handlers.NewDataPointHandler(log, store)
	adminHandler := handlers.NewAdminHandler(log, store)
	exportHandler := handlers.NewExportHandler(log, store)

	rateLimitStore := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: uint(config.Conf.Server.RateLimitRPM),
	})
	limiter := ratelimit.RateLimiter(rateLimitStore, &ratelimit.Options{
		ErrorHandler: errorHandler,
		KeyFunc:      keyFunc,
	})

	router.POST("/sessions", limiter, sessionHandler.Create)
	router.GET("/sessions/:id", sessionHandler.Get)
	router.PATCH("/sessions/:id", sessionHandler.Update)
	router.POST("/data-points", dataPointHandler.Create)

	adminRoutes := router.Group("/admin")
	{
		adminRoutes.GET("/sessions", adminHandler.ListSessions)
		adminRoutes.GET("/sessions/:id/chart", adminHandler.SessionChart)
	}

	exportRoutes := router.Group("/export")
	{
		exportRoutes.GET("/sessions", exportHandler.Sessions)
		exportRoutes.GET("/data-points", exportHandler.DataPoints)
		exportRoutes.GET("/all", exportHandler.All)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
