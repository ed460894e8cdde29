package restapi

import (
	"net/http"
	"net/http/pprof"

	"crypto_dashboard/internal/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// SetupRouter configures the Gin engine: CORS, zap request logging,
// recovery, the API v1 routes, the metrics endpoint and pprof.
func SetupRouter(handler *DashboardHandler, zapLogger *zap.Logger) *gin.Engine {
	router := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-Id", "X-Username"}
	router.Use(cors.New(corsConfig))

	router.Use(utils.ZapLoggerMiddleware(zapLogger))
	router.Use(gin.Recovery())
	router.Use(viewerMiddleware())

	v1 := router.Group("/api/v1")
	{
		v1.GET("/users/:username/dashboards", handler.ListDashboardsHandler)
		v1.GET("/users/:username/dashboards/:slug", handler.RenderDashboardHandler)
		v1.POST("/dashboards", handler.CreateDashboardHandler)
		v1.PATCH("/users/:username/dashboards/:slug", handler.RenameDashboardHandler)
		v1.POST("/users/:username/dashboards/:slug/cards", handler.CreateCardHandler)
		v1.DELETE("/users/:username/dashboards/:slug/cards", handler.DeleteCardsHandler)
		v1.POST("/users/:username/dashboards/:slug/cards/reorder", handler.ReorderCardsHandler)
		v1.GET("/gas/:network", handler.GasHandler)
	}

	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	pprofRouter := router.Group("/debug/pprof")
	{
		pprofRouter.GET("/", gin.WrapF(pprof.Index))
		pprofRouter.GET("/cmdline", gin.WrapF(pprof.Cmdline))
		pprofRouter.GET("/profile", gin.WrapF(pprof.Profile))
		pprofRouter.GET("/symbol", gin.WrapF(pprof.Symbol))
		pprofRouter.GET("/trace", gin.WrapF(pprof.Trace))
		pprofRouter.GET("/allocs", gin.WrapH(pprof.Handler("allocs")))
		pprofRouter.GET("/goroutine", gin.WrapH(pprof.Handler("goroutine")))
		pprofRouter.GET("/heap", gin.WrapH(pprof.Handler("heap")))
	}

	return router
}
