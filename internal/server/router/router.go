package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/laprovidence/livestock/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(animals *handlers.AnimalHandler, records *handlers.RecordHandler, reports *handlers.ReportHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	api := r.Group("/api")
	{
		api.GET("/animals", animals.List)
		api.POST("/animals", animals.Create)
		api.GET("/animals/:id", animals.Get)
		api.PUT("/animals/:id", animals.Update)
		api.DELETE("/animals/:id", animals.Delete)
		api.GET("/animals/:id/medical", records.ListMedical)
		api.GET("/animals/:id/reproduction", records.ListReproduction)

		api.POST("/sales", records.RecordSale)
		api.GET("/sales", records.ListSales)
		api.POST("/medical", records.RecordMedical)
		api.POST("/reproduction", records.RecordBreeding)
		api.POST("/reproduction/:id/birth", records.RecordBirth)
		api.POST("/financial", records.RecordFinancial)
		api.GET("/history", records.ListHistory)

		api.GET("/stats", reports.PopulationStats)
		api.GET("/finance/summary", reports.FinancialSummary)
		api.GET("/reminders", reports.UpcomingReminders)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
