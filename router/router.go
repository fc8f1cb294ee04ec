package router

import (
	"time"

	"cashbook/api"
	"cashbook/config"
	_ "cashbook/docs"
	"cashbook/ledger"
	"cashbook/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	// CORS 中间件
	r.Use(CORSMiddleware())

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	svc := ledger.New(db)
	accountHandler := api.NewAccountHandler(svc)
	transactionHandler := api.NewTransactionHandler(svc)
	categoryHandler := api.NewCategoryHandler(svc)
	statisticsHandler := api.NewStatisticsHandler(svc)
	exportHandler := api.NewExportHandler(svc)

	// API v1 路由组，全部需要 JWT 认证
	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth())
	{
		// 账户相关
		accounts := v1.Group("/accounts")
		{
			accounts.GET("", accountHandler.List)
			accounts.GET("/default", accountHandler.GetDefault)
			accounts.POST("", accountHandler.Create)
			accounts.PUT("/:id", accountHandler.Update)
			accounts.DELETE("/:id", accountHandler.Delete)
		}

		// 交易相关
		transactions := v1.Group("/transactions")
		{
			transactions.GET("", transactionHandler.List)
			transactions.POST("", transactionHandler.Create)
			// 转账接口限流，防止短时间内重复提交
			transactions.POST("/transfer", middleware.RateLimit(30, time.Minute), transactionHandler.Transfer)
			transactions.DELETE("/:id", transactionHandler.Delete)
		}

		// 类别相关
		categories := v1.Group("/categories")
		{
			categories.GET("", categoryHandler.List)
			categories.POST("", categoryHandler.Create)
			categories.POST("/initialize", categoryHandler.Initialize)
			categories.DELETE("/:id", categoryHandler.Delete)
		}

		// 统计相关
		v1.GET("/statistics", statisticsHandler.GetStatistics)
		v1.GET("/dashboard", statisticsHandler.GetDashboard)

		// 导出相关
		export := v1.Group("/export")
		{
			export.GET("/csv", exportHandler.ExportCSV)
			export.GET("/json", exportHandler.ExportJSON)
			export.GET("/excel", exportHandler.ExportExcel)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	return r
}

// CORSMiddleware CORS 跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
