package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"storefront-service/config"
	"storefront-service/controllers"
	"storefront-service/mailer"
	"storefront-service/middlewares"
	"storefront-service/storage"
)

// Dependencies are handed to the controllers. Events may be nil.
type Dependencies struct {
	DB      *gorm.DB
	Storage *storage.Local
	Mailer  mailer.Sender
	Events  controllers.EventPublisher
}

func NewRouter(cfg *config.Config, deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middlewares.PrometheusMiddleware())
	if len(cfg.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.Static(cfg.UploadURLPrefix, cfg.UploadDir)

	SetupRoutes(router, deps)
	return router
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	products := controllers.NewProductController(deps.DB, deps.Storage)
	reviews := controllers.NewReviewController(deps.DB)
	orders := controllers.NewOrderController(deps.DB, deps.Events)
	customers := controllers.NewCustomerController(deps.DB)
	blog := controllers.NewBlogController(deps.DB, deps.Storage)
	email := controllers.NewEmailController(deps.Mailer)

	router.POST("/send-email/", email.SendEmail)

	router.POST("/products/", products.CreateProduct)
	router.GET("/products/", products.GetProducts)
	router.GET("/products/:id", products.GetProduct)
	router.DELETE("/products/:id", products.DeleteProduct)
	router.GET("/specific/products/", products.FilterProducts)
	router.GET("/search/product/:name", products.SearchProducts)

	router.POST("/products/:id/reviews/", reviews.CreateReview)
	router.GET("/products/:id/reviews/", reviews.GetReviews)

	router.POST("/orders/submit/", orders.SubmitOrder)
	router.GET("/orders/", orders.GetOrders)
	router.GET("/orders/:id", orders.GetOrderDetails)
	router.PUT("/orders/:id/status", orders.UpdateOrderStatus)

	router.GET("/customers/", customers.GetCustomers)

	blogGroup := router.Group("/blog")
	{
		blogGroup.POST("/categories/", blog.CreateCategory)
		blogGroup.GET("/categories/", blog.GetCategories)
		blogGroup.POST("/posts/", blog.CreatePost)
		blogGroup.GET("/posts/", blog.GetPosts)
		blogGroup.DELETE("/posts/:id", blog.DeletePost)
	}
}
