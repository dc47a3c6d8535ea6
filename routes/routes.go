package routes

import (
	"net/http"

	"foodly/configs"
	"foodly/controllers"
	"foodly/entity"
	"foodly/middlewares"
	"foodly/pkg/kv"
	"foodly/repository"
	"foodly/services"
	"foodly/ws"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps is everything the routes are built from.
type Deps struct {
	DB       *gorm.DB
	Cfg      *configs.Config
	Log      *zap.Logger
	KV       kv.Store
	Notifier services.OrderNotifier
	Hub      *ws.CartHub
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.Use(middlewares.RequestLogger(d.Log))
	r.Use(middlewares.CORSMiddleware())
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	// Repositories
	userRepo := repository.NewUserRepository(d.DB)
	restRepo := repository.NewRestaurantRepository(d.DB)
	menuRepo := repository.NewMenuRepository(d.DB)
	catRepo := repository.NewCategoryRepository(d.DB)
	orderRepo := repository.NewOrderRepository(d.DB)

	// Services
	var hub services.Broadcaster
	if d.Hub != nil {
		hub = d.Hub
	}
	authSvc := services.NewAuthService(userRepo, d.Cfg.JWTSecret, d.Cfg.JWTTTL, d.Log)
	restSvc := services.NewRestaurantService(restRepo, menuRepo, catRepo)
	cartSvc := services.NewCartService(d.KV, menuRepo, restRepo, hub, d.Log)
	orderSvc := services.NewOrderService(orderRepo, restRepo, menuRepo, cartSvc, d.Notifier, d.Log)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	restCtrl := controllers.NewRestaurantController(restSvc)
	cartCtrl := controllers.NewCartController(cartSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	ownerCtrl := controllers.NewOwnerOrderController(orderSvc)

	auth := middlewares.AuthMiddleware(d.Cfg.JWTSecret)

	// Auth
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
		a.GET("/me", auth, authCtrl.Me)
	}

	// Catalog (public)
	r.GET("/restaurants", restCtrl.List)
	r.GET("/restaurants/:id", restCtrl.Get)
	r.GET("/restaurants/:id/menu", restCtrl.Menu)
	r.GET("/categories", restCtrl.Categories)

	// Cart
	c := r.Group("/cart", auth)
	{
		c.GET("", cartCtrl.Get)
		c.GET("/checkout", cartCtrl.Checkout)
		c.POST("/items", cartCtrl.Add)
		c.PATCH("/items/:itemId", cartCtrl.UpdateQty)
		c.DELETE("/items/:itemId", cartCtrl.RemoveItem)
		c.DELETE("", cartCtrl.Clear)
	}

	// Orders (customer)
	o := r.Group("/orders", auth)
	{
		o.POST("/checkout", orderCtrl.Checkout)
		o.POST("", orderCtrl.Create)
		o.GET("", orderCtrl.ListMine)
		o.GET("/:id", orderCtrl.GetMine)
	}

	// Partner (restaurant owner / admin)
	p := r.Group("/partner", middlewares.AuthMiddleware(d.Cfg.JWTSecret, entity.RoleRestaurant, entity.RoleAdmin))
	{
		p.GET("/restaurants/:id/orders", ownerCtrl.List)
		p.PATCH("/orders/:id/status", ownerCtrl.UpdateStatus)
	}

	// Websocket
	if d.Hub != nil {
		d.Hub.Loader = cartSvc.Get
		r.GET("/ws/cart", middlewares.WSAuthMiddleware(d.Cfg.JWTSecret), d.Hub.HandleWebSocket)
	}
}
