package main

import (
	"context"
	"html/template"
	"log"
	"os"

	"shopfront/internal/api"
	"shopfront/internal/config"
	"shopfront/internal/handlers"
	"shopfront/internal/services"
	"shopfront/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// A .env file is optional; the environment wins either way.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	gin.SetMode(gin.ReleaseMode)
	cfg := config.Load()

	// Only the auth token survives restarts, and only when Redis is
	// configured. Carts and filters are in-memory by design.
	var tokens store.TokenStore
	if cfg.RedisURL != "" {
		redisStore, err := store.NewRedisStore(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Fatalf("redis token store: %v", err)
		}
		defer redisStore.Close()
		tokens = redisStore
		log.Printf("token store: redis (%s)", cfg.RedisURL)
	} else {
		tokens = store.NewMemoryStore()
		log.Printf("token store: in-memory, sessions will not survive a restart")
	}

	gateway := api.NewClient(cfg.APIBaseURL)
	carts := services.NewCartService()
	sessions := services.NewSessionService(gateway, tokens)
	checkout := services.NewCheckoutService(gateway, carts)
	catalog := services.NewCatalogService(gateway)
	h := handlers.NewHandler(gateway, carts, sessions, checkout, catalog)

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	// One template set per page, each paired with the shared base.
	templates := map[string]*template.Template{}
	templateFiles := map[string][]string{
		"home.html":           {"templates/home.html", "templates/base.html"},
		"products.html":       {"templates/products.html", "templates/base.html"},
		"product_detail.html": {"templates/product_detail.html", "templates/base.html"},
		"cart.html":           {"templates/cart.html", "templates/base.html"},
		"checkout.html":       {"templates/checkout.html", "templates/base.html"},
		"order_success.html":  {"templates/order_success.html", "templates/base.html"},
		"login.html":          {"templates/login.html", "templates/base.html"},
		"register.html":       {"templates/register.html", "templates/base.html"},
		"orders.html":         {"templates/orders.html", "templates/base.html"},
		"about.html":          {"templates/about.html", "templates/base.html"},
		"contact.html":        {"templates/contact.html", "templates/base.html"},
	}
	for name, files := range templateFiles {
		tmpl, err := template.New(name).Funcs(handlers.TemplateFuncs).ParseFiles(files...)
		if err != nil {
			log.Fatalf("template %s: %v", name, err)
		}
		templates[name] = tmpl
	}
	r.HTMLRender = &handlers.HTMLRenderer{Templates: templates}

	r.GET("/", h.HomePage)
	r.GET("/products", h.ProductsPage)
	r.GET("/products/:id", h.ProductDetailPage)
	r.POST("/products/:id/reviews", h.SubmitReview)

	// Cart routes
	r.GET("/cart", h.CartPage)
	r.POST("/cart/add", h.AddToCart)
	r.POST("/cart/update", h.UpdateCartItem)
	r.POST("/cart/remove", h.RemoveFromCart)
	r.GET("/cart/count", h.GetCartCount)

	// Checkout routes
	r.GET("/checkout", h.CheckoutPage)
	r.POST("/checkout/shipping", h.CheckoutShipping)
	r.POST("/checkout/payment", h.CheckoutPayment)
	r.POST("/checkout/back", h.CheckoutBack)
	r.POST("/checkout/place-order", h.PlaceOrder)
	r.GET("/order-success", h.OrderSuccessPage)

	// User authentication routes
	r.GET("/login", h.LoginPage)
	r.POST("/login", h.HandleLogin)
	r.GET("/register", h.RegisterPage)
	r.POST("/register", h.HandleRegister)
	r.GET("/logout", h.UserLogout)

	// Order history (protected)
	orders := r.Group("/orders")
	orders.Use(h.AuthUserMiddleware())
	{
		orders.GET("", h.OrdersPage)
	}

	r.GET("/about", h.AboutPage)
	r.GET("/contact", h.ContactPage)

	addr := cfg.Addr
	if port := os.Getenv("PORT"); port != "" {
		// Hosted environments inject PORT.
		addr = ":" + port
	}

	log.Printf("storefront listening on %s, backend API at %s", addr, cfg.APIBaseURL)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
