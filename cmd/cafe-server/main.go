package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/hafidmst/qrcafe/docs"
	"github.com/hafidmst/qrcafe/internal/config"
	"github.com/hafidmst/qrcafe/internal/httpx"
	"github.com/hafidmst/qrcafe/internal/metrics"
	"github.com/hafidmst/qrcafe/internal/order"
	"github.com/hafidmst/qrcafe/internal/payment"
	"github.com/hafidmst/qrcafe/internal/product"
	"github.com/hafidmst/qrcafe/internal/profile"
	"github.com/hafidmst/qrcafe/internal/ratelimit"
	"github.com/hafidmst/qrcafe/internal/table"
)

// @title qrcafe API
// @version 1.0
// @description Cashierless cafe ordering: per-table QR menus, carts and Snap payments.
// @BasePath /
func main() {
	cfg := config.Load()

	pool, err := pgxpool.New(context.Background(), cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("[db] connect: %v", err)
	}
	defer pool.Close()

	orders := order.NewPGRepo(pool)
	products := product.NewPGRepo(pool)
	tables := table.NewPGRepo(pool)
	profiles := profile.NewPGRepo(pool)

	orderSvc := order.NewService(orders, tables, products)
	profileSvc := profile.NewService(profiles)
	snap := payment.NewClient(cfg.MidtransAPIURL(), cfg.MidtransServerKey, cfg.BaseURL, products)
	reconciler := payment.NewReconciler(orders, cfg.MidtransServerKey, nil)
	reconciler.OnSignatureMismatch(metrics.SignatureMismatches.Inc)

	apiLimiter := ratelimit.NewFixedWindow(cfg.APIRateLimit, cfg.RateLimitWindow)
	webhookLimiter := ratelimit.NewFixedWindow(cfg.WebhookRateLimit, cfg.RateLimitWindow)

	r := gin.New()
	r.Use(gin.Recovery(), httpx.RequestID(), httpx.Logger())

	r.GET("/healthz", func(c *gin.Context) { c.String(200, "ok") })
	r.GET("/metrics", metrics.Handler())
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	ordersGroup := r.Group("/orders", httpx.RateLimit(apiLimiter))
	ordersGroup.POST("", createOrderHandler(orderSvc, profileSvc))
	ordersGroup.GET("", listOrdersHandler(orders))
	ordersGroup.GET("/:id", getOrderHandler(orders))
	ordersGroup.PATCH("/:id", patchOrderHandler(orders, profileSvc))

	r.POST("/payment/create-session", createPaymentSessionHandler(snap))
	r.POST("/webhooks/payment", paymentWebhookHandler(reconciler, webhookLimiter))

	r.GET("/tables", listTablesHandler(tables))
	r.GET("/tables/:number", getTableByNumberHandler(tables))
	r.POST("/tables", requireStaff(profileSvc), createTableHandler(tables, cfg.BaseURL))

	r.GET("/products", listProductsHandler(products))
	r.POST("/products", requireStaff(profileSvc), createProductHandler(products))

	r.POST("/auth/login", loginHandler(profileSvc))

	log.Printf("cafe-server listening on %s", cfg.HTTPAddr)
	log.Fatal(r.Run(cfg.HTTPAddr))
}
