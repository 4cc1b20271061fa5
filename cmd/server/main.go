package main

import (
	"context"
	"log"
	"time"

	"storefront-service/internal/auth"
	"storefront-service/internal/cache"
	"storefront-service/internal/cart"
	"storefront-service/internal/config"
	httpctrl "storefront-service/internal/controllers/http"
	"storefront-service/internal/domain"
	"storefront-service/internal/infra"
	mmysql "storefront-service/internal/infra/mysql"
	"storefront-service/internal/infra/rabbitmq"
	mysqlrepo "storefront-service/internal/repository/mysql"
	"storefront-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := mmysql.NewMySQL(cfg.DSN())
	if err != nil {
		log.Fatalf("db: connect: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetMaxIdleConns(20)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr,
		DB:           0,
		PoolSize:     50,
		MinIdleConns: 5,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})

	publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
	if err != nil {
		log.Fatalf("failed to init publisher: %v", err)
	}
	defer publisher.Close()

	twoTier := cache.NewTwoTier(cache.NewRedisStore(redisClient))

	orderSvc := services.NewOrderService(mysqlrepo.NewOrderRepository(db), publisher)
	orderSvc.SetCache(twoTier, cfg.Cache.OrderTTL)

	catalogSvc := services.NewCatalogService(
		mysqlrepo.NewProductRepository(db),
		mysqlrepo.NewContentRepository[domain.Category](db, "name ASC"),
		mysqlrepo.NewContentRepository[domain.Banner](db, "position ASC"),
		mysqlrepo.NewContentRepository[domain.Blog](db, "published_at DESC"),
		mysqlrepo.NewContentRepository[domain.GalleryItem](db, ""),
	)
	catalogSvc.SetCache(twoTier, cfg.Cache.ProductTTL, cfg.Cache.CategoryTTL)

	leadSvc := services.NewLeadService(mysqlrepo.NewLeadRepository(db), publisher)

	cartStore := cart.NewStore(cart.NewRedisSnapshotStore(redisClient))

	authSvc := auth.NewService(cfg.Admin.Email, cfg.Admin.Password,
		cfg.Admin.SessionTTL, auth.NewRedisSessionStore(redisClient))

	pincodeClient := infra.NewPincodeClient(cfg.Pincode.BaseURL, cfg.Pincode.Timeout)

	ctx := context.Background()
	orderSvc.StartOrderPolling(ctx, cfg.Cache.OrderPollPeriod)

	handler := httpctrl.NewHandler(catalogSvc, orderSvc, leadSvc, cartStore, authSvc, pincodeClient)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	handler.RegisterRoutes(r)

	log.Printf("Starting storefront service on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server run: %v", err)
	}
}
