package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/MikeMC777/ordenes-core/internal/config"
	"github.com/MikeMC777/ordenes-core/internal/database"
	"github.com/MikeMC777/ordenes-core/internal/docs"
	"github.com/MikeMC777/ordenes-core/internal/httpx"
	ord "github.com/MikeMC777/ordenes-core/internal/order"
	prod "github.com/MikeMC777/ordenes-core/internal/product"
)

// @title        Order Service API
// @version      1.0
// @BasePath     /
func main() {
	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, cfg.PostgresDSN, cfg.DBMaxConns)
	if err != nil {
		log.Fatalf("[db] connect: %v", err)
	}
	defer db.Close()

	ext, err := ord.NewExt(cfg.CustomerSvcTarget)
	if err != nil {
		log.Fatalf("[grpc] customer directory %s: %v", cfg.CustomerSvcTarget, err)
	}
	defer ext.Close()

	products := prod.NewPGRepo(db)
	orders := ord.NewPGRepo(db)
	svc := ord.NewService(ord.Deps{
		Customers: ext,
		Products:  products,
		Stock:     products,
		Orders:    orders,
		Tx:        db,
	})

	r := httpx.NewRouter()
	registerRoutes(r, svc, orders)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.InstanceName(docs.OrdersInstance)))

	if err := httpx.Serve(ctx, "order-service", cfg.OrderSvcAddr, r); err != nil {
		log.Fatal(err)
	}
}
