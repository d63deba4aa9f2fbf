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
	prod "github.com/MikeMC777/ordenes-core/internal/product"
)

// @title        Product Service API
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

	r := httpx.NewRouter()
	registerRoutes(r, prod.NewPGRepo(db))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.InstanceName(docs.ProductsInstance)))

	if err := httpx.Serve(ctx, "product-service", cfg.ProductSvcAddr, r); err != nil {
		log.Fatal(err)
	}
}
