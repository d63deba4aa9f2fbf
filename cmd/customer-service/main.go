package main

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MikeMC777/ordenes-core/internal/config"
	"github.com/MikeMC777/ordenes-core/internal/customer"
	pb "github.com/MikeMC777/ordenes-core/internal/customerpb"
	"github.com/MikeMC777/ordenes-core/internal/database"
)

func newServer(repo customer.Repository) (*grpc.Server, *health.Server) {
	srv := grpc.NewServer(grpc.UnaryInterceptor(logUnary))
	pb.RegisterCustomerDirectoryServer(srv, customer.NewService(repo))

	hs := health.NewServer()
	hs.SetServingStatus(pb.CustomerDirectory_ServiceDesc.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)
	return srv, hs
}

func main() {
	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, cfg.PostgresDSN, cfg.DBMaxConns)
	if err != nil {
		log.Fatalf("[db] connect: %v", err)
	}
	defer db.Close()

	lis, err := net.Listen("tcp", cfg.CustomerSvcAddr)
	if err != nil {
		log.Fatalf("[grpc] listen %s: %v", cfg.CustomerSvcAddr, err)
	}
	srv, hs := newServer(customer.NewPGRepo(db))

	go func() {
		<-ctx.Done()
		hs.Shutdown()
		srv.GracefulStop()
	}()
	log.Printf("[grpc] customer-service listening on %s", cfg.CustomerSvcAddr)
	if err := srv.Serve(lis); err != nil {
		log.Fatalf("[grpc] serve: %v", err)
	}
	log.Printf("[grpc] customer-service stopped")
}
