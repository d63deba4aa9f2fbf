package main

import (
	"context"
	"log"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// logUnary logs method, status code and duration of every unary call.
func logUnary(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	log.Printf("[grpc] %s code=%s dur=%s", info.FullMethod, status.Code(err), time.Since(start))
	return resp, err
}
