// Package grpc serves the Ledger and Feed stores over gRPC. Messages use the
// rpc JSON codec; every call into those services carries a bearer token.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/creatorhub/internal/logging"
	"github.com/dmitrijs2005/creatorhub/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// AdminChecker resolves the role of an authenticated user.
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

type GRPCServer struct {
	address   string
	users     AdminChecker
	ledger    *services.LedgerService
	feed      *services.FeedService
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(address string, l logging.Logger, users AdminChecker, ledger *services.LedgerService, feed *services.FeedService, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   address,
		users:     users,
		ledger:    ledger,
		feed:      feed,
		logger:    l.With("module", "grpc_server"),
		jwtSecret: []byte(secretKey),
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.authInterceptor))

	srv.RegisterService(&ledgerServiceDesc, s)
	srv.RegisterService(&feedServiceDesc, s)

	hs := health.NewServer()
	hs.SetServingStatus(ledgerServiceDesc.ServiceName, healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(feedServiceDesc.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	return srv
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled, then stops
// gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	return srv.Serve(lis)
}
