package client

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/creatorhub/internal/common"
	"github.com/dmitrijs2005/creatorhub/internal/models"
	"github.com/dmitrijs2005/creatorhub/internal/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// TokenSource yields the bearer token for the next call. An empty token
// sends no authorization header.
type TokenSource func() string

// GRPCClient calls the ledger and feed services.
type GRPCClient struct {
	conn    *grpc.ClientConn
	token   TokenSource
	timeout time.Duration
}

// NewGRPCClient dials address lazily. Extra dial options are appended, so
// tests can swap the transport.
func NewGRPCClient(address string, token TokenSource, timeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{token: token, timeout: timeout}

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.tokenInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(address, opts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	return c, nil
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

func (c *GRPCClient) tokenInterceptor(ctx context.Context, method string, req, reply any,
	cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
	if token := c.token(); token != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, common.AuthorizationHeaderName, common.BearerPrefix+token)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

func (c *GRPCClient) invoke(ctx context.Context, service, method string, req, resp any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	err := c.conn.Invoke(ctx, rpc.FullMethod(service, method), req, resp, grpc.CallContentSubtype(rpc.CodecName))
	return mapError(err)
}

// mapError turns a gRPC status into one of the package sentinels, keeping
// the server's message.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	var sentinel error
	switch st.Code() {
	case codes.Unauthenticated:
		sentinel = ErrUnauthorized
	case codes.PermissionDenied:
		sentinel = ErrForbidden
	case codes.NotFound:
		sentinel = ErrNotFound
	case codes.FailedPrecondition:
		sentinel = ErrAlreadyClaimed
	case codes.InvalidArgument:
		sentinel = ErrInvalidArgument
	case codes.Unavailable, codes.DeadlineExceeded:
		sentinel = ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
	return fmt.Errorf("%w: %s", sentinel, st.Message())
}

// Ping asks the health service whether the ledger is serving.
func (c *GRPCClient) Ping(ctx context.Context) error {
	resp, err := healthpb.NewHealthClient(c.conn).Check(ctx, &healthpb.HealthCheckRequest{Service: rpc.LedgerService})
	if err != nil {
		return mapError(err)
	}
	if resp.Status != healthpb.HealthCheckResponse_SERVING {
		return ErrUnavailable
	}
	return nil
}

func (c *GRPCClient) GetCredits(ctx context.Context) (int64, error) {
	var resp rpc.CreditsResponse
	if err := c.invoke(ctx, rpc.LedgerService, rpc.GetCredits, &rpc.Empty{}, &resp); err != nil {
		return 0, err
	}
	return resp.Credits, nil
}

func (c *GRPCClient) GetTransactions(ctx context.Context) ([]models.CreditTransaction, error) {
	var resp rpc.TransactionsResponse
	if err := c.invoke(ctx, rpc.LedgerService, rpc.GetTransactions, &rpc.Empty{}, &resp); err != nil {
		return nil, err
	}
	return resp.Transactions, nil
}

func (c *GRPCClient) GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var resp models.DashboardStats
	if err := c.invoke(ctx, rpc.LedgerService, rpc.GetDashboardStats, &rpc.Empty{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ClaimDailyBonus returns the new balance.
func (c *GRPCClient) ClaimDailyBonus(ctx context.Context) (int64, error) {
	var resp rpc.CreditsResponse
	if err := c.invoke(ctx, rpc.LedgerService, rpc.ClaimDailyBonus, &rpc.Empty{}, &resp); err != nil {
		return 0, err
	}
	return resp.Credits, nil
}

// CompleteProfile returns the new balance.
func (c *GRPCClient) CompleteProfile(ctx context.Context) (int64, error) {
	var resp rpc.CreditsResponse
	if err := c.invoke(ctx, rpc.LedgerService, rpc.CompleteProfile, &rpc.Empty{}, &resp); err != nil {
		return 0, err
	}
	return resp.Credits, nil
}

func (c *GRPCClient) AdjustUserCredits(ctx context.Context, userID string, credits int64) (*models.CreditTransaction, error) {
	var resp rpc.TransactionResponse
	req := &rpc.AdjustCreditsRequest{UserID: userID, Credits: credits}
	if err := c.invoke(ctx, rpc.LedgerService, rpc.AdjustUserCredits, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Transaction, nil
}

func (c *GRPCClient) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	var resp rpc.UsersResponse
	if err := c.invoke(ctx, rpc.LedgerService, rpc.GetAllUsers, &rpc.Empty{}, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

func (c *GRPCClient) GetAdminStats(ctx context.Context) (*models.AdminStats, error) {
	var resp models.AdminStats
	if err := c.invoke(ctx, rpc.LedgerService, rpc.GetAdminStats, &rpc.Empty{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *GRPCClient) FetchFeed(ctx context.Context, sources ...models.FeedSource) ([]models.FeedItem, error) {
	var resp rpc.FeedResponse
	if err := c.invoke(ctx, rpc.FeedService, rpc.FetchFeed, &rpc.FetchFeedRequest{Sources: sources}, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (c *GRPCClient) ToggleSave(ctx context.Context, postID string) (bool, error) {
	var resp rpc.ToggleSaveResponse
	if err := c.invoke(ctx, rpc.FeedService, rpc.ToggleSave, &rpc.PostRequest{PostID: postID}, &resp); err != nil {
		return false, err
	}
	return resp.Saved, nil
}

func (c *GRPCClient) GetSaved(ctx context.Context) ([]models.FeedItem, error) {
	var resp rpc.FeedResponse
	if err := c.invoke(ctx, rpc.FeedService, rpc.GetSaved, &rpc.Empty{}, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (c *GRPCClient) Report(ctx context.Context, postID, reason string) error {
	return c.invoke(ctx, rpc.FeedService, rpc.Report, &rpc.ReportRequest{PostID: postID, Reason: reason}, &rpc.Empty{})
}

// Share returns the post's public URL.
func (c *GRPCClient) Share(ctx context.Context, postID string) (string, error) {
	var resp rpc.ShareResponse
	if err := c.invoke(ctx, rpc.FeedService, rpc.Share, &rpc.PostRequest{PostID: postID}, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}

func (c *GRPCClient) GetReported(ctx context.Context) ([]models.ReportedPost, error) {
	var resp rpc.ReportedResponse
	if err := c.invoke(ctx, rpc.FeedService, rpc.GetReported, &rpc.Empty{}, &resp); err != nil {
		return nil, err
	}
	return resp.Reports, nil
}
