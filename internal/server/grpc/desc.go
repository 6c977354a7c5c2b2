package grpc

import (
	"context"

	"github.com/dmitrijs2005/creatorhub/internal/rpc"
	"google.golang.org/grpc"
)

// unary builds a MethodDesc that decodes Req, runs the interceptor chain and
// calls fn.
func unary[Req, Resp any](service, method string, fn func(*GRPCServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	fullMethod := rpc.FullMethod(service, method)
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(*GRPCServer)
			if interceptor == nil {
				return fn(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return fn(s, ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var ledgerServiceDesc = grpc.ServiceDesc{
	ServiceName: rpc.LedgerService,
	HandlerType: (*any)(nil),
	Methods: []grpc.MethodDesc{
		unary(rpc.LedgerService, rpc.GetCredits, (*GRPCServer).getCredits),
		unary(rpc.LedgerService, rpc.GetTransactions, (*GRPCServer).getTransactions),
		unary(rpc.LedgerService, rpc.GetDashboardStats, (*GRPCServer).getDashboardStats),
		unary(rpc.LedgerService, rpc.ClaimDailyBonus, (*GRPCServer).claimDailyBonus),
		unary(rpc.LedgerService, rpc.CompleteProfile, (*GRPCServer).completeProfile),
		unary(rpc.LedgerService, rpc.AdjustUserCredits, (*GRPCServer).adjustUserCredits),
		unary(rpc.LedgerService, rpc.GetAllUsers, (*GRPCServer).getAllUsers),
		unary(rpc.LedgerService, rpc.GetAdminStats, (*GRPCServer).getAdminStats),
	},
	Metadata: "creatorhub/ledger",
}

var feedServiceDesc = grpc.ServiceDesc{
	ServiceName: rpc.FeedService,
	HandlerType: (*any)(nil),
	Methods: []grpc.MethodDesc{
		unary(rpc.FeedService, rpc.FetchFeed, (*GRPCServer).fetchFeed),
		unary(rpc.FeedService, rpc.ToggleSave, (*GRPCServer).toggleSave),
		unary(rpc.FeedService, rpc.GetSaved, (*GRPCServer).getSaved),
		unary(rpc.FeedService, rpc.Report, (*GRPCServer).report),
		unary(rpc.FeedService, rpc.Share, (*GRPCServer).share),
		unary(rpc.FeedService, rpc.GetReported, (*GRPCServer).getReported),
	},
	Metadata: "creatorhub/feed",
}
