package grpc

import (
	"context"

	"github.com/dmitrijs2005/creatorhub/internal/models"
	"github.com/dmitrijs2005/creatorhub/internal/rpc"
)

func (s *GRPCServer) getCredits(ctx context.Context, _ *rpc.Empty) (*rpc.CreditsResponse, error) {
	credits, err := s.ledger.GetCredits(ctx, userIDFromContext(ctx))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &rpc.CreditsResponse{Credits: credits}, nil
}

func (s *GRPCServer) getTransactions(ctx context.Context, _ *rpc.Empty) (*rpc.TransactionsResponse, error) {
	txs, err := s.ledger.GetCreditTransactions(ctx, userIDFromContext(ctx))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &rpc.TransactionsResponse{Transactions: txs}, nil
}

func (s *GRPCServer) getDashboardStats(ctx context.Context, _ *rpc.Empty) (*models.DashboardStats, error) {
	stats, err := s.ledger.GetUserDashboardStats(ctx, userIDFromContext(ctx))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return stats, nil
}

func (s *GRPCServer) claimDailyBonus(ctx context.Context, _ *rpc.Empty) (*rpc.CreditsResponse, error) {
	credits, err := s.ledger.ClaimDailyBonus(ctx, userIDFromContext(ctx))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &rpc.CreditsResponse{Credits: credits}, nil
}

func (s *GRPCServer) completeProfile(ctx context.Context, _ *rpc.Empty) (*rpc.CreditsResponse, error) {
	credits, err := s.ledger.CompleteProfile(ctx, userIDFromContext(ctx))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &rpc.CreditsResponse{Credits: credits}, nil
}

func (s *GRPCServer) adjustUserCredits(ctx context.Context, req *rpc.AdjustCreditsRequest) (*rpc.TransactionResponse, error) {
	t, err := s.ledger.AdjustUserCredits(ctx, req.UserID, req.Credits)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	s.logger.Info(ctx, "admin adjusted credits", "admin_id", userIDFromContext(ctx), "user_id", req.UserID)
	return &rpc.TransactionResponse{Transaction: *t}, nil
}

func (s *GRPCServer) getAllUsers(ctx context.Context, _ *rpc.Empty) (*rpc.UsersResponse, error) {
	users, err := s.ledger.GetAllUsers(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &rpc.UsersResponse{Users: users}, nil
}

func (s *GRPCServer) getAdminStats(ctx context.Context, _ *rpc.Empty) (*models.AdminStats, error) {
	stats, err := s.ledger.GetAdminStats(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return stats, nil
}
