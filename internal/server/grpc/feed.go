package grpc

import (
	"context"

	"github.com/dmitrijs2005/creatorhub/internal/rpc"
)

func (s *GRPCServer) fetchFeed(ctx context.Context, req *rpc.FetchFeedRequest) (*rpc.FeedResponse, error) {
	items, err := s.feed.FetchFeed(ctx, userIDFromContext(ctx), req.Sources)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &rpc.FeedResponse{Items: items}, nil
}

func (s *GRPCServer) toggleSave(ctx context.Context, req *rpc.PostRequest) (*rpc.ToggleSaveResponse, error) {
	saved, err := s.feed.ToggleSavePost(ctx, userIDFromContext(ctx), req.PostID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &rpc.ToggleSaveResponse{Saved: saved}, nil
}

func (s *GRPCServer) getSaved(ctx context.Context, _ *rpc.Empty) (*rpc.FeedResponse, error) {
	items, err := s.feed.GetSavedPosts(ctx, userIDFromContext(ctx))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &rpc.FeedResponse{Items: items}, nil
}

func (s *GRPCServer) report(ctx context.Context, req *rpc.ReportRequest) (*rpc.Empty, error) {
	if err := s.feed.ReportPost(ctx, userIDFromContext(ctx), req.PostID, req.Reason); err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &rpc.Empty{}, nil
}

func (s *GRPCServer) share(ctx context.Context, req *rpc.PostRequest) (*rpc.ShareResponse, error) {
	url, err := s.feed.SharePost(ctx, userIDFromContext(ctx), req.PostID)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &rpc.ShareResponse{URL: url}, nil
}

func (s *GRPCServer) getReported(ctx context.Context, _ *rpc.Empty) (*rpc.ReportedResponse, error) {
	reports, err := s.feed.GetReportedPosts(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return &rpc.ReportedResponse{Reports: reports}, nil
}
