package grpc

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/creatorhub/internal/common"
	"github.com/dmitrijs2005/creatorhub/internal/rpc"
	"github.com/dmitrijs2005/creatorhub/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const userIDKey ctxKey = "userID"

func userIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

func protected(fullMethod string) bool {
	return strings.HasPrefix(fullMethod, "/"+rpc.LedgerService+"/") ||
		strings.HasPrefix(fullMethod, "/"+rpc.FeedService+"/")
}

func bearerToken(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get(common.AuthorizationHeaderName)
	if len(values) == 0 {
		return ""
	}
	token, found := strings.CutPrefix(values[0], common.BearerPrefix)
	if !found {
		return ""
	}
	return strings.TrimSpace(token)
}

// authInterceptor verifies the bearer token on Ledger and Feed calls and
// puts the user id into the context. Admin methods also need the admin role.
func (s *GRPCServer) authInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if !protected(info.FullMethod) {
		return handler(ctx, req)
	}

	token := bearerToken(ctx)
	if token == "" {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
		}
		return nil, status.Error(codes.Unauthenticated, "invalid token")
	}

	if rpc.IsAdminMethod(info.FullMethod) {
		admin, err := s.users.IsAdmin(ctx, claims.UserID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return nil, status.Error(codes.Unauthenticated, "unknown user")
			}
			s.logger.Error(ctx, "role lookup failed", "user_id", claims.UserID, "error", err)
			return nil, status.Error(codes.Internal, "internal error")
		}
		if !admin {
			return nil, status.Error(codes.PermissionDenied, "admin only")
		}
	}

	return handler(context.WithValue(ctx, userIDKey, claims.UserID), req)
}

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	s.logger.Info(ctx, "grpc call",
		"method", info.FullMethod,
		"code", status.Code(err).String(),
		"duration", time.Since(start))
	return resp, err
}
