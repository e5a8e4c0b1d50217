package grpc

import (
	"context"
	"errors"

	"github.com/DRSN-tech/order-backoffice/pkg/e"
	"github.com/DRSN-tech/order-backoffice/pkg/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// GRPCErrorResponse приводит ошибку обработчика к статусу gRPC. Наружу открыты
// только health и reflection, поэтому доменных ошибок здесь нет: всё, что не
// статус и не отмена контекста, становится Internal без деталей.
func GRPCErrorResponse(err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	default:
		return status.Error(codes.Internal, e.ErrInternalServerError.Error())
	}
}

func unaryErrorInterceptor(log logger.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}

		mapped := GRPCErrorResponse(err)
		if status.Code(mapped) == codes.Internal {
			log.Errorf(err, "%s", info.FullMethod)
		} else {
			log.Warnf("%s: %s", info.FullMethod, err.Error())
		}
		return resp, mapped
	}
}
