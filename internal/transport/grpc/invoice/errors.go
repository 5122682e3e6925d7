package invoice

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	authdomain "github.com/murkotick/invoice-dashboard-service/internal/app/auth/domain"
	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/domain"
	shared "github.com/murkotick/invoice-dashboard-service/internal/app/invoice/usecases/shared"
)

// mapError translates errors that escape the interactors into gRPC status
// codes. Unknown errors become codes.Internal.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) {
		return status.Error(codes.Canceled, err.Error())
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return status.Error(codes.DeadlineExceeded, err.Error())
	}

	switch {
	case errors.Is(err, authdomain.ErrInvalidSession):
		return status.Error(codes.Unauthenticated, "missing or invalid session")
	case errors.Is(err, domain.ErrEmptyInvoiceID):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrPersistence):
		// Store details stay in the server log.
		return status.Error(codes.Internal, shared.MsgDeleteFailed)
	}

	return status.Error(codes.Internal, err.Error())
}
