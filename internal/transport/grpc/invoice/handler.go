package invoice

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	authcontracts "github.com/murkotick/invoice-dashboard-service/internal/app/auth/contracts"
	"github.com/murkotick/invoice-dashboard-service/internal/app/auth/usecases/authenticate"
	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/domain"
	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/schema"
	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/state"
	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/usecases/create_invoice"
	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/usecases/delete_invoice"
	shared "github.com/murkotick/invoice-dashboard-service/internal/app/invoice/usecases/shared"
	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/usecases/update_invoice"
	"github.com/murkotick/invoice-dashboard-service/internal/pkg/logger"
)

// Commands groups write interactors.
// Keep transport layer depending on application layer only.
type Commands struct {
	Create       *create_invoice.Interactor
	Update       *update_invoice.Interactor
	Delete       *delete_invoice.Interactor
	Authenticate *authenticate.Interactor
}

// Handler is a thin gRPC transport adapter over the invoice form actions.
type Handler struct {
	log      *logger.Logger
	commands Commands
}

var _ InvoiceMutationsServer = (*Handler)(nil)

func NewHandler(log *logger.Logger, cmd Commands) *Handler {
	return &Handler{log: log.With("transport", "grpc"), commands: cmd}
}

func (h *Handler) CreateInvoice(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	out := h.commands.Create.Execute(ctx, state.MutationState{}, mapSubmission(req))
	return mapOutcome(out), nil
}

func (h *Handler) UpdateInvoice(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id := stringField(req, schema.FieldID)
	if id == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}
	sub := mapForm(req)
	sub.Del(schema.FieldID)
	out := h.commands.Update.Execute(ctx, id, state.MutationState{}, schema.Submission(sub))
	return mapOutcome(out), nil
}

func (h *Handler) DeleteInvoice(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id := stringField(req, schema.FieldID)
	if id == "" {
		return nil, mapError(domain.ErrEmptyInvoiceID)
	}
	if err := h.commands.Delete.Execute(ctx, id); err != nil {
		h.log.Error("delete invoice failed", "invoice_id", id, "error", err)
		return nil, mapError(err)
	}
	return mapOutcome(state.RedirectTo(shared.InvoicesPath)), nil
}

func (h *Handler) Authenticate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	out, err := h.commands.Authenticate.Execute(ctx, nil, mapForm(req))
	if err != nil {
		h.log.Error("authenticate failed", "error", err)
		return nil, mapError(err)
	}
	return mapAuthOutcome(out), nil
}

// SessionInterceptor requires a bearer session token in the "authorization"
// metadata for every method except Authenticate.
func SessionInterceptor(verifier authcontracts.SessionVerifier) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		if info.FullMethod == MethodAuthenticate {
			return handler(ctx, req)
		}
		if _, err := verifier.Verify(bearerToken(ctx)); err != nil {
			return nil, mapError(err)
		}
		return handler(ctx, req)
	}
}

func bearerToken(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	for _, v := range md.Get("authorization") {
		if len(v) > 7 && strings.EqualFold(v[:7], "Bearer ") {
			return v[7:]
		}
	}
	return ""
}
