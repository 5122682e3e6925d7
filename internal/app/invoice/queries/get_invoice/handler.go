package get_invoice

import (
	"context"

	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/contracts"
	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/dto"
)

type Handler struct {
	readModel contracts.ReadModel
}

func NewHandler(r contracts.ReadModel) *Handler {
	return &Handler{readModel: r}
}

func (h *Handler) Execute(ctx context.Context, invoiceID string) (*dto.InvoiceForm, error) {
	return h.readModel.FetchInvoiceByID(ctx, invoiceID)
}
