package list_customers

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

func (h *Handler) Execute(ctx context.Context) ([]*dto.CustomerField, error) {
	return h.readModel.FetchCustomers(ctx)
}
