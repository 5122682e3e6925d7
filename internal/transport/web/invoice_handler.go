package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/domain"
	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/dto"
	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/queries/get_invoice"
	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/queries/list_customers"
	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/schema"
	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/state"
	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/usecases/create_invoice"
	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/usecases/delete_invoice"
	shared "github.com/murkotick/invoice-dashboard-service/internal/app/invoice/usecases/shared"
	"github.com/murkotick/invoice-dashboard-service/internal/app/invoice/usecases/update_invoice"
	"github.com/murkotick/invoice-dashboard-service/internal/pkg/logger"
)

// Commands groups the invoice form actions.
type Commands struct {
	Create *create_invoice.Interactor
	Update *update_invoice.Interactor
	Delete *delete_invoice.Interactor
}

// Queries groups the reads the invoice forms need.
type Queries struct {
	Get       *get_invoice.Handler
	Customers *list_customers.Handler
}

type InvoiceHandler struct {
	log      *logger.Logger
	commands Commands
	queries  Queries
}

func NewInvoiceHandler(log *logger.Logger, cmd Commands, qry Queries) *InvoiceHandler {
	return &InvoiceHandler{log: log.With("handler", "InvoiceHandler"), commands: cmd, queries: qry}
}

type editFormReply struct {
	Invoice   *dto.InvoiceForm     `json:"invoice"`
	Customers []*dto.CustomerField `json:"customers"`
}

type createFormReply struct {
	Customers []*dto.CustomerField `json:"customers"`
}

// Create handles POST /dashboard/invoices.
func (h *InvoiceHandler) Create(c *gin.Context) {
	sub, ok := h.submission(c)
	if !ok {
		return
	}
	respondOutcome(c, h.commands.Create.Execute(c.Request.Context(), state.MutationState{}, sub))
}

// Update handles POST /dashboard/invoices/:id/edit.
func (h *InvoiceHandler) Update(c *gin.Context) {
	sub, ok := h.submission(c)
	if !ok {
		return
	}
	respondOutcome(c, h.commands.Update.Execute(c.Request.Context(), c.Param("id"), state.MutationState{}, sub))
}

// Delete handles POST /dashboard/invoices/:id/delete. A store failure is
// logged and reported here rather than by the interactor.
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.commands.Delete.Execute(c.Request.Context(), id); err != nil {
		h.log.Error("delete invoice failed", "invoice_id", id, "error", err)
		respondMessage(c, http.StatusInternalServerError, shared.MsgDeleteFailed)
		return
	}
	c.Redirect(http.StatusSeeOther, shared.InvoicesPath)
}

// CreateForm handles GET /dashboard/invoices/create.
func (h *InvoiceHandler) CreateForm(c *gin.Context) {
	customers, err := h.queries.Customers.Execute(c.Request.Context())
	if err != nil {
		h.log.Error("fetch customers failed", "error", err)
		respondMessage(c, http.StatusInternalServerError, "Failed to fetch customers.")
		return
	}
	c.JSON(http.StatusOK, createFormReply{Customers: customers})
}

// EditForm handles GET /dashboard/invoices/:id/edit. The invoice and the
// customer list are fetched concurrently.
func (h *InvoiceHandler) EditForm(c *gin.Context) {
	id := c.Param("id")
	var (
		invoice   *dto.InvoiceForm
		customers []*dto.CustomerField
	)
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		invoice, err = h.queries.Get.Execute(ctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		customers, err = h.queries.Customers.Execute(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, domain.ErrInvoiceNotFound) {
			respondMessage(c, http.StatusNotFound, "Invoice not found.")
			return
		}
		h.log.Error("fetch edit form failed", "invoice_id", id, "error", err)
		respondMessage(c, http.StatusInternalServerError, "Failed to fetch invoice.")
		return
	}
	c.JSON(http.StatusOK, editFormReply{Invoice: invoice, Customers: customers})
}

func (h *InvoiceHandler) submission(c *gin.Context) (schema.Submission, bool) {
	if err := c.Request.ParseForm(); err != nil {
		respondMessage(c, http.StatusBadRequest, "Malformed form submission.")
		return nil, false
	}
	return schema.Submission(c.Request.PostForm), true
}
