package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/SscSPs/invoice_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/invoice_management_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_management_app/internal/dto"
	"github.com/SscSPs/invoice_management_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// invoiceHandler handles HTTP requests related to invoices and their sub-collections.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
}

func newInvoiceHandler(is portssvc.InvoiceSvcFacade) *invoiceHandler {
	return &invoiceHandler{invoiceService: is}
}

// RegisterInvoiceRoutes registers invoice routes on a group scoped by :tenantID.
func RegisterInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade) {
	h := newInvoiceHandler(invoiceService)

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("", h.listInvoices)
		invoices.POST("/preview", h.previewInvoice)
		invoices.GET("/:invoiceID", h.getInvoice)
		invoices.PUT("/:invoiceID", h.updateInvoice)

		invoices.POST("/:invoiceID/items", h.addItem)
		invoices.PATCH("/:invoiceID/items/:itemID", h.updateItem)
		invoices.DELETE("/:invoiceID/items/:itemID", h.removeItem)

		invoices.POST("/:invoiceID/payments", h.addPayment)
		invoices.POST("/:invoiceID/payments/apply", h.applyPayment)
		invoices.PATCH("/:invoiceID/payments/:paymentID", h.updatePayment)
		invoices.DELETE("/:invoiceID/payments/:paymentID", h.removePayment)

		invoices.POST("/:invoiceID/installments", h.addInstallment)
		invoices.POST("/:invoiceID/installments/generate", h.generateInstallments)
		invoices.PATCH("/:invoiceID/installments/:installmentID", h.updateInstallment)
		invoices.DELETE("/:invoiceID/installments/:installmentID", h.removeInstallment)
		invoices.POST("/:invoiceID/installments/:installmentID/pay", h.markInstallmentPaid)
	}
}

// etag renders a revision as a strong entity tag.
func etag(revision int64) string {
	return `"` + strconv.FormatInt(revision, 10) + `"`
}

// ifMatchRevision reads the revision from If-Match. A missing header yields 0.
func ifMatchRevision(c *gin.Context) (int64, bool) {
	raw := strings.TrimSpace(c.GetHeader("If-Match"))
	if raw == "" {
		return 0, true
	}
	raw = strings.Trim(strings.TrimPrefix(raw, "W/"), `"`)
	rev, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || rev < 1 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "If-Match must carry an invoice revision"})
		return 0, false
	}
	return rev, true
}

func userIDOrAbort(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	}
	return userID, ok
}

// target collects the invoice a sub-collection change applies to.
func (h *invoiceHandler) target(c *gin.Context) (portssvc.InvoiceTarget, bool) {
	userID, ok := userIDOrAbort(c)
	if !ok {
		return portssvc.InvoiceTarget{}, false
	}
	rev, ok := ifMatchRevision(c)
	if !ok {
		return portssvc.InvoiceTarget{}, false
	}
	return portssvc.InvoiceTarget{
		TenantID:         c.Param("tenantID"),
		InvoiceID:        c.Param("invoiceID"),
		ExpectedRevision: rev,
		UserID:           userID,
	}, true
}

func (h *invoiceHandler) respondInvoice(c *gin.Context, status int, inv *domain.Invoice) {
	c.Header("ETag", etag(inv.Revision))
	c.JSON(status, dto.ToInvoiceResponse(inv))
}

// createInvoice godoc
// @Summary Create an invoice
// @Description Builds the invoice from its inputs, computes every derived total and stores it at revision 1
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   invoice body dto.InvoiceRequest true "Invoice document"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 409 {object} ErrorResponse "Invoice number already used"
// @Failure 500 {object} ErrorResponse "Failed to create invoice"
// @Security BearerAuth
// @Router /tenants/{tenantID}/invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	userID, ok := userIDOrAbort(c)
	if !ok {
		return
	}
	var req dto.InvoiceRequest
	if !bindJSON(c, &req) {
		return
	}

	inv, err := h.invoiceService.CreateInvoice(c.Request.Context(), c.Param("tenantID"), req, userID)
	if err != nil {
		respondError(c, err, "create invoice")
		return
	}
	h.respondInvoice(c, http.StatusCreated, inv)
}

// previewInvoice godoc
// @Summary Preview an invoice
// @Description Computes the derived totals and warnings of an invoice document without storing it
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   invoice body dto.InvoiceRequest true "Invoice document"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse "Validation error"
// @Security BearerAuth
// @Router /tenants/{tenantID}/invoices/preview [post]
func (h *invoiceHandler) previewInvoice(c *gin.Context) {
	var req dto.InvoiceRequest
	if !bindJSON(c, &req) {
		return
	}
	inv, err := h.invoiceService.PreviewInvoice(c.Request.Context(), c.Param("tenantID"), req)
	if err != nil {
		respondError(c, err, "preview invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(inv))
}

// getInvoice godoc
// @Summary Get an invoice
// @Description Loads an invoice and recomputes its totals. The ETag header carries the revision.
// @Tags invoices
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   invoiceID path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} ErrorResponse "Invoice not found"
// @Security BearerAuth
// @Router /tenants/{tenantID}/invoices/{invoiceID} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	inv, err := h.invoiceService.GetInvoice(c.Request.Context(), c.Param("tenantID"), c.Param("invoiceID"))
	if err != nil {
		respondError(c, err, "retrieve invoice")
		return
	}
	h.respondInvoice(c, http.StatusOK, inv)
}

// listInvoices godoc
// @Summary List invoices
// @Description Lists invoice summaries of a tenant, newest invoice date first
// @Tags invoices
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   branchId query string false "Only invoices of this branch"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListInvoicesResponse
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Security BearerAuth
// @Router /tenants/{tenantID}/invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	var params dto.ListInvoicesParams
	if !bindQuery(c, &params) {
		return
	}
	resp, err := h.invoiceService.ListInvoices(c.Request.Context(), c.Param("tenantID"), params)
	if err != nil {
		respondError(c, err, "list invoices")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// updateInvoice godoc
// @Summary Replace an invoice
// @Description Replaces the invoice document when the expected revision (If-Match header or body revision) is current
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   invoiceID path string true "Invoice ID"
// @Param   If-Match header string false "Expected revision"
// @Param   invoice body dto.InvoiceRequest true "Invoice document"
// @Success 200 {object} dto.UpdateInvoiceResponse
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 404 {object} ErrorResponse "Invoice not found"
// @Failure 409 {object} ErrorResponse "Revision conflict or invoice number already used"
// @Security BearerAuth
// @Router /tenants/{tenantID}/invoices/{invoiceID} [put]
func (h *invoiceHandler) updateInvoice(c *gin.Context) {
	t, ok := h.target(c)
	if !ok {
		return
	}
	var req dto.InvoiceRequest
	if !bindJSON(c, &req) {
		return
	}
	if t.ExpectedRevision == 0 {
		t.ExpectedRevision = req.Revision
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Received request to update invoice",
		slog.String("invoice_id", t.InvoiceID), slog.Int64("expected_revision", t.ExpectedRevision))

	inv, err := h.invoiceService.UpdateInvoice(c.Request.Context(), t.TenantID, t.InvoiceID, req, t.ExpectedRevision, t.UserID)
	if err != nil {
		respondError(c, err, "update invoice")
		return
	}
	c.Header("ETag", etag(inv.Revision))
	c.JSON(http.StatusOK, dto.UpdateInvoiceResponse{OK: true, InvoiceResponse: dto.ToInvoiceResponse(inv)})
}

// mutation runs a sub-collection change and responds with the updated invoice.
func (h *invoiceHandler) mutation(c *gin.Context, action string, run func(t portssvc.InvoiceTarget) (*domain.Invoice, error)) {
	t, ok := h.target(c)
	if !ok {
		return
	}
	inv, err := run(t)
	if err != nil {
		respondError(c, err, action)
		return
	}
	h.respondInvoice(c, http.StatusOK, inv)
}

// mutationWithBody binds a JSON body of type T before running the change.
func mutationWithBody[T any](h *invoiceHandler, c *gin.Context, action string, run func(t portssvc.InvoiceTarget, req T) (*domain.Invoice, error)) {
	var req T
	if !bindJSON(c, &req) {
		return
	}
	h.mutation(c, action, func(t portssvc.InvoiceTarget) (*domain.Invoice, error) {
		return run(t, req)
	})
}

// addItem godoc
// @Summary Add a line item
// @Tags invoice-items
// @Accept  json
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   invoiceID path string true "Invoice ID"
// @Param   If-Match header string false "Expected revision"
// @Param   item body dto.LineItemRequest true "Line item"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 404 {object} ErrorResponse "Invoice not found"
// @Failure 409 {object} ErrorResponse "Revision conflict"
// @Security BearerAuth
// @Router /tenants/{tenantID}/invoices/{invoiceID}/items [post]
func (h *invoiceHandler) addItem(c *gin.Context) {
	mutationWithBody(h, c, "add line item", func(t portssvc.InvoiceTarget, req dto.LineItemRequest) (*domain.Invoice, error) {
		return h.invoiceService.AddItem(c.Request.Context(), t, req)
	})
}

// updateItem godoc
// @Summary Edit a line item
// @Tags invoice-items
// @Accept  json
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   invoiceID path string true "Invoice ID"
// @Param   itemID path string true "Line item ID"
// @Param   If-Match header string false "Expected revision"
// @Param   patch body dto.LineItemPatchRequest true "Changed fields"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 404 {object} ErrorResponse "Invoice or line item not found"
// @Failure 409 {object} ErrorResponse "Revision conflict"
// @Security BearerAuth
// @Router /tenants/{tenantID}/invoices/{invoiceID}/items/{itemID} [patch]
func (h *invoiceHandler) updateItem(c *gin.Context) {
	mutationWithBody(h, c, "update line item", func(t portssvc.InvoiceTarget, req dto.LineItemPatchRequest) (*domain.Invoice, error) {
		return h.invoiceService.UpdateItem(c.Request.Context(), t, c.Param("itemID"), req)
	})
}

// removeItem godoc
// @Summary Remove a line item
// @Tags invoice-items
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   invoiceID path string true "Invoice ID"
// @Param   itemID path string true "Line item ID"
// @Param   If-Match header string false "Expected revision"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} ErrorResponse "Invoice or line item not found"
// @Failure 409 {object} ErrorResponse "Revision conflict"
// @Security BearerAuth
// @Router /tenants/{tenantID}/invoices/{invoiceID}/items/{itemID} [delete]
func (h *invoiceHandler) removeItem(c *gin.Context) {
	h.mutation(c, "remove line item", func(t portssvc.InvoiceTarget) (*domain.Invoice, error) {
		return h.invoiceService.RemoveItem(c.Request.Context(), t, c.Param("itemID"))
	})
}

// addPayment godoc
// @Summary Record a payment
// @Tags invoice-payments
// @Accept  json
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   invoiceID path string true "Invoice ID"
// @Param   If-Match header string false "Expected revision"
// @Param   payment body dto.PaymentRequest true "Payment"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 404 {object} ErrorResponse "Invoice not found"
// @Failure 409 {object} ErrorResponse "Revision conflict"
// @Security BearerAuth
// @Router /tenants/{tenantID}/invoices/{invoiceID}/payments [post]
func (h *invoiceHandler) addPayment(c *gin.Context) {
	mutationWithBody(h, c, "add payment", func(t portssvc.InvoiceTarget, req dto.PaymentRequest) (*domain.Invoice, error) {
		return h.invoiceService.AddPayment(c.Request.Context(), t, req)
	})
}

// applyPayment godoc
// @Summary Apply a payment event
// @Description Records an advance payment, or a payment that settles an installment together with the installment
// @Tags invoice-payments
// @Accept  json
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   invoiceID path string true "Invoice ID"
// @Param   If-Match header string false "Expected revision"
// @Param   event body dto.ApplyPaymentRequest true "Payment event"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 404 {object} ErrorResponse "Invoice not found"
// @Failure 409 {object} ErrorResponse "Revision conflict"
// @Security BearerAuth
// @Router /tenants/{tenantID}/invoices/{invoiceID}/payments/apply [post]
func (h *invoiceHandler) applyPayment(c *gin.Context) {
	mutationWithBody(h, c, "apply payment", func(t portssvc.InvoiceTarget, req dto.ApplyPaymentRequest) (*domain.Invoice, error) {
		return h.invoiceService.ApplyPayment(c.Request.Context(), t, req)
	})
}

// updatePayment godoc
// @Summary Edit a payment
// @Tags invoice-payments
// @Accept  json
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   invoiceID path string true "Invoice ID"
// @Param   paymentID path string true "Payment ID"
// @Param   If-Match header string false "Expected revision"
// @Param   patch body dto.PaymentPatchRequest true "Changed fields"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 404 {object} ErrorResponse "Invoice or payment not found"
// @Failure 409 {object} ErrorResponse "Revision conflict"
// @Security BearerAuth
// @Router /tenants/{tenantID}/invoices/{invoiceID}/payments/{paymentID} [patch]
func (h *invoiceHandler) updatePayment(c *gin.Context) {
	mutationWithBody(h, c, "update payment", func(t portssvc.InvoiceTarget, req dto.PaymentPatchRequest) (*domain.Invoice, error) {
		return h.invoiceService.UpdatePayment(c.Request.Context(), t, c.Param("paymentID"), req)
	})
}

// removePayment godoc
// @Summary Remove a payment
// @Description Removing a settlement payment reopens its installment
// @Tags invoice-payments
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   invoiceID path string true "Invoice ID"
// @Param   paymentID path string true "Payment ID"
// @Param   If-Match header string false "Expected revision"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} ErrorResponse "Invoice or payment not found"
// @Failure 409 {object} ErrorResponse "Revision conflict"
// @Security BearerAuth
// @Router /tenants/{tenantID}/invoices/{invoiceID}/payments/{paymentID} [delete]
func (h *invoiceHandler) removePayment(c *gin.Context) {
	h.mutation(c, "remove payment", func(t portssvc.InvoiceTarget) (*domain.Invoice, error) {
		return h.invoiceService.RemovePayment(c.Request.Context(), t, c.Param("paymentID"))
	})
}

// generateInstallments godoc
// @Summary Generate an installment schedule
// @Description Replaces the open installments with count monthly installments; paid ones are kept
// @Tags invoice-installments
// @Accept  json
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   invoiceID path string true "Invoice ID"
// @Param   If-Match header string false "Expected revision"
// @Param   schedule body dto.GenerateInstallmentsRequest true "Schedule parameters"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 404 {object} ErrorResponse "Invoice not found"
// @Failure 409 {object} ErrorResponse "Revision conflict"
// @Security BearerAuth
// @Router /tenants/{tenantID}/invoices/{invoiceID}/installments/generate [post]
func (h *invoiceHandler) generateInstallments(c *gin.Context) {
	mutationWithBody(h, c, "generate installments", func(t portssvc.InvoiceTarget, req dto.GenerateInstallmentsRequest) (*domain.Invoice, error) {
		return h.invoiceService.GenerateInstallments(c.Request.Context(), t, req)
	})
}

// addInstallment godoc
// @Summary Add an installment
// @Tags invoice-installments
// @Accept  json
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   invoiceID path string true "Invoice ID"
// @Param   If-Match header string false "Expected revision"
// @Param   installment body dto.InstallmentRequest true "Installment"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 404 {object} ErrorResponse "Invoice not found"
// @Failure 409 {object} ErrorResponse "Revision conflict"
// @Security BearerAuth
// @Router /tenants/{tenantID}/invoices/{invoiceID}/installments [post]
func (h *invoiceHandler) addInstallment(c *gin.Context) {
	mutationWithBody(h, c, "add installment", func(t portssvc.InvoiceTarget, req dto.InstallmentRequest) (*domain.Invoice, error) {
		return h.invoiceService.AddInstallment(c.Request.Context(), t, req)
	})
}

// updateInstallment godoc
// @Summary Edit an installment
// @Tags invoice-installments
// @Accept  json
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   invoiceID path string true "Invoice ID"
// @Param   installmentID path string true "Installment ID"
// @Param   If-Match header string false "Expected revision"
// @Param   patch body dto.InstallmentPatchRequest true "Changed fields"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 404 {object} ErrorResponse "Invoice or installment not found"
// @Failure 409 {object} ErrorResponse "Revision conflict"
// @Security BearerAuth
// @Router /tenants/{tenantID}/invoices/{invoiceID}/installments/{installmentID} [patch]
func (h *invoiceHandler) updateInstallment(c *gin.Context) {
	mutationWithBody(h, c, "update installment", func(t portssvc.InvoiceTarget, req dto.InstallmentPatchRequest) (*domain.Invoice, error) {
		return h.invoiceService.UpdateInstallment(c.Request.Context(), t, c.Param("installmentID"), req)
	})
}

// removeInstallment godoc
// @Summary Remove an installment
// @Tags invoice-installments
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   invoiceID path string true "Invoice ID"
// @Param   installmentID path string true "Installment ID"
// @Param   If-Match header string false "Expected revision"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse "Installment is settled by a payment"
// @Failure 404 {object} ErrorResponse "Invoice or installment not found"
// @Failure 409 {object} ErrorResponse "Revision conflict"
// @Security BearerAuth
// @Router /tenants/{tenantID}/invoices/{invoiceID}/installments/{installmentID} [delete]
func (h *invoiceHandler) removeInstallment(c *gin.Context) {
	h.mutation(c, "remove installment", func(t portssvc.InvoiceTarget) (*domain.Invoice, error) {
		return h.invoiceService.RemoveInstallment(c.Request.Context(), t, c.Param("installmentID"))
	})
}

// markInstallmentPaid godoc
// @Summary Mark an installment paid
// @Description Flags the installment paid without recording a payment; the balance does not change
// @Tags invoice-installments
// @Accept  json
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   invoiceID path string true "Invoice ID"
// @Param   installmentID path string true "Installment ID"
// @Param   If-Match header string false "Expected revision"
// @Param   paid body dto.MarkInstallmentPaidRequest true "Paid amount and date"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse "Validation error"
// @Failure 404 {object} ErrorResponse "Invoice or installment not found"
// @Failure 409 {object} ErrorResponse "Revision conflict"
// @Security BearerAuth
// @Router /tenants/{tenantID}/invoices/{invoiceID}/installments/{installmentID}/pay [post]
func (h *invoiceHandler) markInstallmentPaid(c *gin.Context) {
	mutationWithBody(h, c, "mark installment paid", func(t portssvc.InvoiceTarget, req dto.MarkInstallmentPaidRequest) (*domain.Invoice, error) {
		return h.invoiceService.MarkInstallmentPaid(c.Request.Context(), t, c.Param("installmentID"), req)
	})
}
