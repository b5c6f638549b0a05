// Package handler exposes each fulfillment operation as an HTTP endpoint and
// translates service results into the status-code/JSON-body envelope.
package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Stefodan21/Order-fullfillment-Project/internal/service"
	"github.com/Stefodan21/Order-fullfillment-Project/pkg/metrics"
)

type Handler struct {
	validation *service.ValidationService
	invoices   *service.InvoiceService
	tracking   *service.TrackingService
	shipping   *service.ShippingService
	workflows  *service.WorkflowService
	metrics    *metrics.Collector
	log        *zap.Logger
}

func New(
	validation *service.ValidationService,
	invoices *service.InvoiceService,
	tracking *service.TrackingService,
	shipping *service.ShippingService,
	workflows *service.WorkflowService,
	m *metrics.Collector,
	log *zap.Logger,
) *Handler {
	return &Handler{
		validation: validation,
		invoices:   invoices,
		tracking:   tracking,
		shipping:   shipping,
		workflows:  workflows,
		metrics:    m,
		log:        log,
	}
}

// Register wires every route onto the engine.
func (h *Handler) Register(r *gin.Engine) {
	r.GET("/", h.Root)
	r.GET("/healthz", h.Health)
	r.POST("/order_validation", h.ValidateOrder)
	r.POST("/invoiceGenerator", h.GenerateInvoice)
	r.POST("/ShippingSuggestion", h.SuggestShipping)
	r.POST("/OrderStatusTracking", h.TrackOrder)
	r.POST("/startWorkflow", h.StartWorkflow)
}

func (h *Handler) Root(c *gin.Context) {
	c.String(http.StatusOK, "Order Fulfillment API is Running!")
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (h *Handler) ValidateOrder(c *gin.Context) {
	var req service.OrderValidationRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.validation.ValidateOrder(req); err != nil {
		respondServiceError(c, err, "Order validation failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order validation completed"})
}

func (h *Handler) GenerateInvoice(c *gin.Context) {
	var req service.InvoiceRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.invoices.Generate(c.Request.Context(), req)
	if err != nil {
		h.metrics.InvoiceUploadFailures.Inc()
		respondServiceError(c, err, "Failed to generate invoice")
		return
	}

	h.metrics.InvoicesGeneratedTotal.Inc()
	c.JSON(http.StatusOK, gin.H{
		"message":      "Invoice generated and uploaded successfully",
		"invoice_path": result.InvoicePath,
	})
}

func (h *Handler) TrackOrder(c *gin.Context) {
	var req service.TrackingRequest
	if !bindJSON(c, &req) {
		return
	}

	status, err := h.tracking.Track(req)
	if err != nil {
		respondServiceError(c, err, "Failed to process tracking number")
		return
	}

	h.metrics.CarrierLookupsTotal.WithLabelValues(status.Carrier).Inc()
	c.JSON(http.StatusOK, status)
}

func (h *Handler) SuggestShipping(c *gin.Context) {
	var req service.ShippingRequest
	if !bindJSON(c, &req) {
		return
	}

	code, weight, destination, err := req.Validate()
	if err != nil {
		respondServiceError(c, err, "Failed to process shipping suggestion")
		return
	}

	advice := h.shipping.Suggest(code, weight, destination)
	h.metrics.CarrierLookupsTotal.WithLabelValues(advice.Carrier).Inc()
	c.JSON(http.StatusOK, advice)
}

func (h *Handler) StartWorkflow(c *gin.Context) {
	// Pass-through: the payload shape is deliberately not validated.
	event, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	executionARN, err := h.workflows.Trigger(c.Request.Context(), event)
	if err != nil {
		h.metrics.WorkflowStartsTotal.WithLabelValues("error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{
			"message": "Failed to start workflow",
			"error":   err.Error(),
		})
		return
	}

	h.metrics.WorkflowStartsTotal.WithLabelValues("started").Inc()
	c.JSON(http.StatusOK, gin.H{
		"message":      "Workflow started successfully",
		"executionArn": executionARN,
	})
}
