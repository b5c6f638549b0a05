package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Stefodan21/Order-fullfillment-Project/internal/domain/order"
	"github.com/Stefodan21/Order-fullfillment-Project/internal/invoice"
)

// BlobStore uploads a rendered document under the given key.
type BlobStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
}

// InvoiceRequest carries the client-supplied invoice fields. Every field is
// optional; absent fields take documented defaults instead of rejecting the
// request. Quantity is a pointer so an explicit zero survives defaulting.
type InvoiceRequest struct {
	CustomerName    string  `json:"customer_name"`
	CustomerAddress string  `json:"customer_address"`
	BusinessName    string  `json:"business_name"`
	ItemPurchased   string  `json:"item_purchased"`
	ItemPrice       float64 `json:"item_price"`
	ItemQuantity    *int    `json:"item_quantity"`
}

type invoiceDetails struct {
	CustomerName    string
	CustomerAddress string
	BusinessName    string
	ItemPurchased   string
	ItemPrice       float64
	ItemQuantity    int
}

func (r InvoiceRequest) withDefaults() invoiceDetails {
	d := invoiceDetails{
		CustomerName:    r.CustomerName,
		CustomerAddress: r.CustomerAddress,
		BusinessName:    r.BusinessName,
		ItemPurchased:   r.ItemPurchased,
		ItemPrice:       r.ItemPrice,
		ItemQuantity:    1,
	}
	if d.CustomerName == "" {
		d.CustomerName = "Unknown"
	}
	if d.CustomerAddress == "" {
		d.CustomerAddress = "Unknown"
	}
	if d.BusinessName == "" {
		d.BusinessName = "Unknown"
	}
	if d.ItemPurchased == "" {
		d.ItemPurchased = "Unknown"
	}
	if r.ItemQuantity != nil {
		d.ItemQuantity = *r.ItemQuantity
	}
	return d
}

// InvoiceResult is returned on success; InvoicePath is the sole contract for
// locating the uploaded document.
type InvoiceResult struct {
	OrderID     string `json:"order_id"`
	InvoicePath string `json:"invoice_path"`
}

// InvoiceService persists an order record, renders the invoice PDF, and
// uploads it to blob storage.
type InvoiceService struct {
	orders   order.Repository
	blobs    BlobStore
	renderer invoice.Renderer
	bucket   string
	log      *zap.Logger

	// Overridable for tests.
	now   func() time.Time
	newID func() string
}

func NewInvoiceService(orders order.Repository, blobs BlobStore, renderer invoice.Renderer, bucket string, log *zap.Logger) *InvoiceService {
	return &InvoiceService{
		orders:   orders,
		blobs:    blobs,
		renderer: renderer,
		bucket:   bucket,
		log:      log,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Generate runs the invoice flow: write the order record, re-read it newest
// first (falling back to the just-written values when the read lags), render
// the document, and upload it. A failed record read never fails the request;
// a failed record write or upload does.
func (s *InvoiceService) Generate(ctx context.Context, req InvoiceRequest) (InvoiceResult, error) {
	d := req.withDefaults()

	orderID := s.newID()
	invoiceNumber := s.newID()
	rec := order.NewRecord(orderID, d.CustomerName, s.now())

	if err := s.orders.Put(ctx, rec); err != nil {
		return InvoiceResult{}, fmt.Errorf("store order record: %w", err)
	}

	latest, err := s.orders.LatestByID(ctx, orderID)
	if err != nil {
		// Read-after-write lag: render from the values we just wrote.
		s.log.Warn("order record read failed, using written values",
			zap.String("order_id", orderID), zap.Error(err))
		latest = rec
	}

	filename := fmt.Sprintf("invoice_%s_%s.pdf", latest.OrderID, latest.OrderedAt)
	invoicePath := s.bucket + "/" + filename

	total := d.ItemPrice * float64(d.ItemQuantity)
	doc := invoice.Document{
		Header: "Invoice from: " + d.BusinessName,
		Lines: []invoice.Line{
			{Label: "Invoice Number", Value: invoiceNumber},
			{Label: "Order ID", Value: latest.OrderID},
			{Label: "Ordered At", Value: latest.OrderedAt},
			{Label: "Thank you for your order!"},
			{Label: "Customer Name", Value: d.CustomerName},
			{Label: "Customer Address", Value: d.CustomerAddress},
			{Label: "Item Purchased", Value: d.ItemPurchased},
			{Label: "Item Price", Value: fmt.Sprintf("$%.2f", d.ItemPrice)},
			{Label: "Item Quantity", Value: strconv.Itoa(d.ItemQuantity)},
			{Label: "Total Amount", Value: fmt.Sprintf("$%.2f", total)},
		},
	}

	pdfBytes, err := s.renderer.Render(doc)
	if err != nil {
		return InvoiceResult{}, fmt.Errorf("render invoice for order %s: %w", orderID, err)
	}

	if err := s.blobs.Put(ctx, invoicePath, pdfBytes, "application/pdf"); err != nil {
		return InvoiceResult{}, fmt.Errorf("upload invoice for order %s: %w", orderID, err)
	}

	s.log.Info("invoice uploaded",
		zap.String("order_id", latest.OrderID),
		zap.String("invoice_path", invoicePath))

	return InvoiceResult{OrderID: latest.OrderID, InvoicePath: invoicePath}, nil
}
