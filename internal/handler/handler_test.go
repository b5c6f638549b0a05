package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Stefodan21/Order-fullfillment-Project/internal/carrier"
	"github.com/Stefodan21/Order-fullfillment-Project/internal/domain/order"
	"github.com/Stefodan21/Order-fullfillment-Project/internal/invoice"
	"github.com/Stefodan21/Order-fullfillment-Project/internal/service"
	"github.com/Stefodan21/Order-fullfillment-Project/pkg/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// One collector for the whole package: the prometheus default registry
// rejects duplicate registrations.
var testMetrics = metrics.NewCollector("order_fulfillment_test")

type memOrders struct {
	putErr  error
	readErr error
	records []order.Record
}

func (m *memOrders) Put(ctx context.Context, rec order.Record) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.records = append(m.records, rec)
	return nil
}

func (m *memOrders) LatestByID(ctx context.Context, orderID string) (order.Record, error) {
	if m.readErr != nil {
		return order.Record{}, m.readErr
	}
	for i := len(m.records) - 1; i >= 0; i-- {
		if m.records[i].OrderID == orderID {
			return m.records[i], nil
		}
	}
	return order.Record{}, order.ErrNotFound
}

type memBlobs struct {
	err  error
	keys []string
}

func (m *memBlobs) Put(ctx context.Context, key string, body []byte, contentType string) error {
	if m.err != nil {
		return m.err
	}
	m.keys = append(m.keys, key)
	return nil
}

type memStarter struct {
	err   error
	arn   string
	input []byte
}

func (m *memStarter) Start(ctx context.Context, input []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.input = input
	return m.arn, nil
}

type testDeps struct {
	orders  *memOrders
	blobs   *memBlobs
	starter *memStarter
}

func newTestRouter(t *testing.T, deps testDeps) *gin.Engine {
	t.Helper()

	log := zap.NewNop()
	if deps.orders == nil {
		deps.orders = &memOrders{}
	}
	if deps.blobs == nil {
		deps.blobs = &memBlobs{}
	}
	if deps.starter == nil {
		deps.starter = &memStarter{arn: "arn:aws:states:us-east-1:123456789012:execution:orders:run-1"}
	}
	recognizer := carrier.NewRecognizer()

	h := New(
		service.NewValidationService(log),
		service.NewInvoiceService(deps.orders, deps.blobs, invoice.NewPDF(), "invoicestorage", log),
		service.NewTrackingService(recognizer, log),
		service.NewShippingService(recognizer, log),
		service.NewWorkflowService(deps.starter, log),
		testMetrics,
		log,
	)
	return NewRouter(h, log, testMetrics)
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	out := map[string]any{}
	if w.Body.Len() > 0 && strings.Contains(w.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode response %q: %v", w.Body.String(), err)
		}
	}
	return w, out
}

func TestRootAlive(t *testing.T) {
	r := newTestRouter(t, testDeps{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Order Fulfillment API is Running!") {
		t.Fatalf("unexpected body %q", w.Body.String())
	}
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, testDeps{})

	w, out := doJSON(t, r, http.MethodGet, "/healthz", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if out["status"] != "healthy" {
		t.Fatalf("unexpected body %v", out)
	}
}

func TestOrderValidation(t *testing.T) {
	r := newTestRouter(t, testDeps{})

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantKey    string
		wantValue  string
	}{
		{
			name:       "payment_success",
			body:       `{"payment":{"status":"success"}}`,
			wantStatus: http.StatusOK,
			wantKey:    "message",
			wantValue:  "Order validation completed",
		},
		{
			name:       "payment_success_uppercase",
			body:       `{"payment":{"status":"SUCCESS"}}`,
			wantStatus: http.StatusOK,
			wantKey:    "message",
			wantValue:  "Order validation completed",
		},
		{
			name:       "payment_failed",
			body:       `{"payment":{"status":"failed"}}`,
			wantStatus: http.StatusPaymentRequired,
			wantKey:    "error",
			wantValue:  "Payment failed",
		},
		{
			name:       "missing_payment",
			body:       `{}`,
			wantStatus: http.StatusPaymentRequired,
			wantKey:    "error",
			wantValue:  "Payment failed",
		},
		{
			name:       "invalid_json",
			body:       `{"payment":`,
			wantStatus: http.StatusBadRequest,
			wantKey:    "error",
			wantValue:  "Invalid input",
		},
		{
			name:       "empty_body",
			body:       "",
			wantStatus: http.StatusBadRequest,
			wantKey:    "error",
			wantValue:  "Invalid input",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			w, out := doJSON(t, r, http.MethodPost, "/order_validation", tt.body)
			if w.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if out[tt.wantKey] != tt.wantValue {
				t.Fatalf("expected %s=%q, got %v", tt.wantKey, tt.wantValue, out)
			}
		})
	}
}

func TestShippingSuggestion(t *testing.T) {
	r := newTestRouter(t, testDeps{})

	w, out := doJSON(t, r, http.MethodPost, "/ShippingSuggestion",
		`{"tracking_number":"1Z12345E0205271688","weight":8.5,"destination":"Kingston"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if out["carrier"] != "UPS" {
		t.Fatalf("expected UPS, got %v", out["carrier"])
	}
	suggestion, ok := out["suggestion"].(map[string]any)
	if !ok {
		t.Fatalf("expected suggestion object, got %v", out)
	}
	if suggestion["method"] != "Express Shipping" || suggestion["estimated_cost"] != float64(30) {
		t.Fatalf("unexpected suggestion %v", suggestion)
	}
}

func TestShippingSuggestionFreight(t *testing.T) {
	r := newTestRouter(t, testDeps{})

	w, out := doJSON(t, r, http.MethodPost, "/ShippingSuggestion",
		`{"tracking_number":"1Z12345E0205271688","weight":11,"destination":"Kingston"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	suggestion := out["suggestion"].(map[string]any)
	if suggestion["method"] != "Freight" || suggestion["estimated_cost"] != float64(50) {
		t.Fatalf("unexpected suggestion %v", suggestion)
	}
}

func TestShippingSuggestionValidation(t *testing.T) {
	r := newTestRouter(t, testDeps{})

	tests := []struct {
		name      string
		body      string
		wantError string
	}{
		{
			name:      "missing_destination",
			body:      `{"tracking_number":"TRACK123XYZ","weight":8.5}`,
			wantError: "Invalid or missing destination",
		},
		{
			name:      "missing_tracking_number",
			body:      `{"weight":8.5,"destination":"Kingston"}`,
			wantError: "Invalid or missing tracking_number",
		},
		{
			name:      "weight_wrong_type",
			body:      `{"tracking_number":"TRACK123XYZ","weight":"heavy","destination":"Kingston"}`,
			wantError: "Invalid or missing weight",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			w, out := doJSON(t, r, http.MethodPost, "/ShippingSuggestion", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
			if out["error"] != tt.wantError {
				t.Fatalf("expected %q, got %v", tt.wantError, out)
			}
		})
	}
}

func TestShippingSuggestionUnknownCarrier(t *testing.T) {
	r := newTestRouter(t, testDeps{})

	w, out := doJSON(t, r, http.MethodPost, "/ShippingSuggestion",
		`{"tracking_number":"TRACK123XYZ","weight":8.5,"destination":"Kingston"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("unrecognized code must not fail the request, got %d", w.Code)
	}
	if out["carrier"] != "Unknown" || out["tracking_url"] != "N/A" {
		t.Fatalf("expected degraded carrier, got %v", out)
	}
	suggestion := out["suggestion"].(map[string]any)
	if suggestion["method"] != "Generic Carrier Shipping" || suggestion["estimated_cost"] != float64(20) {
		t.Fatalf("unexpected suggestion %v", suggestion)
	}
}

func TestOrderStatusTracking(t *testing.T) {
	r := newTestRouter(t, testDeps{})

	tests := []struct {
		name       string
		body       string
		wantStatus int
		check      func(t *testing.T, out map[string]any)
	}{
		{
			name:       "recognized_ups",
			body:       `{"tracking_number":"1Z12345E0205271688"}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, out map[string]any) {
				if out["carrier"] != "UPS" {
					t.Fatalf("expected UPS, got %v", out)
				}
				url, _ := out["tracking_url"].(string)
				if !strings.Contains(url, "ups.com") {
					t.Fatalf("expected a UPS tracking URL, got %q", url)
				}
			},
		},
		{
			name:       "unrecognized_code",
			body:       `{"tracking_number":"TRACK123XYZ"}`,
			wantStatus: http.StatusNotFound,
			check: func(t *testing.T, out map[string]any) {
				if out["error"] != "Tracking number not found or unrecognized" {
					t.Fatalf("unexpected body %v", out)
				}
			},
		},
		{
			name:       "missing_key",
			body:       `{"tracking":"missing_key"}`,
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, out map[string]any) {
				if out["error"] != "Invalid or missing tracking_number" {
					t.Fatalf("unexpected body %v", out)
				}
			},
		},
		{
			name:       "wrong_type",
			body:       `{"tracking_number":12345}`,
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, out map[string]any) {
				if out["error"] != "Invalid or missing tracking_number" {
					t.Fatalf("unexpected body %v", out)
				}
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			w, out := doJSON(t, r, http.MethodPost, "/OrderStatusTracking", tt.body)
			if w.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			tt.check(t, out)
		})
	}
}

func TestInvoiceGenerator(t *testing.T) {
	orders := &memOrders{}
	blobs := &memBlobs{}
	r := newTestRouter(t, testDeps{orders: orders, blobs: blobs})

	w, out := doJSON(t, r, http.MethodPost, "/invoiceGenerator",
		`{"customer_name":"Stefaan","customer_address":"Jamaica","business_name":"CloudSoft","item_purchased":"Serverless Mastery","item_price":120,"item_quantity":2}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	path, _ := out["invoice_path"].(string)
	if !strings.HasPrefix(path, "invoicestorage/invoice_") || !strings.HasSuffix(path, ".pdf") {
		t.Fatalf("unexpected invoice path %q", path)
	}
	if out["message"] != "Invoice generated and uploaded successfully" {
		t.Fatalf("unexpected body %v", out)
	}
	if len(orders.records) != 1 {
		t.Fatalf("expected one order record, got %d", len(orders.records))
	}
	if len(blobs.keys) != 1 || blobs.keys[0] != path {
		t.Fatalf("expected upload under %q, got %v", path, blobs.keys)
	}
}

func TestInvoiceGeneratorReadLagStillSucceeds(t *testing.T) {
	orders := &memOrders{readErr: errors.New("index not ready")}
	r := newTestRouter(t, testDeps{orders: orders})

	w, out := doJSON(t, r, http.MethodPost, "/invoiceGenerator", `{}`)
	if w.Code != http.StatusOK {
		t.Fatalf("read lag must not fail the request, got %d: %s", w.Code, w.Body.String())
	}
	if out["invoice_path"] == nil {
		t.Fatalf("expected an invoice path, got %v", out)
	}
}

func TestInvoiceGeneratorUploadFailure(t *testing.T) {
	blobs := &memBlobs{err: errors.New("access denied")}
	r := newTestRouter(t, testDeps{blobs: blobs})

	w, out := doJSON(t, r, http.MethodPost, "/invoiceGenerator", `{}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if out["error"] != "Failed to generate invoice" {
		t.Fatalf("unexpected body %v", out)
	}
	details, _ := out["details"].(string)
	if !strings.Contains(details, "access denied") {
		t.Fatalf("expected underlying error in details, got %v", out)
	}
}

func TestInvoiceGeneratorInvalidJSON(t *testing.T) {
	r := newTestRouter(t, testDeps{})

	w, out := doJSON(t, r, http.MethodPost, "/invoiceGenerator", `{"item_price":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if out["error"] != "Invalid input" {
		t.Fatalf("unexpected body %v", out)
	}
}

func TestStartWorkflow(t *testing.T) {
	starter := &memStarter{arn: "arn:aws:states:us-east-1:123456789012:execution:orders:run-1"}
	r := newTestRouter(t, testDeps{starter: starter})

	w, out := doJSON(t, r, http.MethodPost, "/startWorkflow", `{"order_id":"abc"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if out["message"] != "Workflow started successfully" {
		t.Fatalf("unexpected body %v", out)
	}
	if out["executionArn"] != starter.arn {
		t.Fatalf("expected execution ARN, got %v", out)
	}
	if string(starter.input) != `{"order_id":"abc"}` {
		t.Fatalf("payload not passed through unchanged: %q", starter.input)
	}
}

func TestStartWorkflowEmptyBody(t *testing.T) {
	starter := &memStarter{arn: "arn:execution"}
	r := newTestRouter(t, testDeps{starter: starter})

	w, _ := doJSON(t, r, http.MethodPost, "/startWorkflow", "")
	if w.Code != http.StatusOK {
		t.Fatalf("pass-through trigger must not validate the payload, got %d", w.Code)
	}
	if string(starter.input) != "{}" {
		t.Fatalf("expected empty payload to become {}, got %q", starter.input)
	}
}

func TestStartWorkflowFailure(t *testing.T) {
	starter := &memStarter{err: errors.New("state machine not found")}
	r := newTestRouter(t, testDeps{starter: starter})

	w, out := doJSON(t, r, http.MethodPost, "/startWorkflow", `{}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if out["message"] != "Failed to start workflow" {
		t.Fatalf("unexpected body %v", out)
	}
	errText, _ := out["error"].(string)
	if !strings.Contains(errText, "state machine not found") {
		t.Fatalf("expected underlying error, got %v", out)
	}
}
