// Lambda entrypoint: dispatches API Gateway proxy events to the same services
// the HTTP server uses and returns the statusCode/body envelope.
package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sfn"

	"github.com/Stefodan21/Order-fullfillment-Project/config"
	"github.com/Stefodan21/Order-fullfillment-Project/internal/carrier"
	"github.com/Stefodan21/Order-fullfillment-Project/internal/handler"
	"github.com/Stefodan21/Order-fullfillment-Project/internal/invoice"
	"github.com/Stefodan21/Order-fullfillment-Project/internal/service"
	"github.com/Stefodan21/Order-fullfillment-Project/internal/storage/dynamo"
	"github.com/Stefodan21/Order-fullfillment-Project/internal/storage/s3blob"
	"github.com/Stefodan21/Order-fullfillment-Project/internal/workflow"
	"github.com/Stefodan21/Order-fullfillment-Project/pkg/logger"
)

type dispatcher struct {
	validation *service.ValidationService
	invoices   *service.InvoiceService
	tracking   *service.TrackingService
	shipping   *service.ShippingService
	workflows  *service.WorkflowService
}

func newDispatcher(ctx context.Context) (*dispatcher, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	zlog, err := logger.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	awsConfig, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(cfg.AWS.Region))
	if err != nil {
		return nil, err
	}

	orders := dynamo.NewRepository(dynamodb.NewFromConfig(awsConfig), cfg.AWS.OrderTable)
	blobs := s3blob.NewStore(s3.NewFromConfig(awsConfig), cfg.AWS.InvoiceBucket)
	starter := workflow.NewStarter(sfn.NewFromConfig(awsConfig), cfg.AWS.StateMachineARN)
	recognizer := carrier.NewRecognizer()

	return &dispatcher{
		validation: service.NewValidationService(zlog),
		invoices:   service.NewInvoiceService(orders, blobs, invoice.NewPDF(), cfg.AWS.InvoiceBucket, zlog),
		tracking:   service.NewTrackingService(recognizer, zlog),
		shipping:   service.NewShippingService(recognizer, zlog),
		workflows:  service.NewWorkflowService(starter, zlog),
	}, nil
}

func respond(status int, body any) (events.APIGatewayProxyResponse, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, nil
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(b),
	}, nil
}

func respondErr(err error, fallback string) (events.APIGatewayProxyResponse, error) {
	status, body := handler.EnvelopeForError(err, fallback)
	return respond(status, body)
}

func (d *dispatcher) handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if req.HTTPMethod == http.MethodGet && req.Path == "/" {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusOK,
			Headers:    map[string]string{"Content-Type": "text/plain"},
			Body:       "Order Fulfillment API is Running!",
		}, nil
	}

	switch req.Path {
	case "/order_validation":
		var vr service.OrderValidationRequest
		if err := json.Unmarshal([]byte(req.Body), &vr); err != nil {
			return respond(http.StatusBadRequest, handler.ErrorResponse{Error: "Invalid input"})
		}
		if err := d.validation.ValidateOrder(vr); err != nil {
			return respondErr(err, "Order validation failed")
		}
		return respond(http.StatusOK, map[string]string{"message": "Order validation completed"})

	case "/invoiceGenerator":
		var ir service.InvoiceRequest
		if err := json.Unmarshal([]byte(req.Body), &ir); err != nil {
			return respond(http.StatusBadRequest, handler.ErrorResponse{Error: "Invalid input"})
		}
		result, err := d.invoices.Generate(ctx, ir)
		if err != nil {
			return respondErr(err, "Failed to generate invoice")
		}
		return respond(http.StatusOK, map[string]string{
			"message":      "Invoice generated and uploaded successfully",
			"invoice_path": result.InvoicePath,
		})

	case "/OrderStatusTracking":
		var tr service.TrackingRequest
		if err := json.Unmarshal([]byte(req.Body), &tr); err != nil {
			return respond(http.StatusBadRequest, handler.ErrorResponse{Error: "Invalid input"})
		}
		status, err := d.tracking.Track(tr)
		if err != nil {
			return respondErr(err, "Failed to process tracking number")
		}
		return respond(http.StatusOK, status)

	case "/ShippingSuggestion":
		var sr service.ShippingRequest
		if err := json.Unmarshal([]byte(req.Body), &sr); err != nil {
			return respond(http.StatusBadRequest, handler.ErrorResponse{Error: "Invalid input"})
		}
		code, weight, destination, err := sr.Validate()
		if err != nil {
			return respondErr(err, "Failed to process shipping suggestion")
		}
		return respond(http.StatusOK, d.shipping.Suggest(code, weight, destination))

	case "/startWorkflow":
		executionARN, err := d.workflows.Trigger(ctx, []byte(req.Body))
		if err != nil {
			return respond(http.StatusInternalServerError, map[string]string{
				"message": "Failed to start workflow",
				"error":   err.Error(),
			})
		}
		return respond(http.StatusOK, map[string]string{
			"message":      "Workflow started successfully",
			"executionArn": executionARN,
		})

	default:
		return respond(http.StatusNotFound, handler.ErrorResponse{Error: "Not found"})
	}
}

func main() {
	d, err := newDispatcher(context.Background())
	if err != nil {
		log.Fatalf("initializing dispatcher: %v", err)
	}
	lambda.Start(d.handle)
}
