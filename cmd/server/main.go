package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sfn"
	"go.uber.org/zap"

	"github.com/Stefodan21/Order-fullfillment-Project/config"
	"github.com/Stefodan21/Order-fullfillment-Project/internal/carrier"
	"github.com/Stefodan21/Order-fullfillment-Project/internal/handler"
	"github.com/Stefodan21/Order-fullfillment-Project/internal/invoice"
	"github.com/Stefodan21/Order-fullfillment-Project/internal/service"
	"github.com/Stefodan21/Order-fullfillment-Project/internal/storage/dynamo"
	"github.com/Stefodan21/Order-fullfillment-Project/internal/storage/s3blob"
	"github.com/Stefodan21/Order-fullfillment-Project/internal/workflow"
	"github.com/Stefodan21/Order-fullfillment-Project/pkg/logger"
	"github.com/Stefodan21/Order-fullfillment-Project/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zlog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("building logger: %v", err)
	}
	defer zlog.Sync()

	ctx := context.Background()
	awsConfig, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(cfg.AWS.Region))
	if err != nil {
		zlog.Fatal("loading AWS config", zap.Error(err))
	}

	orders := dynamo.NewRepository(dynamodb.NewFromConfig(awsConfig), cfg.AWS.OrderTable)
	blobs := s3blob.NewStore(s3.NewFromConfig(awsConfig), cfg.AWS.InvoiceBucket)
	starter := workflow.NewStarter(sfn.NewFromConfig(awsConfig), cfg.AWS.StateMachineARN)
	recognizer := carrier.NewRecognizer()

	m := metrics.NewCollector("order_fulfillment")
	h := handler.New(
		service.NewValidationService(zlog),
		service.NewInvoiceService(orders, blobs, invoice.NewPDF(), cfg.AWS.InvoiceBucket, zlog),
		service.NewTrackingService(recognizer, zlog),
		service.NewShippingService(recognizer, zlog),
		service.NewWorkflowService(starter, zlog),
		m,
		zlog,
	)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      handler.NewRouter(h, zlog, m),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		zlog.Info("starting HTTP server",
			zap.String("address", cfg.Server.Address()),
			zap.String("environment", cfg.App.Environment),
			zap.String("version", cfg.App.Version),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Error("server shutdown failed", zap.Error(err))
		os.Exit(1)
	}

	zlog.Info("server shutdown complete")
}
