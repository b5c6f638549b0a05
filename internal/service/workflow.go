package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// WorkflowStarter begins one asynchronous workflow execution and returns its
// handle.
type WorkflowStarter interface {
	Start(ctx context.Context, input []byte) (string, error)
}

// WorkflowService passes an opaque event payload to the configured workflow.
type WorkflowService struct {
	starter WorkflowStarter
	log     *zap.Logger
}

func NewWorkflowService(starter WorkflowStarter, log *zap.Logger) *WorkflowService {
	return &WorkflowService{starter: starter, log: log}
}

// Trigger starts the workflow with the payload passed through unchanged. An
// empty payload becomes an empty JSON object so the execution input is always
// valid JSON.
func (s *WorkflowService) Trigger(ctx context.Context, event []byte) (string, error) {
	if len(event) == 0 {
		event = []byte("{}")
	}

	executionARN, err := s.starter.Start(ctx, event)
	if err != nil {
		return "", fmt.Errorf("start workflow: %w", err)
	}

	s.log.Info("workflow started", zap.String("execution_arn", executionARN))
	return executionARN, nil
}
